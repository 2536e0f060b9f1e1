package parse

import (
	"fmt"
	"sync"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// Parser turns raw gateway text into a list of typed items for one
// (collection_type, vendor_os) pair. Parsers are pure and deterministic:
// same input always yields the same output (spec.md §4.3) — no parser may
// read a clock, RNG, or any external state.
type Parser interface {
	CollectionType() models.CollectionType
	VendorOS() string
	Parse(raw string) ([]any, error)
}

type parserKey struct {
	collectionType models.CollectionType
	vendorOS       string
}

// Registry maps (collection_type, vendor_os) to its Parser, mirroring
// original_source's per-vendor parser module layout under a single
// in-process lookup table.
type Registry struct {
	mu      sync.RWMutex
	parsers map[parserKey]Parser
}

func NewRegistry() *Registry {
	return &Registry{parsers: make(map[parserKey]Parser)}
}

func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[parserKey{p.CollectionType(), p.VendorOS()}] = p
}

func (r *Registry) Get(collectionType models.CollectionType, vendorOS string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[parserKey{collectionType, vendorOS}]
	if !ok {
		return nil, fmt.Errorf("no parser registered for collection type %q, vendor %q", collectionType, vendorOS)
	}
	return p, nil
}

// funcParser adapts a plain parse function into a Parser, avoiding a
// one-struct-per-(type,vendor) combination for the majority of parsers
// whose logic is a single branch on block vs. tabular style.
type funcParser struct {
	collectionType models.CollectionType
	vendorOS       string
	fn             func(raw string) ([]any, error)
}

func (f funcParser) CollectionType() models.CollectionType { return f.collectionType }
func (f funcParser) VendorOS() string                      { return f.vendorOS }
func (f funcParser) Parse(raw string) ([]any, error)       { return f.fn(raw) }

func newParser(collectionType models.CollectionType, vendorOS string, fn func(raw string) ([]any, error)) Parser {
	return funcParser{collectionType: collectionType, vendorOS: vendorOS, fn: fn}
}

// RegisterAll registers every built-in parser across all three known
// vendor_os values for each collection type. Called once at process
// start-up (cmd/maintcore/main.go).
func RegisterAll(r *Registry) {
	for _, vendorOS := range []string{vendorCiscoIOS, vendorCiscoNX, vendorHPE} {
		r.Register(newParser(models.CollectionTransceiver, vendorOS, func(raw string) ([]any, error) {
			items, err := parseTransceiver(raw, vendorOS)
			return toAny(items), err
		}))
		r.Register(newParser(models.CollectionPortChannel, vendorOS, func(raw string) ([]any, error) {
			items, err := parsePortChannel(raw, vendorOS)
			return toAny(items), err
		}))
		r.Register(newParser(models.CollectionNeighbor, vendorOS, func(raw string) ([]any, error) {
			items, err := parseNeighbor(raw, vendorOS)
			return toAny(items), err
		}))
		r.Register(newParser(models.CollectionInterfaceError, vendorOS, func(raw string) ([]any, error) {
			items, err := parseInterfaceError(raw, vendorOS)
			return toAny(items), err
		}))
		r.Register(newParser(models.CollectionStaticAcl, vendorOS, func(raw string) ([]any, error) {
			items, err := parseStaticAcl(raw, vendorOS)
			return toAny(items), err
		}))
		r.Register(newParser(models.CollectionDynamicAcl, vendorOS, func(raw string) ([]any, error) {
			items, err := parseDynamicAcl(raw, vendorOS)
			return toAny(items), err
		}))
		r.Register(newParser(models.CollectionMacTable, vendorOS, func(raw string) ([]any, error) {
			items, err := parseMacTable(raw, vendorOS)
			return toAny(items), err
		}))
		r.Register(newParser(models.CollectionFan, vendorOS, func(raw string) ([]any, error) {
			items, err := parseFan(raw, vendorOS)
			return toAny(items), err
		}))
		r.Register(newParser(models.CollectionPower, vendorOS, func(raw string) ([]any, error) {
			items, err := parsePower(raw, vendorOS)
			return toAny(items), err
		}))
		r.Register(newParser(models.CollectionVersion, vendorOS, func(raw string) ([]any, error) {
			items, err := parseVersion(raw, vendorOS)
			return toAny(items), err
		}))
		r.Register(newParser(models.CollectionInterfaceStatus, vendorOS, func(raw string) ([]any, error) {
			items, err := parseInterfaceStatus(raw, vendorOS)
			return toAny(items), err
		}))
		r.Register(newParser(models.CollectionArpSource, vendorOS, func(raw string) ([]any, error) {
			items, err := parseArpSource(raw, vendorOS)
			return toAny(items), err
		}))
	}

	// Ping is vendor-agnostic — GNMS-Ping's response format never varies by
	// device OS, so it registers once under an empty vendor_os key.
	r.Register(newParser(models.CollectionPing, "", func(raw string) ([]any, error) {
		items, err := parsePing(raw)
		return toAny(items), err
	}))
	r.Register(newParser(models.CollectionClientPing, "", func(raw string) ([]any, error) {
		items, err := parsePing(raw)
		return toAny(items), err
	}))
}

func toAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

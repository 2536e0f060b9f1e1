package fetch

import (
	"context"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// BatchMode selects how a collection type's fetcher addresses devices
// (spec.md §4.2).
type BatchMode int

const (
	// PerDevice issues one request per device (FNA, DNA).
	PerDevice BatchMode = iota
	// Bulk issues a single request carrying every target IP (GNMS-Ping).
	Bulk
)

// SourceFamily names the upstream system a Fetcher speaks to
// (spec.md §6.1), used as the circuit-breaker key.
type SourceFamily string

const (
	SourceFNA      SourceFamily = "FNA"
	SourceDNA      SourceFamily = "DNA"
	SourceGNMSPing SourceFamily = "GNMS-Ping"
)

// Fetcher is the capability common to every collection type's fetcher.
type Fetcher interface {
	CollectionType() models.CollectionType
	Source() SourceFamily
	BatchMode() BatchMode
}

// PerDeviceFetcher issues one request per active device.
type PerDeviceFetcher interface {
	Fetcher
	FetchOne(ctx context.Context, target DeviceTarget) (string, error)
}

// BulkFetcher issues a single request covering every target.
type BulkFetcher interface {
	Fetcher
	// FetchBulk returns raw per-IP text keyed by IP address (the
	// GNMS-Ping response shape, spec.md §6.1), or an error if the whole
	// request failed transport-side.
	FetchBulk(ctx context.Context, targets []DeviceTarget) (map[string]string, error)
}

package parse

import (
	"strconv"
	"strings"
)

// The FNA/DNA gateways pre-normalise vendor CLI dumps into one of two
// lightly structured textual conventions before handing them to the core
// (spec.md's non-goals rule out the core doing SSH/SNMP/gNMI itself — it
// only speaks to gateways that "abstract devices"): a whitespace-delimited
// tabular form for the Cisco family, and an indented "key: value" block
// form for HPE/Comware. splitTabular and splitBlocks are the two shared
// scanners every collection-type parser builds on.

// splitTabular splits raw text into non-empty trimmed lines, each further
// split on runs of whitespace.
func splitTabular(raw string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

// splitBlocks splits raw text into blank-line-delimited blocks, each
// parsed as "key: value" pairs (case-preserved keys, trimmed values).
func splitBlocks(raw string) []map[string]string {
	var blocks []map[string]string
	current := map[string]string{}
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = map[string]string{}
		}
	}
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		idx := strings.Index(trimmed, ":")
		if idx < 0 {
			// A bare interface/section header line starts a new block.
			flush()
			current["_header"] = trimmed
			continue
		}
		key := strings.TrimSpace(trimmed[:idx])
		val := strings.TrimSpace(trimmed[idx+1:])
		current[key] = val
	}
	flush()
	return blocks
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseIntOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseInt64OrZero(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func stringPtrOrNil(s string) *string {
	if s == "" || s == "-" {
		return nil
	}
	return &s
}

const (
	vendorHPE      = "HPE"
	vendorCiscoIOS = "Cisco-IOS"
	vendorCiscoNX  = "Cisco-NXOS"
)

// isBlockStyle reports whether vendorOS uses the HPE/Comware key:value
// block convention rather than Cisco's whitespace-tabular convention.
func isBlockStyle(vendorOS string) bool {
	return vendorOS == vendorHPE
}

package parse

import "strings"

// parseVersion emits a single VersionItem: the first non-blank line of
// output, whichever vendor convention produced it (both FNA and DNA
// gateways return just the version string on its own line for this
// collection type — there is nothing to branch on by vendor).
func parseVersion(raw string, _ string) ([]VersionItem, error) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return []VersionItem{{Version: line}}, nil
	}
	return nil, nil
}

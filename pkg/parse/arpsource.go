package parse

import "strings"

// parseArpSource emits a single ArpSourceItem naming the switch that is the
// authoritative ARP source for its subnet — one hostname per line of
// output (vendor convention does not affect this single-value response).
func parseArpSource(raw string, _ string) ([]ArpSourceItem, error) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return []ArpSourceItem{{SourceHostname: line}}, nil
	}
	return nil, nil
}

package parse

import "strings"

// parsePing handles the CSV-like "ip,reachable[,success_rate]" text shared
// by both ping_batch (device reachability, via FNA) and gnms_ping (client
// reachability, via GNMS-Ping) — the wire format is identical regardless
// of source, only the upstream caller differs (spec.md §6.1).
func parsePing(raw string) ([]PingItem, error) {
	var items []PingItem
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		ip := strings.TrimSpace(fields[0])
		if ip == "" || strings.EqualFold(ip, "ip") {
			continue // header row
		}
		item := PingItem{
			IPAddress:   ip,
			IsReachable: len(fields) > 1 && strings.EqualFold(strings.TrimSpace(fields[1]), "true"),
		}
		if len(fields) > 2 {
			item.SuccessRate = parseFloatPtr(strings.TrimSpace(fields[2]))
		}
		items = append(items, item)
	}
	return items, nil
}

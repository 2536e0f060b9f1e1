package parse

import "strings"

// Cisco tabular: "port_channel status member1,member2,...".
// HPE blocks: "_header" = port-channel name, "Status" key, one
// "Member" key per line (comma-joined membership also accepted).
func parsePortChannel(raw string, vendorOS string) ([]PortChannelItem, error) {
	if isBlockStyle(vendorOS) {
		var items []PortChannelItem
		for _, block := range splitBlocks(raw) {
			header, ok := block["_header"]
			if !ok {
				continue
			}
			items = append(items, PortChannelItem{
				PortChannel:      header,
				Status:           block["Status"],
				MemberInterfaces: splitCommaList(block["Member"]),
			})
		}
		return items, nil
	}

	var items []PortChannelItem
	for _, row := range splitTabular(raw) {
		if len(row) < 2 {
			continue
		}
		items = append(items, PortChannelItem{
			PortChannel:      row[0],
			Status:           row[1],
			MemberInterfaces: splitCommaList(rowRemainder(row, 2)),
		})
	}
	return items, nil
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func rowRemainder(row []string, from int) string {
	if from >= len(row) {
		return ""
	}
	return strings.Join(row[from:], ",")
}

// ParsePortChannelMembers yields one item per physical member interface,
// reading the same raw text as the port-channel parser. It is not
// registered in the Registry and pkg/store does not call it:
// store.PortChannelInserter builds the PortChannelMemberRecord rows from
// each PortChannelItem's MemberInterfaces itself.
func ParsePortChannelMembers(raw string, vendorOS string) ([]PortChannelMemberItem, error) {
	pcs, err := parsePortChannel(raw, vendorOS)
	if err != nil {
		return nil, err
	}
	var items []PortChannelMemberItem
	for _, pc := range pcs {
		for _, member := range pc.MemberInterfaces {
			items = append(items, PortChannelMemberItem{
				PortChannel:   pc.PortChannel,
				InterfaceName: member,
				Status:        pc.Status,
			})
		}
	}
	return items, nil
}

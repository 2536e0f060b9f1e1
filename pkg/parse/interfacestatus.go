package parse

// Cisco tabular: "interface_name link_status speed duplex". HPE blocks:
// "_header" = interface, "LinkStatus"/"Speed"/"Duplex" keys.
func parseInterfaceStatus(raw string, vendorOS string) ([]InterfaceStatusItem, error) {
	if isBlockStyle(vendorOS) {
		var items []InterfaceStatusItem
		for _, block := range splitBlocks(raw) {
			header, ok := block["_header"]
			if !ok {
				continue
			}
			items = append(items, InterfaceStatusItem{
				InterfaceName: header,
				LinkStatus:    block["LinkStatus"],
				Speed:         block["Speed"],
				Duplex:        block["Duplex"],
			})
		}
		return items, nil
	}

	var items []InterfaceStatusItem
	for _, row := range splitTabular(raw) {
		if len(row) < 4 {
			continue
		}
		items = append(items, InterfaceStatusItem{
			InterfaceName: row[0],
			LinkStatus:    row[1],
			Speed:         row[2],
			Duplex:        row[3],
		})
	}
	return items, nil
}

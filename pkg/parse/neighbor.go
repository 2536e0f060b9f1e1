package parse

// Cisco tabular: "local_interface remote_hostname remote_interface" (either
// of the last two may be "-" for no neighbor discovered). HPE blocks:
// "_header" = local interface, "Neighbor"/"NeighborPort" keys.
func parseNeighbor(raw string, vendorOS string) ([]NeighborItem, error) {
	if isBlockStyle(vendorOS) {
		var items []NeighborItem
		for _, block := range splitBlocks(raw) {
			header, ok := block["_header"]
			if !ok {
				continue
			}
			items = append(items, NeighborItem{
				LocalInterface:  header,
				RemoteHostname:  stringPtrOrNil(block["Neighbor"]),
				RemoteInterface: stringPtrOrNil(block["NeighborPort"]),
			})
		}
		return items, nil
	}

	var items []NeighborItem
	for _, row := range splitTabular(raw) {
		if len(row) < 1 {
			continue
		}
		item := NeighborItem{LocalInterface: row[0]}
		if len(row) > 1 {
			item.RemoteHostname = stringPtrOrNil(row[1])
		}
		if len(row) > 2 {
			item.RemoteInterface = stringPtrOrNil(row[2])
		}
		items = append(items, item)
	}
	return items, nil
}

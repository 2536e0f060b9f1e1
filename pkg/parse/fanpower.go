package parse

// Cisco tabular: "fan_id status". HPE blocks: "_header" = fan ID, "Status"
// key.
func parseFan(raw string, vendorOS string) ([]FanItem, error) {
	if isBlockStyle(vendorOS) {
		var items []FanItem
		for _, block := range splitBlocks(raw) {
			header, ok := block["_header"]
			if !ok {
				continue
			}
			items = append(items, FanItem{FanID: header, Status: block["Status"]})
		}
		return items, nil
	}

	var items []FanItem
	for _, row := range splitTabular(raw) {
		if len(row) < 2 {
			continue
		}
		items = append(items, FanItem{FanID: row[0], Status: row[1]})
	}
	return items, nil
}

// Cisco tabular: "ps_id status". HPE blocks: "_header" = power-supply ID,
// "Status" key.
func parsePower(raw string, vendorOS string) ([]PowerItem, error) {
	if isBlockStyle(vendorOS) {
		var items []PowerItem
		for _, block := range splitBlocks(raw) {
			header, ok := block["_header"]
			if !ok {
				continue
			}
			items = append(items, PowerItem{PsID: header, Status: block["Status"]})
		}
		return items, nil
	}

	var items []PowerItem
	for _, row := range splitTabular(raw) {
		if len(row) < 2 {
			continue
		}
		items = append(items, PowerItem{PsID: row[0], Status: row[1]})
	}
	return items, nil
}

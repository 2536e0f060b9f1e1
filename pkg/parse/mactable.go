package parse

// Cisco tabular: "mac_address vlan_id interface_name". HPE blocks:
// "_header" = MAC, "VLAN"/"Port" keys.
func parseMacTable(raw string, vendorOS string) ([]MacTableItem, error) {
	if isBlockStyle(vendorOS) {
		var items []MacTableItem
		for _, block := range splitBlocks(raw) {
			header, ok := block["_header"]
			if !ok {
				continue
			}
			items = append(items, MacTableItem{
				MacAddress:    header,
				VlanID:        parseIntOrZero(block["VLAN"]),
				InterfaceName: block["Port"],
			})
		}
		return items, nil
	}

	var items []MacTableItem
	for _, row := range splitTabular(raw) {
		if len(row) < 3 {
			continue
		}
		items = append(items, MacTableItem{
			MacAddress:    row[0],
			VlanID:        parseIntOrZero(row[1]),
			InterfaceName: row[2],
		})
	}
	return items, nil
}

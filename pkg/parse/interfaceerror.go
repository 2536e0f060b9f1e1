package parse

// Cisco tabular: "interface_name crc_errors". HPE blocks: "_header" =
// interface, "CRC" key.
func parseInterfaceError(raw string, vendorOS string) ([]InterfaceErrorItem, error) {
	if isBlockStyle(vendorOS) {
		var items []InterfaceErrorItem
		for _, block := range splitBlocks(raw) {
			header, ok := block["_header"]
			if !ok {
				continue
			}
			items = append(items, InterfaceErrorItem{
				InterfaceName: header,
				CrcErrors:     parseInt64OrZero(block["CRC"]),
			})
		}
		return items, nil
	}

	var items []InterfaceErrorItem
	for _, row := range splitTabular(raw) {
		if len(row) < 2 {
			continue
		}
		items = append(items, InterfaceErrorItem{
			InterfaceName: row[0],
			CrcErrors:     parseInt64OrZero(row[1]),
		})
	}
	return items, nil
}

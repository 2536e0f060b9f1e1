package parse

// Cisco tabular: "interface_name acl_name direction". HPE blocks:
// "_header" = interface, "ACL"/"Direction" keys.
func parseStaticAcl(raw string, vendorOS string) ([]StaticAclItem, error) {
	if isBlockStyle(vendorOS) {
		var items []StaticAclItem
		for _, block := range splitBlocks(raw) {
			header, ok := block["_header"]
			if !ok {
				continue
			}
			items = append(items, StaticAclItem{
				InterfaceName: header,
				AclName:       block["ACL"],
				Direction:     block["Direction"],
			})
		}
		return items, nil
	}

	var items []StaticAclItem
	for _, row := range splitTabular(raw) {
		if len(row) < 3 {
			continue
		}
		items = append(items, StaticAclItem{
			InterfaceName: row[0],
			AclName:       row[1],
			Direction:     row[2],
		})
	}
	return items, nil
}

// Cisco tabular: "mac_address acl_name". HPE blocks: "_header" = MAC,
// "ACL" key.
func parseDynamicAcl(raw string, vendorOS string) ([]DynamicAclItem, error) {
	if isBlockStyle(vendorOS) {
		var items []DynamicAclItem
		for _, block := range splitBlocks(raw) {
			header, ok := block["_header"]
			if !ok {
				continue
			}
			items = append(items, DynamicAclItem{
				MacAddress: header,
				AclName:    block["ACL"],
			})
		}
		return items, nil
	}

	var items []DynamicAclItem
	for _, row := range splitTabular(raw) {
		if len(row) < 2 {
			continue
		}
		items = append(items, DynamicAclItem{
			MacAddress: row[0],
			AclName:    row[1],
		})
	}
	return items, nil
}

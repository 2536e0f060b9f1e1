// Package ifname canonicalises vendor-specific interface names into a
// vendor-neutral short form (spec.md §6.3), used both for hashing (§4.1)
// and for matching expectations against collected records (§4.5).
//
// Ported from original_source/app/repositories/typed_records.py's
// _PREFIX_MAP / normalize_interface_name: an ordered list of prefix
// regexes, longest/most-specific first, each rewriting the matched prefix
// to a canonical short code and leaving the remainder (slot/port suffix)
// untouched.
package ifname

import "regexp"

type prefixRule struct {
	pattern     *regexp.Regexp
	replacement string
}

var prefixRules = []prefixRule{
	// ── long-format vendor prefixes, longest-match first ──
	{regexp.MustCompile(`(?i)^Twenty-FiveGigabitEthernet`), "WGE"},
	{regexp.MustCompile(`(?i)^Twenty-FiveGigE`), "WGE"},
	{regexp.MustCompile(`(?i)^Ten-GigabitEthernet`), "XGE"},
	{regexp.MustCompile(`(?i)^TenGigE`), "XGE"},
	{regexp.MustCompile(`(?i)^FourHundredGigE`), "FourHu"},
	{regexp.MustCompile(`(?i)^TwoHundredGigE`), "TwoHu"},
	{regexp.MustCompile(`(?i)^HundredGigE`), "HGE"},
	{regexp.MustCompile(`(?i)^FortyGigE`), "FGE"},
	{regexp.MustCompile(`(?i)^Bridge-Aggregation`), "BAGG"},
	{regexp.MustCompile(`(?i)^Vlan-interface\s*`), "Vlan"},
	{regexp.MustCompile(`(?i)^TwentyFiveGigabitEthernet`), "Twe"},
	{regexp.MustCompile(`(?i)^TwentyFiveGigE`), "Twe"},
	{regexp.MustCompile(`(?i)^HundredGigabitEthernet`), "Hu"},
	{regexp.MustCompile(`(?i)^FortyGigabitEthernet`), "Fo"},
	{regexp.MustCompile(`(?i)^TenGigabitEthernet`), "TE"},
	{regexp.MustCompile(`(?i)^GigabitEthernet`), "GE"},
	{regexp.MustCompile(`(?i)^FastEthernet`), "FE"},
	{regexp.MustCompile(`(?i)^Bundle-Ether`), "BE"},
	{regexp.MustCompile(`(?i)^Port-[Cc]hannel`), "Po"},
	{regexp.MustCompile(`(?i)^Management`), "Mgmt"},
	{regexp.MustCompile(`(?i)^Loopback`), "Lo"},
	{regexp.MustCompile(`(?i)^Tunnel`), "Tu"},
	{regexp.MustCompile(`(?i)^Vxlan`), "VXLAN"},
	{regexp.MustCompile(`(?i)^Ethernet`), "Eth"},
	{regexp.MustCompile(`(?i)^Nve`), "NVE"},
	{regexp.MustCompile(`(?i)^ge-`), "GE"},
	{regexp.MustCompile(`(?i)^xe-`), "XE"},
	{regexp.MustCompile(`(?i)^et-`), "ET"},
	{regexp.MustCompile(`(?i)^ae(?=\d)`), "AE"},
	{regexp.MustCompile(`(?i)^IRB\.`), "IRB"},
	// ── short-format prefixes (2-6 chars + digit), after long forms ──
	{regexp.MustCompile(`(?i)^FourHu(?=\d)`), "FourHu"},
	{regexp.MustCompile(`(?i)^TwoHu(?=\d)`), "TwoHu"},
	{regexp.MustCompile(`(?i)^XGE(?=[\d/])`), "XGE"},
	{regexp.MustCompile(`(?i)^WGE(?=[\d/])`), "WGE"},
	{regexp.MustCompile(`(?i)^FGE(?=[\d/])`), "FGE"},
	{regexp.MustCompile(`(?i)^HGE(?=[\d/])`), "HGE"},
	{regexp.MustCompile(`(?i)^BAGG(?=[\d.])`), "BAGG"},
	{regexp.MustCompile(`(?i)^MGE(?=[\d/])`), "MGE"},
	{regexp.MustCompile(`(?i)^MEth`), "Mgmt"},
	{regexp.MustCompile(`(?i)^Twe(?=\d)`), "Twe"},
	{regexp.MustCompile(`(?i)^Te(?=\d)`), "TE"},
	{regexp.MustCompile(`(?i)^Gi(?=\d)`), "GE"},
	{regexp.MustCompile(`(?i)^Ge(?=\d)`), "GE"},
	{regexp.MustCompile(`(?i)^Fa(?=\d)`), "FE"},
	{regexp.MustCompile(`(?i)^Fe(?=\d)`), "FE"},
	{regexp.MustCompile(`(?i)^Fo(?=\d)`), "Fo"},
	{regexp.MustCompile(`(?i)^Hu(?=\d)`), "Hu"},
	{regexp.MustCompile(`^Eth(?=[\d/])`), "Eth"},
	{regexp.MustCompile(`(?i)^Po(?=[\d.])`), "Po"},
	{regexp.MustCompile(`(?i)^BE(?=\d)`), "BE"},
	{regexp.MustCompile(`(?i)^NVE(?=\d)`), "NVE"},
	{regexp.MustCompile(`(?i)^BDI(?=\d)`), "BDI"},
	{regexp.MustCompile(`(?i)^Tu(?=\d)`), "Tu"},
	{regexp.MustCompile(`(?i)^Lo(?=\d)`), "Lo"},
	{regexp.MustCompile(`(?i)^Mgmt(?=\d)`), "Mgmt"},
	{regexp.MustCompile(`(?i)^Null(?=\d)`), "Null"},
	{regexp.MustCompile(`(?i)^Vlan(?=\d)`), "Vlan"},
	{regexp.MustCompile(`(?i)^VXLAN(?=\d)`), "VXLAN"},
	// ── Linux ──
	{regexp.MustCompile(`^ens(?=\d)`), "ENS"},
	{regexp.MustCompile(`^bond(?=\d)`), "BOND"},
	{regexp.MustCompile(`^br(?=\d)`), "BR"},
	{regexp.MustCompile(`^eth(?=\d)`), "ETH"},
}

// Canonicalize rewrites name's vendor-specific prefix to its canonical
// short form, leaving the slot/port suffix untouched. Unrecognised
// prefixes pass through unchanged. Matching against an already-canonical
// name is a no-op (P3: canonicalise(canonicalise(x)) == canonicalise(x)),
// because every canonical short code is itself one of the short-format
// rules' match targets and rewrites to itself.
func Canonicalize(name string) string {
	if name == "" {
		return name
	}
	for _, rule := range prefixRules {
		if loc := rule.pattern.FindStringIndex(name); loc != nil && loc[0] == 0 {
			return rule.replacement + name[loc[1]:]
		}
	}
	return name
}

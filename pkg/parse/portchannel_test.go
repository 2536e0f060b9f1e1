package parse

import "testing"

func TestParsePortChannel_Cisco(t *testing.T) {
	items, err := parsePortChannel("Po1 up Gi1/0/1,Gi1/0/2\n", vendorCiscoIOS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].PortChannel != "Po1" || items[0].Status != "up" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if len(items[0].MemberInterfaces) != 2 {
		t.Fatalf("unexpected members: %+v", items[0].MemberInterfaces)
	}
}

func TestParsePortChannelMembers(t *testing.T) {
	items, err := ParsePortChannelMembers("Po1 up Gi1/0/1,Gi1/0/2\n", vendorCiscoIOS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 member items, got %d", len(items))
	}
	if items[0].InterfaceName != "Gi1/0/1" || items[0].PortChannel != "Po1" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

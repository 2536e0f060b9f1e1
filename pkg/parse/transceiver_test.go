package parse

import "testing"

func TestParseTransceiver_Cisco(t *testing.T) {
	raw := "Gi1/0/1 23.5 3.31 1 -2.10 -3.40\nGi1/0/1 23.5 3.31 2 -2.20 -3.50\nGi1/0/2 24.0 3.30 1 -1.90 -3.10\n"
	items, err := parseTransceiver(raw, vendorCiscoIOS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 interfaces, got %d", len(items))
	}
	if items[0].InterfaceName != "Gi1/0/1" || len(items[0].Channels) != 2 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if *items[0].Temperature != 23.5 {
		t.Fatalf("unexpected temperature: %v", *items[0].Temperature)
	}
}

func TestParseTransceiver_HPE(t *testing.T) {
	raw := "Ten-GigabitEthernet1/0/1\nTemperature(C): 35\nVoltage(V): 3.3\nChannel 1 TX Power(dBm): -2.5\nChannel 1 RX Power(dBm): -4.0\n\nTen-GigabitEthernet1/0/2\nTemperature(C): 36\nVoltage(V): 3.29\n"
	items, err := parseTransceiver(raw, vendorHPE)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 interfaces, got %d", len(items))
	}
	if items[0].InterfaceName != "Ten-GigabitEthernet1/0/1" || len(items[0].Channels) != 1 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if *items[0].Channels[0].TxPower != -2.5 {
		t.Fatalf("unexpected tx power: %v", *items[0].Channels[0].TxPower)
	}
	if items[1].InterfaceName != "Ten-GigabitEthernet1/0/2" || len(items[1].Channels) != 0 {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
}

func TestFlattenTransceiver(t *testing.T) {
	temp, volt := 23.5, 3.31
	tx1, rx1 := -2.1, -3.4
	tx2, rx2 := -2.2, -3.5
	items := []TransceiverItem{
		{
			InterfaceName: "Gi1/0/1",
			Temperature:   &temp,
			Voltage:       &volt,
			Channels: []TransceiverChannel{
				{Channel: 1, TxPower: &tx1, RxPower: &rx1},
				{Channel: 2, TxPower: &tx2, RxPower: &rx2},
			},
		},
		{InterfaceName: "Gi1/0/2"},
	}

	rows := FlattenTransceiver(items)
	if len(rows) != 3 {
		t.Fatalf("expected 3 flattened rows (2 channels + 1 channel-less interface), got %d", len(rows))
	}
	if rows[0].InterfaceName != "Gi1/0/1" || *rows[0].TxPower != -2.1 || *rows[0].Temperature != 23.5 {
		t.Fatalf("unexpected row 0: %+v", rows[0])
	}
	if rows[2].InterfaceName != "Gi1/0/2" || rows[2].TxPower != nil {
		t.Fatalf("unexpected row 2: %+v", rows[2])
	}
}

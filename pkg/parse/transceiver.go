package parse

import (
	"strings"
)

// parseTransceiver handles both textual conventions. Cisco tabular rows
// are "interface temperature voltage channel tx_power rx_power", one line
// per channel, interface/temperature/voltage repeated across the
// interface's channel lines. HPE blocks have a "_header" interface name, a
// "Temperature"/"Voltage" pair, and one "Channel N TX/RX Power" pair per
// channel.
func parseTransceiver(raw string, vendorOS string) ([]TransceiverItem, error) {
	if isBlockStyle(vendorOS) {
		return parseTransceiverHPE(raw)
	}
	return parseTransceiverCisco(raw)
}

func parseTransceiverCisco(raw string) ([]TransceiverItem, error) {
	byInterface := map[string]*TransceiverItem{}
	var order []string

	for _, row := range splitTabular(raw) {
		if len(row) < 6 {
			continue
		}
		name := row[0]
		item, ok := byInterface[name]
		if !ok {
			item = &TransceiverItem{
				InterfaceName: name,
				Temperature:   parseFloatPtr(row[1]),
				Voltage:       parseFloatPtr(row[2]),
			}
			byInterface[name] = item
			order = append(order, name)
		}
		item.Channels = append(item.Channels, TransceiverChannel{
			Channel: parseIntOrZero(row[3]),
			TxPower: parseFloatPtr(row[4]),
			RxPower: parseFloatPtr(row[5]),
		})
	}

	items := make([]TransceiverItem, 0, len(order))
	for _, name := range order {
		items = append(items, *byInterface[name])
	}
	return items, nil
}

func parseTransceiverHPE(raw string) ([]TransceiverItem, error) {
	var items []TransceiverItem
	for _, block := range splitBlocks(raw) {
		header, ok := block["_header"]
		if !ok {
			continue
		}
		item := TransceiverItem{
			InterfaceName: header,
			Temperature:   parseFloatPtr(block["Temperature(C)"]),
			Voltage:       parseFloatPtr(block["Voltage(V)"]),
		}

		channelTx := map[int]*float64{}
		channelRx := map[int]*float64{}
		seen := map[int]bool{}
		var channelNums []int
		for key, val := range block {
			channel, field, matched := matchChannelKey(key)
			if !matched {
				continue
			}
			if !seen[channel] {
				seen[channel] = true
				channelNums = append(channelNums, channel)
			}
			switch field {
			case "TX":
				channelTx[channel] = parseFloatPtr(val)
			case "RX":
				channelRx[channel] = parseFloatPtr(val)
			}
		}
		sortInts(channelNums)
		for _, channel := range channelNums {
			item.Channels = append(item.Channels, TransceiverChannel{
				Channel: channel,
				TxPower: channelTx[channel],
				RxPower: channelRx[channel],
			})
		}
		items = append(items, item)
	}
	return items, nil
}

// matchChannelKey recognises "Channel N TX Power(dBm)" / "Channel N RX
// Power(dBm)" keys.
func matchChannelKey(key string) (channel int, field string, ok bool) {
	if !strings.HasPrefix(key, "Channel ") {
		return 0, "", false
	}
	rest := strings.TrimPrefix(key, "Channel ")
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return 0, "", false
	}
	channel = parseIntOrZero(fields[0])
	switch {
	case strings.HasPrefix(fields[1], "TX"):
		return channel, "TX", true
	case strings.HasPrefix(fields[1], "RX"):
		return channel, "RX", true
	}
	return 0, "", false
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

package parse

import "github.com/coolguazitech/network-dashboard-sub002/pkg/models"

// TransceiverRow is a flattened transceiver row, one per channel, without
// the recordMeta fields pkg/store fills in at insert time.
type TransceiverRow struct {
	InterfaceName string
	TxPower       *float64
	RxPower       *float64
	Temperature   *float64
	Voltage       *float64
}

// FlattenTransceiver implements spec.md §4.3's special flattening rule:
// each interface's one-or-more channels becomes one row per channel,
// carrying the interface's own temperature/voltage alongside that
// channel's tx/rx power. An interface with no channels still produces one
// row (tx/rx left nil) so its temperature/voltage are not silently
// dropped.
func FlattenTransceiver(items []TransceiverItem) []TransceiverRow {
	var rows []TransceiverRow
	for _, item := range items {
		if len(item.Channels) == 0 {
			rows = append(rows, TransceiverRow{
				InterfaceName: item.InterfaceName,
				Temperature:   item.Temperature,
				Voltage:       item.Voltage,
			})
			continue
		}
		for _, ch := range item.Channels {
			rows = append(rows, TransceiverRow{
				InterfaceName: item.InterfaceName,
				Temperature:   item.Temperature,
				Voltage:       item.Voltage,
				TxPower:       ch.TxPower,
				RxPower:       ch.RxPower,
			})
		}
	}
	return rows
}

// ToTransceiverRecords adapts flattened rows to pkg/store's input shape;
// the recordMeta fields are filled in by the Store at insert time.
func ToTransceiverRecords(rows []TransceiverRow) []models.TransceiverRecord {
	out := make([]models.TransceiverRecord, len(rows))
	for i, r := range rows {
		out[i] = models.TransceiverRecord{
			InterfaceName: r.InterfaceName,
			TxPower:       r.TxPower,
			RxPower:       r.RxPower,
			Temperature:   r.Temperature,
			Voltage:       r.Voltage,
		}
	}
	return out
}

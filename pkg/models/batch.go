package models

import "time"

// CollectionType identifies one of the 14 payload shapes, two of which are
// supplemental (arp_source, client_ping — see
// SPEC_FULL.md "Fetchers & Parsers"). Keys mirror the original
// scheduler.yaml API names used as collection_type (see
// typed_records.py TYPED_REPO_MAP), since CollectionBatch.collection_type
// and every downstream join rely on these exact strings.
type CollectionType string

const (
	CollectionTransceiver     CollectionType = "get_gbic_details"
	CollectionPortChannel     CollectionType = "get_channel_group"
	CollectionNeighbor        CollectionType = "get_uplink"
	CollectionInterfaceError  CollectionType = "get_error_count"
	CollectionStaticAcl       CollectionType = "get_static_acl"
	CollectionDynamicAcl      CollectionType = "get_dynamic_acl"
	CollectionMacTable        CollectionType = "get_mac_table"
	CollectionFan             CollectionType = "get_fan"
	CollectionPower           CollectionType = "get_power"
	CollectionVersion         CollectionType = "get_version"
	CollectionPing            CollectionType = "ping_batch"
	CollectionInterfaceStatus CollectionType = "get_interface_status"
	CollectionArpSource       CollectionType = "get_arp_source"
	CollectionClientPing      CollectionType = "gnms_ping"
)

// CollectionBatch is an append-only row representing one change point for
// (maintenance, collection_type, device).
type CollectionBatch struct {
	ID             int64          `db:"id" json:"id"`
	MaintenanceID  string         `db:"maintenance_id" json:"maintenance_id"`
	CollectionType CollectionType `db:"collection_type" json:"collection_type"`
	SwitchHostname string         `db:"switch_hostname" json:"switch_hostname"`
	RawData        string         `db:"raw_data" json:"raw_data"`
	ItemCount      int            `db:"item_count" json:"item_count"`
	CollectedAt    time.Time      `db:"collected_at" json:"collected_at"`
}

// LatestCollectionBatch is the mutable O(1)-lookup pointer to the most
// recent batch for (maintenance_id, collection_type, switch_hostname).
type LatestCollectionBatch struct {
	MaintenanceID  string         `db:"maintenance_id" json:"maintenance_id"`
	CollectionType CollectionType `db:"collection_type" json:"collection_type"`
	SwitchHostname string         `db:"switch_hostname" json:"switch_hostname"`
	BatchID        int64          `db:"batch_id" json:"batch_id"`
	DataHash       string         `db:"data_hash" json:"data_hash"`
	CollectedAt    time.Time      `db:"collected_at" json:"collected_at"`
	LastCheckedAt  time.Time      `db:"last_checked_at" json:"last_checked_at"`
}

// CollectionError records a single device's fetch/parse failure within a
// tick; it never aborts the rest of the batch (spec.md §4.2 step 3-4).
type CollectionError struct {
	ID             int64          `db:"id" json:"id"`
	MaintenanceID  string         `db:"maintenance_id" json:"maintenance_id"`
	CollectionType CollectionType `db:"collection_type" json:"collection_type"`
	SwitchHostname string         `db:"switch_hostname" json:"switch_hostname"`
	ErrorMessage   string         `db:"error_message" json:"error_message"`
	OccurredAt     time.Time      `db:"occurred_at" json:"occurred_at"`
}

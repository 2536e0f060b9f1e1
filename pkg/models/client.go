package models

import "time"

// ClientRecord is one observation of a tracked MAC, appended to its time
// series every tick the client-facing collectors run. Used by the Case
// Engine's change-flag detection (spec.md §4.7.5).
type ClientRecord struct {
	ID             int64     `db:"id" json:"id"`
	MaintenanceID  string    `db:"maintenance_id" json:"maintenance_id"`
	MacAddress     string    `db:"mac_address" json:"mac_address"`
	SwitchHostname *string   `db:"switch_hostname" json:"switch_hostname,omitempty"`
	InterfaceName  *string   `db:"interface_name" json:"interface_name,omitempty"`
	VlanID         *int      `db:"vlan_id" json:"vlan_id,omitempty"`
	Speed          *string   `db:"speed" json:"speed,omitempty"`
	Duplex         *string   `db:"duplex" json:"duplex,omitempty"`
	LinkStatus     *string   `db:"link_status" json:"link_status,omitempty"`
	PingReachable  *bool     `db:"ping_reachable" json:"ping_reachable,omitempty"`
	AclPasses      *bool     `db:"acl_passes" json:"acl_passes,omitempty"`
	CollectedAt    time.Time `db:"collected_at" json:"collected_at"`
}

// TrackedAttribute is one of the ClientRecord fields the change-flag
// detector walks (spec.md §4.7.5).
type TrackedAttribute string

const (
	AttributeSpeed         TrackedAttribute = "speed"
	AttributeDuplex        TrackedAttribute = "duplex"
	AttributeLinkStatus    TrackedAttribute = "link_status"
	AttributePingReachable TrackedAttribute = "ping_reachable"
	AttributeInterfaceName TrackedAttribute = "interface_name"
	AttributeVlanID        TrackedAttribute = "vlan_id"
	AttributeAclRules      TrackedAttribute = "acl_rules_applied"
)

// TrackedAttributes lists every attribute the change-flag refresh job
// computes, in the order spec.md §4.7.5 names them.
var TrackedAttributes = []TrackedAttribute{
	AttributeSpeed,
	AttributeDuplex,
	AttributeLinkStatus,
	AttributePingReachable,
	AttributeInterfaceName,
	AttributeVlanID,
	AttributeAclRules,
}

// LatestClientRecord is the per-MAC change-point pointer mirroring
// LatestCollectionBatch, letting the client ingester skip writes when
// nothing changed for that MAC.
type LatestClientRecord struct {
	MaintenanceID string    `db:"maintenance_id" json:"maintenance_id"`
	MacAddress    string    `db:"mac_address" json:"mac_address"`
	DataHash      string    `db:"data_hash" json:"data_hash"`
	CollectedAt   time.Time `db:"collected_at" json:"collected_at"`
	LastCheckedAt time.Time `db:"last_checked_at" json:"last_checked_at"`
}

package models

import (
	"time"

	"github.com/lib/pq"
)

// recordMeta is embedded into every typed record row: the common
// batch_id/maintenance_id/switch_hostname/collected_at columns spec.md §3
// requires on all typed-record tables.
type recordMeta struct {
	ID             int64     `db:"id" json:"id"`
	BatchID        int64     `db:"batch_id" json:"batch_id"`
	MaintenanceID  string    `db:"maintenance_id" json:"maintenance_id"`
	SwitchHostname string    `db:"switch_hostname" json:"switch_hostname"`
	CollectedAt    time.Time `db:"collected_at" json:"collected_at"`
}

// TransceiverRecord is the flattened (one row per optical channel) form of
// a parsed TransceiverItem — see pkg/parse's channel-flattening rule
// (spec.md §4.3).
type TransceiverRecord struct {
	recordMeta
	InterfaceName string   `db:"interface_name" json:"interface_name"`
	TxPower       *float64 `db:"tx_power" json:"tx_power"`
	RxPower       *float64 `db:"rx_power" json:"rx_power"`
	Temperature   *float64 `db:"temperature" json:"temperature"`
	Voltage       *float64 `db:"voltage" json:"voltage"`
}

type PortChannelRecord struct {
	recordMeta
	PortChannel string `db:"port_channel" json:"port_channel"`
	Status      string `db:"status" json:"status"`
	// MemberInterfaces is a Postgres text[] column; pq.StringArray
	// implements the driver.Valuer/sql.Scanner pair the pgx stdlib driver
	// needs to bind/scan it (pgx's own array support is native only
	// through its v5 query interface, not through database/sql).
	MemberInterfaces pq.StringArray `db:"member_interfaces" json:"member_interfaces"`
}

// PortChannelMemberRecord records one physical member's own status within a
// port-channel, used by the Port-Channel indicator's "any member down"
// check (spec.md §4.5).
type PortChannelMemberRecord struct {
	recordMeta
	PortChannel   string `db:"port_channel" json:"port_channel"`
	InterfaceName string `db:"interface_name" json:"interface_name"`
	Status        string `db:"status" json:"status"`
}

type NeighborRecord struct {
	recordMeta
	LocalInterface   string  `db:"local_interface" json:"local_interface"`
	RemoteHostname   *string `db:"remote_hostname" json:"remote_hostname"`
	RemoteInterface  *string `db:"remote_interface" json:"remote_interface"`
}

type InterfaceErrorRecord struct {
	recordMeta
	InterfaceName string `db:"interface_name" json:"interface_name"`
	CrcErrors     int64  `db:"crc_errors" json:"crc_errors"`
}

type StaticAclRecord struct {
	recordMeta
	InterfaceName string `db:"interface_name" json:"interface_name"`
	AclName       string `db:"acl_name" json:"acl_name"`
	Direction     string `db:"direction" json:"direction"`
}

type DynamicAclRecord struct {
	recordMeta
	MacAddress string `db:"mac_address" json:"mac_address"`
	AclName    string `db:"acl_name" json:"acl_name"`
}

type MacTableRecord struct {
	recordMeta
	MacAddress    string `db:"mac_address" json:"mac_address"`
	VlanID        int    `db:"vlan_id" json:"vlan_id"`
	InterfaceName string `db:"interface_name" json:"interface_name"`
}

type FanRecord struct {
	recordMeta
	FanID  string `db:"fan_id" json:"fan_id"`
	Status string `db:"status" json:"status"`
}

type PowerRecord struct {
	recordMeta
	PsID   string `db:"ps_id" json:"ps_id"`
	Status string `db:"status" json:"status"`
}

type VersionRecord struct {
	recordMeta
	Version string `db:"version" json:"version"`
}

// PingRecord backs both the device-ping (ping_batch) and client-ping
// (gnms_ping) collection types — the original's ClientPingRecordRepo
// reuses the same model keyed by a different collection_type, and this
// Go port preserves that one-struct-two-collection-types sharing.
type PingRecord struct {
	recordMeta
	IPAddress    string   `db:"ip_address" json:"ip_address"`
	IsReachable  bool     `db:"is_reachable" json:"is_reachable"`
	SuccessRate  *float64 `db:"success_rate" json:"success_rate"`
	LastCheckAt  time.Time `db:"last_check_at" json:"last_check_at"`
}

type InterfaceStatusRecord struct {
	recordMeta
	InterfaceName string `db:"interface_name" json:"interface_name"`
	LinkStatus    string `db:"link_status" json:"link_status"`
	Speed         string `db:"speed" json:"speed"`
	Duplex        string `db:"duplex" json:"duplex"`
}

// ArpSourceRecord is the supplemental collection type carried over from
// original_source's ArpSource expectation/record pairing (see
// SPEC_FULL.md's Fetchers & Parsers section): the switch each device
// reports as its ARP source. store.ArpSourceInserter writes these rows; no
// indicator evaluator reads them.
type ArpSourceRecord struct {
	recordMeta
	SourceHostname string `db:"source_hostname" json:"source_hostname"`
}

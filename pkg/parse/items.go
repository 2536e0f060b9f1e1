// Package parse turns raw CLI/gateway text into strongly typed items, one
// Parser per (collection_type, vendor_os) pair (spec.md §4.3). Item types
// mirror the typed-record schema in pkg/models field-for-field, except
// TransceiverItem which nests per-channel readings under a single
// per-interface item — flattening to one row per channel is the Store's
// job (spec.md §4.3's special flattening rule), performed by FlattenTransceiver.
package parse

// TransceiverChannel is one laser channel's Tx/Rx reading within an
// interface's transceiver item.
type TransceiverChannel struct {
	Channel int
	TxPower *float64
	RxPower *float64
}

// TransceiverItem carries per-interface fields (temperature, voltage) plus
// one or more channels; the Store flattens this into one row per channel.
type TransceiverItem struct {
	InterfaceName string
	Temperature   *float64
	Voltage       *float64
	Channels      []TransceiverChannel
}

type PortChannelItem struct {
	PortChannel      string
	Status           string
	MemberInterfaces []string
}

// PortChannelMemberItem is a physical member interface's own status inside
// a port-channel — used by the Port-Channel indicator's "any member down"
// check (spec.md §4.5).
type PortChannelMemberItem struct {
	PortChannel   string
	InterfaceName string
	Status        string
}

type NeighborItem struct {
	LocalInterface  string
	RemoteHostname  *string
	RemoteInterface *string
}

type InterfaceErrorItem struct {
	InterfaceName string
	CrcErrors     int64
}

type StaticAclItem struct {
	InterfaceName string
	AclName       string
	Direction     string
}

type DynamicAclItem struct {
	MacAddress string
	AclName    string
}

type MacTableItem struct {
	MacAddress    string
	VlanID        int
	InterfaceName string
}

type FanItem struct {
	FanID  string
	Status string
}

type PowerItem struct {
	PsID   string
	Status string
}

type VersionItem struct {
	Version string
}

type PingItem struct {
	IPAddress   string
	IsReachable bool
	SuccessRate *float64
}

type InterfaceStatusItem struct {
	InterfaceName string
	LinkStatus    string
	Speed         string
	Duplex        string
}

type ArpSourceItem struct {
	SourceHostname string
}

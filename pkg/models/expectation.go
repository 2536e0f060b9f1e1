package models

// UplinkExpectation declares the desired LLDP/CDP neighbor for one local
// interface. Unique on (maintenance_id, hostname, local_interface).
type UplinkExpectation struct {
	ID                int64  `db:"id" json:"id"`
	MaintenanceID     string `db:"maintenance_id" json:"maintenance_id"`
	Hostname          string `db:"hostname" json:"hostname"`
	LocalInterface    string `db:"local_interface" json:"local_interface"`
	ExpectedNeighbor  string `db:"expected_neighbor" json:"expected_neighbor"`
	ExpectedInterface string `db:"expected_interface" json:"expected_interface,omitempty"`
}

// VersionExpectation declares the desired firmware version for a device.
// Unique on (maintenance_id, hostname).
type VersionExpectation struct {
	ID              int64  `db:"id" json:"id"`
	MaintenanceID   string `db:"maintenance_id" json:"maintenance_id"`
	Hostname        string `db:"hostname" json:"hostname"`
	ExpectedVersion string `db:"expected_version" json:"expected_version"`
}

// PortChannelExpectation declares the desired member-interface set for a
// port-channel. Unique on (maintenance_id, hostname, port_channel).
type PortChannelExpectation struct {
	ID               int64    `db:"id" json:"id"`
	MaintenanceID    string   `db:"maintenance_id" json:"maintenance_id"`
	Hostname         string   `db:"hostname" json:"hostname"`
	PortChannel      string          `db:"port_channel" json:"port_channel"`
	MemberInterfaces JSONStringSlice `db:"member_interfaces" json:"member_interfaces"`
}

// ArpSourceExpectation declares which hostname is the expected ARP source
// for a subnet during the maintenance. Unique on (maintenance_id, hostname).
type ArpSourceExpectation struct {
	ID            int64  `db:"id" json:"id"`
	MaintenanceID string `db:"maintenance_id" json:"maintenance_id"`
	Hostname      string `db:"hostname" json:"hostname"`
}

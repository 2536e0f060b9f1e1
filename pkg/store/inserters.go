package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/parse"
)

// Each inserter below binds pkg/parse's item type to its typed-record
// table, filling in the shared batch_id/maintenance_id/switch_hostname/
// collected_at columns SaveBatch supplies. One row per parsed item, except
// TransceiverInserter which applies spec.md §4.3's channel-flattening rule
// first.

func TransceiverInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.TransceiverItem) error {
	rows := parse.FlattenTransceiver(items)
	for _, r := range rows {
		rec := models.TransceiverRecord{
			InterfaceName: r.InterfaceName,
			TxPower:       r.TxPower,
			RxPower:       r.RxPower,
			Temperature:   r.Temperature,
			Voltage:       r.Voltage,
		}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO transceiver_records (batch_id, maintenance_id, switch_hostname, collected_at, interface_name, tx_power, rx_power, temperature, voltage)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :interface_name, :tx_power, :rx_power, :temperature, :voltage)`, rec); err != nil {
			return err
		}
	}
	return nil
}

func PortChannelInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.PortChannelItem) error {
	for _, item := range items {
		rec := models.PortChannelRecord{
			PortChannel:      item.PortChannel,
			Status:           item.Status,
			MemberInterfaces: pq.StringArray(item.MemberInterfaces),
		}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO port_channel_records (batch_id, maintenance_id, switch_hostname, collected_at, port_channel, status, member_interfaces)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :port_channel, :status, :member_interfaces)`, rec); err != nil {
			return err
		}

		for _, member := range item.MemberInterfaces {
			memberRec := models.PortChannelMemberRecord{
				PortChannel:   item.PortChannel,
				InterfaceName: member,
				Status:        item.Status,
			}
			memberRec.BatchID, memberRec.MaintenanceID, memberRec.SwitchHostname, memberRec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
			if _, err := tx.NamedExecContext(ctx, `
				INSERT INTO port_channel_member_records (batch_id, maintenance_id, switch_hostname, collected_at, port_channel, interface_name, status)
				VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :port_channel, :interface_name, :status)`, memberRec); err != nil {
				return err
			}
		}
	}
	return nil
}

func NeighborInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.NeighborItem) error {
	for _, item := range items {
		rec := models.NeighborRecord{
			LocalInterface:  item.LocalInterface,
			RemoteHostname:  item.RemoteHostname,
			RemoteInterface: item.RemoteInterface,
		}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO neighbor_records (batch_id, maintenance_id, switch_hostname, collected_at, local_interface, remote_hostname, remote_interface)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :local_interface, :remote_hostname, :remote_interface)`, rec); err != nil {
			return err
		}
	}
	return nil
}

func InterfaceErrorInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.InterfaceErrorItem) error {
	for _, item := range items {
		rec := models.InterfaceErrorRecord{InterfaceName: item.InterfaceName, CrcErrors: item.CrcErrors}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO interface_error_records (batch_id, maintenance_id, switch_hostname, collected_at, interface_name, crc_errors)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :interface_name, :crc_errors)`, rec); err != nil {
			return err
		}
	}
	return nil
}

func StaticAclInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.StaticAclItem) error {
	for _, item := range items {
		rec := models.StaticAclRecord{InterfaceName: item.InterfaceName, AclName: item.AclName, Direction: item.Direction}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO static_acl_records (batch_id, maintenance_id, switch_hostname, collected_at, interface_name, acl_name, direction)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :interface_name, :acl_name, :direction)`, rec); err != nil {
			return err
		}
	}
	return nil
}

func DynamicAclInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.DynamicAclItem) error {
	for _, item := range items {
		rec := models.DynamicAclRecord{MacAddress: item.MacAddress, AclName: item.AclName}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO dynamic_acl_records (batch_id, maintenance_id, switch_hostname, collected_at, mac_address, acl_name)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :mac_address, :acl_name)`, rec); err != nil {
			return err
		}
	}
	return nil
}

func MacTableInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.MacTableItem) error {
	for _, item := range items {
		rec := models.MacTableRecord{MacAddress: item.MacAddress, VlanID: item.VlanID, InterfaceName: item.InterfaceName}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO mac_table_records (batch_id, maintenance_id, switch_hostname, collected_at, mac_address, vlan_id, interface_name)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :mac_address, :vlan_id, :interface_name)`, rec); err != nil {
			return err
		}
	}
	return nil
}

func FanInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.FanItem) error {
	for _, item := range items {
		rec := models.FanRecord{FanID: item.FanID, Status: item.Status}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO fan_records (batch_id, maintenance_id, switch_hostname, collected_at, fan_id, status)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :fan_id, :status)`, rec); err != nil {
			return err
		}
	}
	return nil
}

func PowerInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.PowerItem) error {
	for _, item := range items {
		rec := models.PowerRecord{PsID: item.PsID, Status: item.Status}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO power_records (batch_id, maintenance_id, switch_hostname, collected_at, ps_id, status)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :ps_id, :status)`, rec); err != nil {
			return err
		}
	}
	return nil
}

func VersionInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.VersionItem) error {
	for _, item := range items {
		rec := models.VersionRecord{Version: item.Version}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO version_records (batch_id, maintenance_id, switch_hostname, collected_at, version)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :version)`, rec); err != nil {
			return err
		}
	}
	return nil
}

func PingInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.PingItem) error {
	for _, item := range items {
		rec := models.PingRecord{
			IPAddress:   item.IPAddress,
			IsReachable: item.IsReachable,
			SuccessRate: item.SuccessRate,
			LastCheckAt: collectedAt,
		}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO ping_records (batch_id, maintenance_id, switch_hostname, collected_at, ip_address, is_reachable, success_rate, last_check_at)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :ip_address, :is_reachable, :success_rate, :last_check_at)`, rec); err != nil {
			return err
		}
	}
	return nil
}

func InterfaceStatusInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.InterfaceStatusItem) error {
	for _, item := range items {
		rec := models.InterfaceStatusRecord{
			InterfaceName: item.InterfaceName,
			LinkStatus:    item.LinkStatus,
			Speed:         item.Speed,
			Duplex:        item.Duplex,
		}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO interface_status_records (batch_id, maintenance_id, switch_hostname, collected_at, interface_name, link_status, speed, duplex)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :interface_name, :link_status, :speed, :duplex)`, rec); err != nil {
			return err
		}
	}
	return nil
}

func ArpSourceInserter(ctx context.Context, tx *sqlx.Tx, batchID int64, maintenanceID, switchHostname string, collectedAt time.Time, items []parse.ArpSourceItem) error {
	for _, item := range items {
		rec := models.ArpSourceRecord{SourceHostname: item.SourceHostname}
		rec.BatchID, rec.MaintenanceID, rec.SwitchHostname, rec.CollectedAt = batchID, maintenanceID, switchHostname, collectedAt
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO arp_source_records (batch_id, maintenance_id, switch_hostname, collected_at, source_hostname)
			VALUES (:batch_id, :maintenance_id, :switch_hostname, :collected_at, :source_hostname)`, rec); err != nil {
			return err
		}
	}
	return nil
}

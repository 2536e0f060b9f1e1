package validation

import (
	"testing"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

func strp(s string) *string { return &s }

func TestNormalizeMAC(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"aa:bb:cc:dd:ee:ff", "AA:BB:CC:DD:EE:FF", false},
		{"AA-BB-CC-DD-EE-FF", "AA:BB:CC:DD:EE:FF", false},
		{"aabbccddeeff", "AA:BB:CC:DD:EE:FF", false},
		{"not-a-mac", "", true},
		{"aa:bb:cc:dd:ee", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeMAC(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("NormalizeMAC(%q): expected error, got none", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizeMAC(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeMAC(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDeviceListInvariants_DuplicateOldIP(t *testing.T) {
	entries := []models.DeviceListEntry{
		{OldHostname: strp("sw-a"), OldIP: strp("10.0.0.1")},
		{OldHostname: strp("sw-b"), OldIP: strp("10.0.0.1")},
	}
	err := DeviceListInvariants(entries)
	if err == nil {
		t.Fatal("expected duplicate OLD IP to be rejected")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeviceListInvariants_HostnameNotDisjoint(t *testing.T) {
	entries := []models.DeviceListEntry{
		{OldHostname: strp("sw-a"), NewHostname: strp("sw-b")},
		{OldHostname: strp("sw-b"), NewHostname: strp("sw-c")},
	}
	err := DeviceListInvariants(entries)
	if err == nil {
		t.Fatal("expected disjointness violation to be rejected")
	}
}

func TestDeviceListInvariants_CrossMapping(t *testing.T) {
	entries := []models.DeviceListEntry{
		{OldHostname: strp("A"), NewHostname: strp("B")},
		{OldHostname: strp("B"), NewHostname: strp("A")},
	}
	err := DeviceListInvariants(entries)
	if err == nil {
		t.Fatal("expected cross-mapping to be rejected")
	}
}

func TestDeviceListInvariants_Valid(t *testing.T) {
	entries := []models.DeviceListEntry{
		{OldHostname: strp("A"), OldIP: strp("10.0.0.1"), NewHostname: strp("A-new"), NewIP: strp("10.0.0.2")},
		{OldHostname: strp("B"), OldIP: strp("10.0.0.3")},
	}
	if err := DeviceListInvariants(entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

package parse

import (
	"testing"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

func TestRegisterAll_CoversEveryCollectionType(t *testing.T) {
	r := NewRegistry()
	RegisterAll(r)

	perVendor := []models.CollectionType{
		models.CollectionTransceiver, models.CollectionPortChannel, models.CollectionNeighbor,
		models.CollectionInterfaceError, models.CollectionStaticAcl, models.CollectionDynamicAcl,
		models.CollectionMacTable, models.CollectionFan, models.CollectionPower,
		models.CollectionVersion, models.CollectionInterfaceStatus, models.CollectionArpSource,
	}
	for _, ct := range perVendor {
		for _, vendorOS := range []string{vendorCiscoIOS, vendorCiscoNX, vendorHPE} {
			if _, err := r.Get(ct, vendorOS); err != nil {
				t.Errorf("expected parser for (%s, %s): %v", ct, vendorOS, err)
			}
		}
	}

	for _, ct := range []models.CollectionType{models.CollectionPing, models.CollectionClientPing} {
		if _, err := r.Get(ct, ""); err != nil {
			t.Errorf("expected vendor-agnostic parser for %s: %v", ct, err)
		}
	}
}

func TestRegistry_GetUnregistered(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get(models.CollectionVersion, "Juniper"); err == nil {
		t.Fatal("expected error for unregistered vendor")
	}
}

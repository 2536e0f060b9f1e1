package fetch

import (
	"context"
	"fmt"
	"testing"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

type fakePerDeviceFetcher struct {
	failIP string
}

func (f *fakePerDeviceFetcher) CollectionType() models.CollectionType { return models.CollectionVersion }
func (f *fakePerDeviceFetcher) Source() SourceFamily                  { return SourceFNA }
func (f *fakePerDeviceFetcher) BatchMode() BatchMode                  { return PerDevice }
func (f *fakePerDeviceFetcher) FetchOne(_ context.Context, target DeviceTarget) (string, error) {
	if target.IP == f.failIP {
		return "", fmt.Errorf("simulated failure for %s", target.IP)
	}
	return "ok:" + target.IP, nil
}

type fakeBulkFetcher struct{}

func (f *fakeBulkFetcher) CollectionType() models.CollectionType { return models.CollectionClientPing }
func (f *fakeBulkFetcher) Source() SourceFamily                  { return SourceGNMSPing }
func (f *fakeBulkFetcher) BatchMode() BatchMode                  { return Bulk }
func (f *fakeBulkFetcher) FetchBulk(_ context.Context, targets []DeviceTarget) (map[string]string, error) {
	out := make(map[string]string)
	for _, t := range targets {
		if t.IP == "10.0.0.2" {
			continue // simulate a missing entry
		}
		out[t.IP] = "ok:" + t.IP
	}
	return out, nil
}

func TestRun_PerDevice_OneFailureDoesNotAbortBatch(t *testing.T) {
	f := &fakePerDeviceFetcher{failIP: "10.0.0.2"}
	targets := []DeviceTarget{{IP: "10.0.0.1"}, {IP: "10.0.0.2"}, {IP: "10.0.0.3"}}

	results := Run(context.Background(), f, targets, 2)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	byIP := make(map[string]DeviceResult)
	for _, r := range results {
		byIP[r.Target.IP] = r
	}

	if byIP["10.0.0.1"].Err != nil || byIP["10.0.0.1"].Raw != "ok:10.0.0.1" {
		t.Fatalf("unexpected result for 10.0.0.1: %+v", byIP["10.0.0.1"])
	}
	if byIP["10.0.0.2"].Err == nil {
		t.Fatal("expected failure recorded for 10.0.0.2")
	}
	if byIP["10.0.0.3"].Err != nil {
		t.Fatalf("unexpected error for 10.0.0.3: %v", byIP["10.0.0.3"].Err)
	}
}

func TestRun_Bulk_MissingEntryBecomesError(t *testing.T) {
	f := &fakeBulkFetcher{}
	targets := []DeviceTarget{{IP: "10.0.0.1"}, {IP: "10.0.0.2"}}

	results := Run(context.Background(), f, targets, DefaultConcurrency)
	byIP := make(map[string]DeviceResult)
	for _, r := range results {
		byIP[r.Target.IP] = r
	}

	if byIP["10.0.0.1"].Err != nil {
		t.Fatalf("unexpected error: %v", byIP["10.0.0.1"].Err)
	}
	if byIP["10.0.0.2"].Err == nil {
		t.Fatal("expected missing-entry error for 10.0.0.2")
	}
}

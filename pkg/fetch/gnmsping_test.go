package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

func TestGNMSPingFetcher_FetchBulk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if len(body) == 0 {
			t.Fatal("expected non-empty request body")
		}
		w.Write([]byte("ip,reachable\n10.0.0.1,true\n10.0.0.2,false\n"))
	}))
	defer srv.Close()

	f := NewGNMSPingFetcher(models.CollectionClientPing, srv.URL, "maintcore", "tok", srv.Client(), NewBreakers())

	targets := []DeviceTarget{{IP: "10.0.0.1"}, {IP: "10.0.0.2"}}
	out, err := f.FetchBulk(context.Background(), targets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["10.0.0.1"] != "10.0.0.1,true" {
		t.Fatalf("unexpected entry for 10.0.0.1: %q", out["10.0.0.1"])
	}
	if out["10.0.0.2"] != "10.0.0.2,false" {
		t.Fatalf("unexpected entry for 10.0.0.2: %q", out["10.0.0.2"])
	}
	if f.Source() != SourceGNMSPing || f.BatchMode() != Bulk {
		t.Fatalf("unexpected source/batch mode")
	}
}

func TestSplitByIP_SkipsHeaderAndBlankLines(t *testing.T) {
	out := splitByIP("IP,Reachable\n\n10.0.0.1,true\n")
	if len(out) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(out))
	}
	if out["10.0.0.1"] != "10.0.0.1,true" {
		t.Fatalf("unexpected entry: %q", out["10.0.0.1"])
	}
}

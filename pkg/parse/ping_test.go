package parse

import "testing"

func TestParsePing(t *testing.T) {
	items, err := parsePing("ip,reachable\n10.0.0.1,true\n10.0.0.2,false\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].IsReachable {
		t.Fatalf("expected first item reachable")
	}
	if items[1].IsReachable {
		t.Fatalf("expected second item unreachable")
	}
}

func TestParsePing_WithSuccessRate(t *testing.T) {
	items, err := parsePing("10.0.0.1,true,0.98\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].SuccessRate == nil || *items[0].SuccessRate != 0.98 {
		t.Fatalf("unexpected item: %+v", items)
	}
}

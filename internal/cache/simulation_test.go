package cache

import (
	"context"
	"strings"
	"testing"
)

func TestRequestKey_StableAndDistinct(t *testing.T) {
	type req struct {
		Days  int `json:"simulation_days"`
		Start int `json:"start_day"`
	}

	a1, err := RequestKey(req{Days: 31, Start: 0})
	if err != nil {
		t.Fatalf("RequestKey failed: %v", err)
	}
	a2, err := RequestKey(req{Days: 31, Start: 0})
	if err != nil {
		t.Fatalf("RequestKey failed: %v", err)
	}
	b, err := RequestKey(req{Days: 365, Start: 0})
	if err != nil {
		t.Fatalf("RequestKey failed: %v", err)
	}

	if a1 != a2 {
		t.Errorf("identical requests produced different keys: %s vs %s", a1, a2)
	}
	if a1 == b {
		t.Error("different requests share a key")
	}
	if !strings.HasPrefix(a1, simulationKeyPrefix+":") {
		t.Errorf("key %q missing prefix %q", a1, simulationKeyPrefix)
	}
}

func TestNoopCache_AlwaysMisses(t *testing.T) {
	c := NewNoopSimulationCache()

	resp, ok, err := c.Get(context.Background(), "simulation:response:any")
	if err != nil || ok || resp != nil {
		t.Errorf("noop Get = (%v, %v, %v), want miss without error", resp, ok, err)
	}
	if err := c.Set(context.Background(), "simulation:response:any", nil); err != nil {
		t.Errorf("noop Set returned %v", err)
	}
	if err := c.InvalidateAll(context.Background()); err != nil {
		t.Errorf("noop InvalidateAll returned %v", err)
	}
}

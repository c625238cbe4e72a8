package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "balance.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	b, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if len(b.SupplyChain.InputUnitCosts) != 0 {
		t.Errorf("expected empty balance, got %+v", b)
	}
}

func TestLoadMalformedFileReturnsError(t *testing.T) {
	path := writeFile(t, "supply_chain: [not: a: mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadValidOverrides(t *testing.T) {
	path := writeFile(t, `
supply_chain:
  input_unit_costs:
    parts: 5.5
  lead_time_days: [2, 6]
taxes:
  corporate_rate: 0.3
stocks:
  volatility: 0.05
`)
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if b.SupplyChain.InputUnitCosts["parts"] != 5.5 {
		t.Errorf("parts cost = %v, want 5.5", b.SupplyChain.InputUnitCosts["parts"])
	}
	lo, hi, ok := b.SupplyChain.LeadTimeBounds()
	if !ok || lo != 2 || hi != 6 {
		t.Errorf("lead time bounds = %d,%d,%v", lo, hi, ok)
	}
	if b.Taxes.CorporateRate != 0.3 {
		t.Errorf("corporate rate = %v", b.Taxes.CorporateRate)
	}
	if b.Stocks.Volatility != 0.05 {
		t.Errorf("volatility = %v", b.Stocks.Volatility)
	}
}

func TestLeadTimeBoundsRejectsBadShapes(t *testing.T) {
	cases := []SupplyBalance{
		{LeadTimeDays: []int{5}},
		{LeadTimeDays: []int{0, 5}},
		{LeadTimeDays: []int{6, 3}},
	}
	for i, c := range cases {
		if _, _, ok := c.LeadTimeBounds(); ok {
			t.Errorf("case %d: expected rejection of %v", i, c.LeadTimeDays)
		}
	}
}

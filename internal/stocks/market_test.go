package stocks

import (
	"testing"

	"github.com/MarcinGorn/businesssuite/internal/entropy"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

func TestSeedsDefaultTickers(t *testing.T) {
	state := world.NewState()
	m := New(state, entropy.NewSource(1))

	want := map[string]float64{"RETL": 50, "MANU": 40, "REAL": 60, "TECH": 80}
	for ticker, price := range want {
		got, ok := m.LatestPrice(ticker)
		if !ok || got != price {
			t.Errorf("%s = %v,%v, want %v", ticker, got, ok, price)
		}
	}
}

func TestSeedPreservesExistingHistory(t *testing.T) {
	state := world.NewState()
	state.Market.StockPrices = map[string][]float64{"RETL": {50, 51, 52}}

	m := New(state, entropy.NewSource(1))

	history, ok := m.History("RETL")
	if !ok || len(history) != 3 {
		t.Fatalf("history = %v, reseeding clobbered saved prices", history)
	}
	if _, ok := m.LatestPrice("TECH"); ok {
		t.Error("seed ran over a non-empty price map")
	}
}

func TestTickAppendsOnePricePerTicker(t *testing.T) {
	state := world.NewState()
	m := New(state, entropy.NewSource(1))

	m.TickDaily()
	m.TickDaily()

	for ticker := range state.Market.StockPrices {
		if got := len(state.Market.StockPrices[ticker]); got != 3 {
			t.Errorf("%s history length = %d, want 3", ticker, got)
		}
	}
}

func TestPriceFlooredAtOne(t *testing.T) {
	state := world.NewState()
	state.Market.StockPrices = map[string][]float64{"RETL": {1.01}}
	m := New(state, entropy.NewSource(1))
	m.cfg.Volatility = 0.5 // huge shocks force the floor quickly

	for day := 0; day < 200; day++ {
		m.TickDaily()
	}
	for _, price := range state.Market.StockPrices["RETL"] {
		if price < 1.0 {
			t.Fatalf("price below floor: %v", price)
		}
	}
}

func TestNeutralMarketDriftIsSmall(t *testing.T) {
	state := world.NewState()
	state.Market.InflationAnnual = 0
	m := New(state, entropy.NewSource(1))
	m.cfg.Volatility = 0
	m.cfg.TrendStrength = 0

	m.TickDaily()

	// Neutral indices, zero volatility, zero trend: price must not move.
	for ticker, history := range state.Market.StockPrices {
		if history[len(history)-1] != history[0] {
			t.Errorf("%s moved from %v to %v with all drivers off",
				ticker, history[0], history[len(history)-1])
		}
	}
}

func TestQuietMarketMovesOnlyByInflationDrag(t *testing.T) {
	state := world.NewState()
	state.Market.StockPrices = map[string][]float64{"RETL": {100.0}}
	m := New(state, entropy.NewSource(1))
	m.cfg.Volatility = 0
	m.cfg.TrendStrength = 0

	m.TickDaily()

	history := state.Market.StockPrices["RETL"]
	if len(history) != 2 {
		t.Fatalf("history = %v", history)
	}
	drag := state.Market.InflationAnnual / 365 * 0.3
	want := 100.0 * (1.0 - drag)
	if diff := history[1] - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("price = %v, want %v", history[1], want)
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	state := world.NewState()
	m := New(state, entropy.NewSource(1))

	history, _ := m.History("RETL")
	history[0] = -1

	if state.Market.StockPrices["RETL"][0] != 50 {
		t.Fatal("History exposed internal slice")
	}
}

func TestLatestPriceUnknownTicker(t *testing.T) {
	state := world.NewState()
	m := New(state, entropy.NewSource(1))
	if _, ok := m.LatestPrice("NOPE"); ok {
		t.Fatal("unknown ticker reported a price")
	}
}

package tax

import (
	"math"
	"testing"

	"github.com/MarcinGorn/businesssuite/internal/finance"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

func TestAccrualSkipsNonPositiveProfit(t *testing.T) {
	state := world.NewState()
	state.Businesses[0].ProfitRolling = -500
	a := New(state, nil)

	a.AccrueDaily()

	if state.Taxes.AccruedProfit != 0 || state.Taxes.AccruedIncome != 0 {
		t.Fatalf("accrued on negative profit: %+v", state.Taxes)
	}
	if state.Taxes.DaysAccrued != 1 {
		t.Errorf("days accrued = %d, want 1 (cadence counts regardless)", state.Taxes.DaysAccrued)
	}
}

func TestAccrualApproximatesDailyProfit(t *testing.T) {
	state := world.NewState()
	state.Businesses[0].ProfitRolling = 2000
	a := New(state, nil)

	a.AccrueDaily()

	if math.Abs(state.Taxes.AccruedProfit-100) > 1e-9 {
		t.Errorf("accrued profit = %v, want 100", state.Taxes.AccruedProfit)
	}
	if math.Abs(state.Taxes.AccruedIncome-50) > 1e-9 {
		t.Errorf("accrued income = %v, want 50", state.Taxes.AccruedIncome)
	}
}

func TestSettlementOnCadence(t *testing.T) {
	state := world.NewState()
	state.Businesses[0].ProfitRolling = 2000
	ledger := finance.NewLedger(state)
	a := New(state, ledger)
	startCash := state.Player.Cash

	for day := 0; day < 30; day++ {
		a.AccrueDaily()
	}

	// 30 days × 100 profit × 21% corporate + 30 × 50 income × 24% personal.
	wantDue := 3000*0.21 + 1500*0.24
	if got := startCash - state.Player.Cash; math.Abs(got-wantDue) > 1e-6 {
		t.Errorf("cash paid = %v, want %v", got, wantDue)
	}
	if state.Taxes.DaysAccrued != 0 || state.Taxes.AccruedProfit != 0 {
		t.Errorf("accumulators not reset: %+v", state.Taxes)
	}
	if totals := ledger.Totals(); math.Abs(totals.Taxes-wantDue) > 1e-6 {
		t.Errorf("ledger taxes = %v, want %v", totals.Taxes, wantDue)
	}
}

func TestShortfallZeroesCashAndDentsCredit(t *testing.T) {
	state := world.NewState()
	state.Businesses[0].ProfitRolling = 200000
	state.Player.Cash = 100
	ledger := finance.NewLedger(state)
	a := New(state, ledger)
	startCredit := state.Player.CreditScore

	for day := 0; day < 30; day++ {
		a.AccrueDaily()
	}

	if state.Player.Cash != 0 {
		t.Errorf("cash = %v, want 0 on shortfall", state.Player.Cash)
	}
	// Due: 300000×0.21 + 150000×0.24 = 99000. Shortfall 98900 → 98 points.
	wantDrop := 98
	if got := startCredit - state.Player.CreditScore; got != wantDrop {
		t.Errorf("credit drop = %d, want %d", got, wantDrop)
	}
	// The full amount due is recorded even though it went unpaid.
	if totals := ledger.Totals(); math.Abs(totals.Taxes-99000) > 1e-6 {
		t.Errorf("ledger taxes = %v, want 99000", totals.Taxes)
	}
}

func TestApplyBalanceOverridesCadence(t *testing.T) {
	state := world.NewState()
	state.Businesses[0].ProfitRolling = 2000
	a := New(state, nil)
	a.cfg.CadenceDays = 5
	startCash := state.Player.Cash

	for day := 0; day < 5; day++ {
		a.AccrueDaily()
	}

	if state.Player.Cash == startCash {
		t.Fatal("no settlement after shortened cadence")
	}
}

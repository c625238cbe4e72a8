// Package tax accrues approximate corporate and personal liabilities
// daily and settles them on a fixed cadence. Settlement is all-or-nothing:
// a shortfall zeroes cash and dents the credit score.
package tax

import (
	"github.com/MarcinGorn/businesssuite/internal/config"
	"github.com/MarcinGorn/businesssuite/internal/finance"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

// Config holds tax rates and the settlement cadence.
type Config struct {
	CorporateRate float64
	PersonalRate  float64
	CadenceDays   int
}

// DefaultConfig returns the built-in tax policy.
func DefaultConfig() Config {
	return Config{
		CorporateRate: 0.21,
		PersonalRate:  0.24,
		CadenceDays:   30,
	}
}

// Authority accrues and settles taxes against the shared world state.
type Authority struct {
	state  *world.State
	cfg    Config
	ledger *finance.Ledger // optional
}

// New creates a tax authority with default rates. ledger may be nil.
func New(state *world.State, ledger *finance.Ledger) *Authority {
	return &Authority{state: state, cfg: DefaultConfig(), ledger: ledger}
}

// Rebind points the authority at a freshly loaded state.
func (a *Authority) Rebind(state *world.State) {
	a.state = state
}

// ApplyBalance overlays well-formed tax overrides.
func (a *Authority) ApplyBalance(b config.Balance) {
	if r := b.Taxes.CorporateRate; r > 0 && r < 1 {
		a.cfg.CorporateRate = r
	}
	if r := b.Taxes.PersonalRate; r > 0 && r < 1 {
		a.cfg.PersonalRate = r
	}
	if d := b.Taxes.CadenceDays; d > 0 {
		a.cfg.CadenceDays = d
	}
}

// AccrueDaily approximates taxable corporate profit as 5% of summed firm
// rolling profit and personal income as half of that, then settles once
// the cadence elapses. Accumulators reset after settlement regardless of
// payment outcome.
func (a *Authority) AccrueDaily() {
	dayProfit := 0.0
	for _, b := range a.state.Businesses {
		dayProfit += b.ProfitRolling * 0.05
	}
	if dayProfit > 0 {
		a.state.Taxes.AccruedProfit += dayProfit
		a.state.Taxes.AccruedIncome += dayProfit * 0.5
	}
	a.state.Taxes.DaysAccrued++
	if a.state.Taxes.DaysAccrued >= a.cfg.CadenceDays {
		a.settle()
		a.state.Taxes.DaysAccrued = 0
		a.state.Taxes.AccruedProfit = 0
		a.state.Taxes.AccruedIncome = 0
	}
}

// settle charges the accumulated corporate and personal tax. Partial
// payment is not modeled: if cash falls short, cash is zeroed and the
// credit score drops one point per thousand of shortfall.
func (a *Authority) settle() {
	corporate := a.state.Taxes.AccruedProfit * a.cfg.CorporateRate
	personal := a.state.Taxes.AccruedIncome * a.cfg.PersonalRate
	totalDue := corporate + personal

	if a.state.Player.Cash >= totalDue {
		a.state.Player.Cash -= totalDue
	} else {
		shortfall := totalDue - a.state.Player.Cash
		a.state.Player.Cash = 0
		a.state.Player.AdjustCredit(-int(shortfall / 1000))
	}
	if a.ledger != nil && totalDue > 0 {
		a.ledger.RecordTax(totalDue, "Monthly tax settlement")
	}
}

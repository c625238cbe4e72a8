// Package bank issues amortizing loans against the player's credit
// standing and services them daily.
package bank

import (
	"math"

	"github.com/MarcinGorn/businesssuite/internal/finance"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

// Default penalty applied to the credit score each day a loan sits past
// its term with a balance outstanding.
const defaultPenalty = 20

// Bank manages the loan book on the shared world state.
type Bank struct {
	state  *world.State
	ledger *finance.Ledger // optional; nil skips ledger recording
}

// New creates a bank. ledger may be nil.
func New(state *world.State, ledger *finance.Ledger) *Bank {
	return &Bank{state: state, ledger: ledger}
}

// Rebind points the bank at a freshly loaded state.
func (b *Bank) Rebind(state *world.State) {
	b.state = state
}

// RateFromCredit interpolates an annual rate from the credit score
// (300 → 15%, 850 → 3%) anchored around the market base rate, clamped to
// [3%, 15%].
func RateFromCredit(creditScore int, baseRate float64) float64 {
	normalized := creditScore
	if normalized < world.CreditScoreMin {
		normalized = world.CreditScoreMin
	}
	if normalized > world.CreditScoreMax {
		normalized = world.CreditScoreMax
	}
	t := float64(normalized-world.CreditScoreMin) / float64(world.CreditScoreMax-world.CreditScoreMin)
	raw := 0.15*(1-t) + 0.03*t
	rate := baseRate + (raw - 0.05)
	if rate < 0.03 {
		rate = 0.03
	}
	if rate > 0.15 {
		rate = 0.15
	}
	return rate
}

// RequestLoan underwrites and issues a loan. The cap is half of positive
// net worth plus half of cash; amounts above it are rejected. On success
// cash is credited and liabilities grow by the principal.
func (b *Bank) RequestLoan(amount float64, termDays int) bool {
	if amount <= 0 {
		return false
	}
	rate := RateFromCredit(b.state.Player.CreditScore, b.state.Market.BaseInterestRate)
	netWorth := b.state.Player.NetWorth()
	if netWorth < 0 {
		netWorth = 0
	}
	maxAllowed := netWorth*0.5 + b.state.Player.Cash*0.5
	if amount > maxAllowed {
		return false
	}
	b.state.Loans = append(b.state.Loans, &world.Loan{
		Principal:  amount,
		AnnualRate: rate,
		Remaining:  amount,
		TermDays:   termDays,
	})
	b.state.Player.Cash += amount
	b.state.Player.LiabilitiesValue += amount
	return true
}

// AccrueDaily compounds interest on every open loan, auto-pays the greedy
// linear amortization amount when cash allows, closes loans paid below one
// cent, and penalizes credit for loans past term with a balance left.
func (b *Bank) AccrueDaily() {
	var closed []*world.Loan
	for _, loan := range b.state.Loans {
		dailyRate := math.Pow(1+loan.AnnualRate, 1.0/365.0) - 1
		interest := loan.Remaining * dailyRate
		loan.Remaining += interest
		loan.TermDays--
		if b.ledger != nil && interest > 0 {
			b.ledger.RecordInterest(interest, "Loan interest")
		}

		minPayment := loan.Principal / 365
		payment := min(minPayment+interest, loan.Remaining)
		if b.state.Player.Cash >= payment {
			b.state.Player.Cash -= payment
			loan.Remaining -= payment
			if loan.Remaining <= 0.01 {
				closed = append(closed, loan)
			}
		}

		if loan.TermDays <= 0 && loan.Remaining > 0 {
			b.state.Player.AdjustCredit(-defaultPenalty)
		}
	}
	for _, loan := range closed {
		b.remove(loan)
		b.state.Player.LiabilitiesValue -= loan.Principal
	}
}

func (b *Bank) remove(target *world.Loan) {
	for i, loan := range b.state.Loans {
		if loan == target {
			b.state.Loans = append(b.state.Loans[:i], b.state.Loans[i+1:]...)
			return
		}
	}
}

// TotalRemaining sums the outstanding balance across open loans.
func (b *Bank) TotalRemaining() float64 {
	total := 0.0
	for _, loan := range b.state.Loans {
		total += loan.Remaining
	}
	return total
}

// OpenLoans returns a copy of the loan book.
func (b *Bank) OpenLoans() []world.Loan {
	out := make([]world.Loan, 0, len(b.state.Loans))
	for _, loan := range b.state.Loans {
		out = append(out, *loan)
	}
	return out
}

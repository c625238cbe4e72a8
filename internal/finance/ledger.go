// Package finance is the ledger of record: an append-only transaction log
// with derived P&L and balance-sheet views. It never mutates player cash —
// all cash effects happen in the subsystem that calls it.
package finance

import (
	"github.com/google/uuid"

	"github.com/MarcinGorn/businesssuite/internal/world"
)

// Ledger records financial transactions against the shared world state.
type Ledger struct {
	state *world.State
}

// NewLedger creates a ledger bound to state.
func NewLedger(state *world.State) *Ledger {
	return &Ledger{state: state}
}

// Rebind points the ledger at a freshly loaded state.
func (l *Ledger) Rebind(state *world.State) {
	l.state = state
}

// RecordRevenue appends a revenue entry. Non-positive amounts are ignored.
func (l *Ledger) RecordRevenue(amount float64, note string) {
	if amount <= 0 {
		return
	}
	l.state.Finance.Totals.Revenue += amount
	l.log("revenue", amount, note)
}

// RecordCOGS appends a cost-of-goods-sold entry.
func (l *Ledger) RecordCOGS(amount float64, note string) {
	if amount <= 0 {
		return
	}
	l.state.Finance.Totals.COGS += amount
	l.log("cogs", -amount, note)
}

// RecordOpex appends an operating-expense entry.
func (l *Ledger) RecordOpex(amount float64, note string) {
	if amount <= 0 {
		return
	}
	l.state.Finance.Totals.Opex += amount
	l.log("opex", -amount, note)
}

// RecordInterest appends an interest-expense entry.
func (l *Ledger) RecordInterest(amount float64, note string) {
	if amount <= 0 {
		return
	}
	l.state.Finance.Totals.Interest += amount
	l.log("interest", -amount, note)
}

// RecordTax appends a tax entry.
func (l *Ledger) RecordTax(amount float64, note string) {
	if amount <= 0 {
		return
	}
	l.state.Finance.Totals.Taxes += amount
	l.log("tax", -amount, note)
}

// log appends an immutable entry stamped with the current calendar date
// and the resulting cash balance.
func (l *Ledger) log(kind string, amount float64, note string) {
	c := l.state.Clock
	l.state.Finance.Entries = append(l.state.Finance.Entries, world.LedgerEntry{
		ID:     uuid.NewString(),
		Day:    c.Day,
		Month:  c.Month,
		Year:   c.Year,
		Kind:   kind,
		Amount: amount,
		Cash:   l.state.Player.Cash,
		Note:   note,
	})
}

// Totals returns the cumulative totals per kind.
func (l *Ledger) Totals() world.FinanceTotals {
	return l.state.Finance.Totals
}

// Entries returns up to limit of the most recent ledger entries, newest
// last. limit <= 0 returns everything.
func (l *Ledger) Entries(limit int) []world.LedgerEntry {
	entries := l.state.Finance.Entries
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]world.LedgerEntry, len(entries))
	copy(out, entries)
	return out
}

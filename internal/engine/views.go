package engine

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/MarcinGorn/businesssuite/internal/finance"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

// StatusView is the headline snapshot served at /api/v1/status.
type StatusView struct {
	Tick         int                   `json:"tick"`
	Date         world.Clock           `json:"date"`
	CyclePhase   world.CyclePhase      `json:"cycle_phase"`
	Inflation    float64               `json:"inflation_annual"`
	BaseRate     float64               `json:"base_interest_rate"`
	Cash         float64               `json:"cash"`
	NetWorth     float64               `json:"net_worth"`
	CreditScore  int                   `json:"credit_score"`
	Businesses   int                   `json:"businesses"`
	ActiveEvents []world.EconomicEvent `json:"active_events"`
}

// BusinessView is the public projection of one firm.
type BusinessView struct {
	ID             string             `json:"id"`
	Sector         world.Sector       `json:"sector"`
	Location       string             `json:"location"`
	Capacity       float64            `json:"capacity"`
	FinishedGoods  float64            `json:"finished_goods"`
	InputsStock    map[string]float64 `json:"inputs_stock"`
	UnitCost       float64            `json:"unit_cost"`
	UnitPrice      float64            `json:"unit_price"`
	Employees      int                `json:"employees"`
	RevenueRolling float64            `json:"revenue_rolling"`
	ProfitRolling  float64            `json:"profit_rolling"`
	OpenOrders     int                `json:"open_orders"`
}

// CityView is the public projection of one city economy.
type CityView struct {
	Name        string  `json:"name"`
	GDP         float64 `json:"gdp"`
	CostIndex   float64 `json:"cost_index"`
	Opportunity float64 `json:"opportunity"`
}

// TickerView is one stock's latest quote.
type TickerView struct {
	Ticker string  `json:"ticker"`
	Price  float64 `json:"price"`
	Points int     `json:"points"`
}

// Status returns the headline world snapshot.
func (e *Engine) Status() StatusView {
	e.mu.Lock()
	defer e.mu.Unlock()
	events := make([]world.EconomicEvent, len(e.state.ActiveEvents))
	copy(events, e.state.ActiveEvents)
	return StatusView{
		Tick:         e.state.Clock.Tick,
		Date:         e.state.Clock,
		CyclePhase:   e.state.Market.CyclePhase,
		Inflation:    e.state.Market.InflationAnnual,
		BaseRate:     e.state.Market.BaseInterestRate,
		Cash:         e.state.Player.Cash,
		NetWorth:     e.state.Player.NetWorth(),
		CreditScore:  e.state.Player.CreditScore,
		Businesses:   len(e.state.Businesses),
		ActiveEvents: events,
	}
}

// PnL returns the cumulative income statement.
func (e *Engine) PnL() (finance.PnL, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ledger == nil {
		return finance.PnL{}, false
	}
	return e.ledger.GetPnL(), true
}

// BalanceSheet returns the current balance sheet.
func (e *Engine) BalanceSheet() (finance.BalanceSheet, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ledger == nil {
		return finance.BalanceSheet{}, false
	}
	loans := 0.0
	if e.bank != nil {
		loans = e.bank.TotalRemaining()
	}
	var unitCosts map[string]float64
	if e.supplyChain != nil {
		unitCosts = e.supplyChain.InputUnitCosts()
	}
	return e.ledger.GetBalanceSheet(loans, unitCosts), true
}

// Objectives returns the milestone list.
func (e *Engine) Objectives() []world.Objective {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.goals == nil {
		return nil
	}
	return e.goals.Status()
}

// Tickers returns the latest quote per ticker in stable order.
func (e *Engine) Tickers() []TickerView {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]TickerView, 0, len(e.state.Market.StockPrices))
	tickers := maps.Keys(e.state.Market.StockPrices)
	slices.Sort(tickers)
	for _, ticker := range tickers {
		history := e.state.Market.StockPrices[ticker]
		if len(history) == 0 {
			continue
		}
		out = append(out, TickerView{
			Ticker: ticker,
			Price:  history[len(history)-1],
			Points: len(history),
		})
	}
	return out
}

// PriceHistory returns a ticker's full series.
func (e *Engine) PriceHistory(ticker string) ([]float64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	history, ok := e.state.Market.StockPrices[ticker]
	if !ok {
		return nil, false
	}
	return slices.Clone(history), true
}

// Businesses returns projections of every firm.
func (e *Engine) Businesses() []BusinessView {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]BusinessView, 0, len(e.state.Businesses))
	for _, b := range e.state.Businesses {
		out = append(out, BusinessView{
			ID:             b.ID,
			Sector:         b.Sector,
			Location:       b.Location,
			Capacity:       b.Capacity,
			FinishedGoods:  b.FinishedGoods,
			InputsStock:    maps.Clone(b.InputsStock),
			UnitCost:       b.UnitCost,
			UnitPrice:      b.UnitPrice,
			Employees:      b.Employees,
			RevenueRolling: b.RevenueRolling,
			ProfitRolling:  b.ProfitRolling,
			OpenOrders:     len(b.ActiveOrders),
		})
	}
	return out
}

// Cities returns the city economies in stable name order.
func (e *Engine) Cities() []CityView {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]CityView, 0, len(e.state.Cities))
	names := maps.Keys(e.state.Cities)
	slices.Sort(names)
	for _, name := range names {
		c := e.state.Cities[name]
		out = append(out, CityView{
			Name:        name,
			GDP:         c.GDP,
			CostIndex:   c.CostIndex,
			Opportunity: c.Opportunity,
		})
	}
	return out
}

// LedgerTail returns the most recent ledger entries, newest last.
func (e *Engine) LedgerTail(limit int) []world.LedgerEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ledger == nil {
		return nil
	}
	return e.ledger.Entries(limit)
}

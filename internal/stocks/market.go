// Package stocks drives the per-ticker stochastic price series from
// sector signals and the macro trend.
package stocks

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/MarcinGorn/businesssuite/internal/config"
	"github.com/MarcinGorn/businesssuite/internal/entropy"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

// Config tunes return dynamics.
type Config struct {
	Volatility    float64
	TrendStrength float64
}

// DefaultConfig returns the built-in market dynamics.
func DefaultConfig() Config {
	return Config{Volatility: 0.02, TrendStrength: 0.001}
}

// tickerSectors binds each seeded ticker to its sector.
var tickerSectors = map[string]world.Sector{
	"RETL": world.SectorRetail,
	"MANU": world.SectorManufacturing,
	"REAL": world.SectorRealEstate,
	"TECH": world.SectorTech,
}

// Market evolves stock price histories on the shared world state.
type Market struct {
	state *world.State
	cfg   Config
	rng   *entropy.Source
}

// New creates a stock market, seeding the default tickers when the state
// has no price history yet.
func New(state *world.State, rng *entropy.Source) *Market {
	m := &Market{state: state, cfg: DefaultConfig(), rng: rng}
	m.seed()
	return m
}

// Rebind points the market at a freshly loaded state.
func (m *Market) Rebind(state *world.State) {
	m.state = state
	m.seed()
}

func (m *Market) seed() {
	if len(m.state.Market.StockPrices) > 0 {
		return
	}
	m.state.Market.StockPrices = map[string][]float64{
		"RETL": {50.0},
		"MANU": {40.0},
		"REAL": {60.0},
		"TECH": {80.0},
	}
}

// ApplyBalance overlays well-formed market overrides.
func (m *Market) ApplyBalance(b config.Balance) {
	if v := b.Stocks.Volatility; v > 0 {
		m.cfg.Volatility = v
	}
	if t := b.Stocks.TrendStrength; t > 0 {
		m.cfg.TrendStrength = t
	}
}

// macroTrend is a small constant return keyed to the cycle phase.
func macroTrend(phase world.CyclePhase) float64 {
	switch phase {
	case world.PhasePeak:
		return -0.001
	case world.PhaseExpansion:
		return 0.001
	case world.PhaseRecovery:
		return 0.0005
	case world.PhaseRecession:
		return -0.0015
	}
	return 0
}

// TickDaily appends one new price per ticker. The daily return combines
// the sector signal, the macro trend, gaussian noise, and an inflation
// drag; prices are floored at 1.0 and history is append-only.
func (m *Market) TickDaily() {
	trend := macroTrend(m.state.Market.CyclePhase)
	inflation := m.state.Market.InflationAnnual

	// Stable ticker order keeps seeded runs reproducible.
	tickers := maps.Keys(m.state.Market.StockPrices)
	slices.Sort(tickers)
	for _, ticker := range tickers {
		history := m.state.Market.StockPrices[ticker]
		last := history[len(history)-1]

		sectorSignal := 0.0
		if sector, ok := tickerSectors[ticker]; ok {
			demand := m.state.Market.SectorDemand[sector]
			competition := m.state.Market.SectorCompetition[sector]
			sectorSignal = (demand - 1.0) - (competition - 1.0)
		}

		drift := m.cfg.TrendStrength * (sectorSignal + trend)
		shock := m.rng.Gauss(0, m.cfg.Volatility)
		dailyReturn := drift + shock - inflation/365*0.3

		next := last * (1.0 + dailyReturn)
		if next < 1.0 {
			next = 1.0
		}
		m.state.Market.StockPrices[ticker] = append(history, next)
	}
}

// LatestPrice returns the most recent price for a ticker.
func (m *Market) LatestPrice(ticker string) (float64, bool) {
	history, ok := m.state.Market.StockPrices[ticker]
	if !ok || len(history) == 0 {
		return 0, false
	}
	return history[len(history)-1], true
}

// History returns a copy of a ticker's full price series.
func (m *Market) History(ticker string) ([]float64, bool) {
	history, ok := m.state.Market.StockPrices[ticker]
	if !ok {
		return nil, false
	}
	return slices.Clone(history), true
}

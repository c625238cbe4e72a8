// Package engine orchestrates the daily simulation step. Subsystems run in
// a fixed order and the clock advances only once the whole day has been
// applied, so a snapshot taken between days is always consistent.
package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/MarcinGorn/businesssuite/internal/bank"
	"github.com/MarcinGorn/businesssuite/internal/entropy"
	"github.com/MarcinGorn/businesssuite/internal/finance"
	"github.com/MarcinGorn/businesssuite/internal/goals"
	"github.com/MarcinGorn/businesssuite/internal/rivals"
	"github.com/MarcinGorn/businesssuite/internal/stocks"
	"github.com/MarcinGorn/businesssuite/internal/supply"
	"github.com/MarcinGorn/businesssuite/internal/tax"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

// Config holds the macro-model tuning constants.
type Config struct {
	DemandSensitivity   float64 // pull toward the cycle-phase multiplier
	CompetitionPressure float64 // push down from excess competition
	InflationDrift      float64 // per-day inflation random-walk half-width and drift
	InterestReversion   float64 // mean-reversion strength toward 5%
	CycleSpeed          float64 // radians per day on the cycle clock
	Seed                int64   // seed for the city noise field
}

// DefaultConfig returns the built-in macro constants.
func DefaultConfig() Config {
	return Config{
		DemandSensitivity:   0.6,
		CompetitionPressure: 0.4,
		InflationDrift:      0.0005,
		InterestReversion:   0.01,
		CycleSpeed:          0.03,
		Seed:                1,
	}
}

// Deps are the collaborating subsystems. Ledger and Goals are optional
// capabilities; a nil entry is skipped, never patched in later.
type Deps struct {
	Supply *supply.Chain
	Ledger *finance.Ledger
	Bank   *bank.Bank
	Taxes  *tax.Authority
	Stocks *stocks.Market
	Rivals *rivals.Manager
	Goals  *goals.Tracker
}

// Store persists and restores world snapshots.
type Store interface {
	Save(state *world.State, slot int, autosave bool) error
	Load(slot int) (*world.State, error)
}

// Engine owns the daily step over the shared world state.
type Engine struct {
	mu    sync.Mutex
	state *world.State
	cfg   Config
	rng   *entropy.Source

	supplyChain *supply.Chain
	ledger      *finance.Ledger
	bank        *bank.Bank
	taxes       *tax.Authority
	stocks      *stocks.Market
	rivals      *rivals.Manager
	goals       *goals.Tracker
	events      *eventSystem

	cityNoise opensimplex.Noise
	cityBase  map[string]world.CityEconomy
	nextBizID int
}

// New wires an engine over state. Any nil dependency disables that
// subsystem's slot in the daily pipeline.
func New(state *world.State, cfg Config, rng *entropy.Source, deps Deps) *Engine {
	e := &Engine{
		state:       state,
		cfg:         cfg,
		rng:         rng,
		supplyChain: deps.Supply,
		ledger:      deps.Ledger,
		bank:        deps.Bank,
		taxes:       deps.Taxes,
		stocks:      deps.Stocks,
		rivals:      deps.Rivals,
		goals:       deps.Goals,
		events:      &eventSystem{state: state, rng: rng},
		cityNoise:   opensimplex.New(cfg.Seed),
		cityBase:    seedCityBase(),
	}
	e.nextBizID = len(state.Businesses) + 1
	return e
}

// Rebind points the engine and every subsystem at a freshly loaded state.
func (e *Engine) Rebind(state *world.State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rebind(state)
}

func (e *Engine) rebind(state *world.State) {
	e.state = state
	e.events.state = state
	e.cityBase = seedCityBase()
	e.nextBizID = len(state.Businesses) + 1
	if e.supplyChain != nil {
		e.supplyChain.Rebind(state)
	}
	if e.ledger != nil {
		e.ledger.Rebind(state)
	}
	if e.bank != nil {
		e.bank.Rebind(state)
	}
	if e.taxes != nil {
		e.taxes.Rebind(state)
	}
	if e.stocks != nil {
		e.stocks.Rebind(state)
	}
	if e.rivals != nil {
		e.rivals.Rebind(state)
	}
	if e.goals != nil {
		e.goals.Rebind(state)
	}
}

// SimulateDay runs the single ordered daily transaction. The clock
// advances last, after every subsystem update has been applied.
func (e *Engine) SimulateDay() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.updateMacro()
	e.updateSectors()
	e.updateCities()
	sold, demanded := e.simulateBusinesses()
	if e.bank != nil {
		e.bank.AccrueDaily()
	}
	if e.taxes != nil {
		e.taxes.AccrueDaily()
	}
	if e.stocks != nil {
		e.stocks.TickDaily()
	}
	if e.rivals != nil {
		e.rivals.TickDaily()
	}
	e.events.tickDaily()
	if e.goals != nil {
		e.goals.TickDaily()
	}
	e.state.Clock.Advance(1)

	c := e.state.Clock
	slog.Info("daily report",
		"date", fmt.Sprintf("%04d-%02d-%02d", c.Year, c.Month, c.Day),
		"tick", c.Tick,
		"phase", e.state.Market.CyclePhase,
		"inflation", fmt.Sprintf("%.4f", e.state.Market.InflationAnnual),
		"base_rate", fmt.Sprintf("%.4f", e.state.Market.BaseInterestRate),
		"cash", humanize.CommafWithDigits(e.state.Player.Cash, 2),
		"net_worth", humanize.CommafWithDigits(e.state.Player.NetWorth(), 2),
		"units_sold", fmt.Sprintf("%.1f", sold),
		"units_demanded", fmt.Sprintf("%.1f", demanded),
		"active_events", len(e.state.ActiveEvents),
	)
}

// simulateBusinesses runs the per-firm supply-chain step, then pricing and
// sales. Realized and demanded unit totals feed the daily report; lost
// sales are not otherwise tracked.
func (e *Engine) simulateBusinesses() (sold, demanded float64) {
	for _, biz := range e.state.Businesses {
		if e.supplyChain != nil {
			e.supplyChain.AdvanceOrders(biz)
			e.supplyChain.MaybeReorder(biz)
			carryingCost := e.supplyChain.Produce(biz)
			if e.ledger != nil && carryingCost > 0 {
				e.ledger.RecordOpex(carryingCost, "Carrying cost "+biz.ID)
			}
		}

		demandIdx := e.state.Market.SectorDemand[biz.Sector]
		competitionIdx := e.state.Market.SectorCompetition[biz.Sector]
		e.applyPricing(biz, demandIdx, competitionIdx)

		baseSales := biz.Capacity * demandIdx
		realized := min(baseSales, biz.FinishedGoods)
		revenue := realized * biz.UnitPrice
		cost := realized * biz.UnitCost
		profit := revenue - cost

		biz.RevenueRolling = 0.9*biz.RevenueRolling + 0.1*revenue
		biz.ProfitRolling = 0.9*biz.ProfitRolling + 0.1*profit

		e.state.Player.Cash += profit
		if profit > 0 {
			e.state.Player.AssetsValue += profit * 0.2
		}
		biz.FinishedGoods -= realized
		if biz.FinishedGoods < 0 {
			biz.FinishedGoods = 0
		}

		if e.ledger != nil {
			e.ledger.RecordRevenue(revenue, "Sales "+biz.ID)
			e.ledger.RecordCOGS(cost, "COGS "+biz.ID)
		}
		if e.goals != nil && revenue > 0 {
			e.goals.RecordRevenue(revenue)
		}

		sold += realized
		demanded += baseSales
	}
	return sold, demanded
}

// applyPricing compounds daily inflation into the unit price, then blends
// it 50/50 toward a cost-plus target so prices adjust without whiplash.
func (e *Engine) applyPricing(biz *world.Business, demandIdx, competitionIdx float64) {
	pricingPower := demandIdx / max(0.5, competitionIdx)

	inflationDaily := dailyCompound(e.state.Market.InflationAnnual)
	biz.UnitPrice *= 1 + inflationDaily

	targetMargin := clampf(0.1*pricingPower, 0.05, 0.6)
	targetPrice := biz.UnitCost * (1 + targetMargin)
	biz.UnitPrice = 0.5*biz.UnitPrice + 0.5*targetPrice
}

// SaveTo snapshots the world to a slot.
func (e *Engine) SaveTo(store Store, slot int, autosave bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return store.Save(e.state, slot, autosave)
}

// LoadFrom restores a slot. Returns false when no state is available; the
// in-memory world stays untouched in that case.
func (e *Engine) LoadFrom(store Store, slot int) (bool, error) {
	state, err := store.Load(slot)
	if err != nil {
		return false, err
	}
	if state == nil {
		return false, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rebind(state)
	return true, nil
}

// seedCityBase anchors drift baselines to the configured seed economies.
// Drifted values from a loaded snapshot never become the anchor, so the
// clamp band stays fixed across any number of save/load cycles.
func seedCityBase() map[string]world.CityEconomy {
	base := make(map[string]world.CityEconomy)
	for name, c := range world.DefaultCities() {
		base[name] = *c
	}
	return base
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

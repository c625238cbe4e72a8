// Package world holds the shared mutable game state. Every subsystem
// operates on the same *State — ownership of cash, inventory, and ledger
// fields is global and serialized by the daily step order.
package world

// Sector identifies the market segment a business competes in.
type Sector string

// Sector constants.
const (
	SectorRetail        Sector = "retail"
	SectorManufacturing Sector = "manufacturing"
	SectorRealEstate    Sector = "real_estate"
	SectorTech          Sector = "tech"
)

// Sectors returns all sectors in stable order.
func Sectors() []Sector {
	return []Sector{SectorRetail, SectorManufacturing, SectorRealEstate, SectorTech}
}

// ValidSector reports whether s is one of the known sectors.
func ValidSector(s Sector) bool {
	switch s {
	case SectorRetail, SectorManufacturing, SectorRealEstate, SectorTech:
		return true
	}
	return false
}

// CyclePhase is the macro business-cycle state derived from the sinusoidal clock.
type CyclePhase string

// Cycle phases.
const (
	PhaseExpansion CyclePhase = "expansion"
	PhasePeak      CyclePhase = "peak"
	PhaseRecession CyclePhase = "recession"
	PhaseRecovery  CyclePhase = "recovery"
)

// Credit score bounds.
const (
	CreditScoreMin = 300
	CreditScoreMax = 850
)

// Player is the single human participant: cash, portfolio, credit standing.
type Player struct {
	Name             string             `json:"name"`
	Cash             float64            `json:"cash"`
	AssetsValue      float64            `json:"assets_value"`
	LiabilitiesValue float64            `json:"liabilities_value"`
	CreditScore      int                `json:"credit_score"`
	Portfolio        map[string]int     `json:"portfolio"`       // ticker → shares
	PortfolioBasis   map[string]float64 `json:"portfolio_basis"` // ticker → total cost basis
}

// NetWorth is cash plus assets minus liabilities.
func (p *Player) NetWorth() float64 {
	return p.Cash + p.AssetsValue - p.LiabilitiesValue
}

// AdjustCredit shifts the credit score by delta, clamped to [300, 850].
func (p *Player) AdjustCredit(delta int) {
	p.CreditScore += delta
	if p.CreditScore < CreditScoreMin {
		p.CreditScore = CreditScoreMin
	}
	if p.CreditScore > CreditScoreMax {
		p.CreditScore = CreditScoreMax
	}
}

// Order is an in-flight procurement order. Cost is locked in at placement;
// payment happens on order, delivery after the lead time elapses.
type Order struct {
	Input    string  `json:"input"`
	Quantity float64 `json:"qty"`
	ETADays  int     `json:"eta_days"`
	UnitCost float64 `json:"unit_cost"`
}

// Business is one firm owned by the player.
type Business struct {
	ID                    string             `json:"id"`
	Sector                Sector             `json:"sector"`
	Location              string             `json:"location"`
	Capacity              float64            `json:"capacity"`
	InputsStock           map[string]float64 `json:"inputs_stock"`
	FinishedGoods         float64            `json:"finished_goods"`
	UnitCost              float64            `json:"unit_cost"`
	UnitPrice             float64            `json:"unit_price"`
	Employees             int                `json:"employees"`
	RevenueRolling        float64            `json:"revenue_rolling"`
	ProfitRolling         float64            `json:"profit_rolling"`
	CarryingCostRateDaily float64            `json:"carrying_cost_rate_daily"`
	ReorderPoint          float64            `json:"reorder_point"`
	OrderQuantity         float64            `json:"order_quantity"`
	ActiveOrders          []Order            `json:"active_orders"`
}

// NewBusiness creates a business with default inventory policy.
func NewBusiness(id string, sector Sector, location string) *Business {
	return &Business{
		ID:                    id,
		Sector:                sector,
		Location:              location,
		InputsStock:           make(map[string]float64),
		CarryingCostRateDaily: 0.0003,
		ReorderPoint:          50.0,
		OrderQuantity:         150.0,
	}
}

// MarketState carries macro indicators and per-sector indices.
// CycleAngle persists so a reloaded world resumes the same cycle position.
type MarketState struct {
	InflationAnnual   float64              `json:"inflation_annual"`
	BaseInterestRate  float64              `json:"base_interest_rate"`
	CyclePhase        CyclePhase           `json:"cycle_phase"`
	CycleAngle        float64              `json:"cycle_angle"`
	SectorDemand      map[Sector]float64   `json:"sector_demand"`
	SectorCompetition map[Sector]float64   `json:"sector_competition"`
	StockPrices       map[string][]float64 `json:"stock_prices"`
}

// Loan is a single amortizing bank loan.
type Loan struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	Remaining  float64 `json:"remaining"`
	TermDays   int     `json:"term_days"`
}

// CityEconomy summarizes one city's local conditions.
type CityEconomy struct {
	GDP         float64 `json:"gdp"`
	CostIndex   float64 `json:"cost_index"`
	Opportunity float64 `json:"opportunity"`
}

// LedgerEntry is one immutable financial transaction record.
// Amount is signed: revenue positive, costs negative.
type LedgerEntry struct {
	ID     string  `json:"id"`
	Day    int     `json:"day"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount"`
	Cash   float64 `json:"cash"`
	Note   string  `json:"note"`
}

// FinanceTotals are cumulative sums per ledger kind.
type FinanceTotals struct {
	Revenue  float64 `json:"revenue"`
	COGS     float64 `json:"cogs"`
	Opex     float64 `json:"opex"`
	Interest float64 `json:"interest"`
	Taxes    float64 `json:"taxes"`
}

// FinanceState is the ledger of record.
type FinanceState struct {
	Totals  FinanceTotals `json:"totals"`
	Entries []LedgerEntry `json:"entries"`
}

// TaxState accumulates taxable amounts between settlements.
type TaxState struct {
	AccruedProfit float64 `json:"accrued_profit"`
	AccruedIncome float64 `json:"accrued_income"`
	DaysAccrued   int     `json:"days_accrued"`
}

// Objective is a milestone goal. Completion is monotonic.
type Objective struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Target      float64 `json:"target"`
	Kind        string  `json:"kind"` // net_worth, credit, revenue
	Completed   bool    `json:"completed"`
}

// GoalsState tracks objectives and the revenue counter behind them.
type GoalsState struct {
	Objectives        []Objective `json:"objectives"`
	CumulativeRevenue float64     `json:"cumulative_revenue"`
}

// EconomicEvent is an active macro event applying daily effects until it expires.
type EconomicEvent struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Severity     float64 `json:"severity"` // 0-1
	DurationDays int     `json:"duration_days"`
	Kind         string  `json:"kind"` // crash, boom, regulation, rate_shock
}

// State is the complete world snapshot. It contains only plain nested
// records so it serializes cleanly and reconstructs value-equal.
type State struct {
	Player       Player                  `json:"player"`
	Businesses   []*Business             `json:"businesses"`
	Market       MarketState             `json:"market"`
	Clock        Clock                   `json:"clock"`
	Cities       map[string]*CityEconomy `json:"cities"`
	Loans        []*Loan                 `json:"loans"`
	Finance      FinanceState            `json:"finance"`
	Taxes        TaxState                `json:"taxes"`
	Goals        GoalsState              `json:"goals"`
	ActiveEvents []EconomicEvent         `json:"active_events"`
}

// DefaultCities returns the seed city economies.
func DefaultCities() map[string]*CityEconomy {
	return map[string]*CityEconomy{
		"City A": {GDP: 100.0, CostIndex: 1.0, Opportunity: 1.0},
		"City B": {GDP: 150.0, CostIndex: 1.2, Opportunity: 1.1},
		"City C": {GDP: 70.0, CostIndex: 0.8, Opportunity: 0.9},
	}
}

// NewState builds the starting world: fresh founder, one retail business,
// neutral sector indices.
func NewState() *State {
	demand := make(map[Sector]float64, 4)
	competition := make(map[Sector]float64, 4)
	for _, s := range Sectors() {
		demand[s] = 1.0
		competition[s] = 1.0
	}

	starter := NewBusiness("BIZ-1", SectorRetail, "City A")
	starter.Capacity = 100.0
	starter.FinishedGoods = 30.0
	starter.UnitCost = 8.0
	starter.UnitPrice = 12.0
	starter.Employees = 5

	return &State{
		Player: Player{
			Name:           "Founder",
			Cash:           100000.0,
			CreditScore:    650,
			Portfolio:      make(map[string]int),
			PortfolioBasis: make(map[string]float64),
		},
		Businesses: []*Business{starter},
		Market: MarketState{
			InflationAnnual:   0.03,
			BaseInterestRate:  0.05,
			CyclePhase:        PhaseExpansion,
			SectorDemand:      demand,
			SectorCompetition: competition,
			StockPrices:       make(map[string][]float64),
		},
		Clock:  Clock{Day: 1, Month: 1, Year: 2025},
		Cities: DefaultCities(),
	}
}

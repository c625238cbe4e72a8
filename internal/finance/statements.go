package finance

import "github.com/MarcinGorn/businesssuite/internal/world"

// PnL is the profit-and-loss statement derived from cumulative totals.
type PnL struct {
	Revenue         float64 `json:"revenue"`
	COGS            float64 `json:"cogs"`
	GrossProfit     float64 `json:"gross_profit"`
	Opex            float64 `json:"opex"`
	OperatingIncome float64 `json:"operating_income"`
	Interest        float64 `json:"interest"`
	PreTaxIncome    float64 `json:"pre_tax_income"`
	Taxes           float64 `json:"taxes"`
	NetIncome       float64 `json:"net_income"`
}

// BalanceSheet is the point-in-time asset/liability view.
type BalanceSheet struct {
	AssetsCash       float64 `json:"assets_cash"`
	AssetsInventory  float64 `json:"assets_inventory"`
	OtherAssets      float64 `json:"other_assets"`
	TotalAssets      float64 `json:"total_assets"`
	LiabilitiesLoans float64 `json:"liabilities_loans"`
	OtherLiabilities float64 `json:"other_liabilities"`
	TotalLiabilities float64 `json:"total_liabilities"`
	Equity           float64 `json:"equity"`
}

// GetPnL derives the income statement. Pure function of the totals.
func (l *Ledger) GetPnL() PnL {
	t := l.state.Finance.Totals
	gross := t.Revenue - t.COGS
	operating := gross - t.Opex
	preTax := operating - t.Interest
	return PnL{
		Revenue:         t.Revenue,
		COGS:            t.COGS,
		GrossProfit:     gross,
		Opex:            t.Opex,
		OperatingIncome: operating,
		Interest:        t.Interest,
		PreTaxIncome:    preTax,
		Taxes:           t.Taxes,
		NetIncome:       preTax - t.Taxes,
	}
}

// inventoryValuation prices a firm's stock: inputs at their unit costs
// (1.0 when unknown), finished goods at the firm's unit cost.
func inventoryValuation(b *world.Business, inputUnitCosts map[string]float64) float64 {
	inputs := 0.0
	for name, qty := range b.InputsStock {
		cost, ok := inputUnitCosts[name]
		if !ok {
			cost = 1.0
		}
		inputs += qty * cost
	}
	unitCost := b.UnitCost
	if unitCost < 0 {
		unitCost = 0
	}
	return inputs + b.FinishedGoods*unitCost
}

// GetBalanceSheet combines cash, inventory, and other assets against loans
// and other liabilities to derive equity.
func (l *Ledger) GetBalanceSheet(loansRemaining float64, inputUnitCosts map[string]float64) BalanceSheet {
	inventory := 0.0
	for _, b := range l.state.Businesses {
		inventory += inventoryValuation(b, inputUnitCosts)
	}

	totalAssets := l.state.Player.Cash + inventory + l.state.Player.AssetsValue
	totalLiabilities := loansRemaining + l.state.Player.LiabilitiesValue

	return BalanceSheet{
		AssetsCash:       l.state.Player.Cash,
		AssetsInventory:  inventory,
		OtherAssets:      l.state.Player.AssetsValue,
		TotalAssets:      totalAssets,
		LiabilitiesLoans: loansRemaining,
		OtherLiabilities: l.state.Player.LiabilitiesValue,
		TotalLiabilities: totalLiabilities,
		Equity:           totalAssets - totalLiabilities,
	}
}

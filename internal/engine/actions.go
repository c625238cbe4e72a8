package engine

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/MarcinGorn/businesssuite/internal/world"
)

// Player action costs.
const (
	businessFoundingCost = 20000.0
	businessUpgradeCost  = 5000.0
	travelCost           = 500.0
)

// BuyStock purchases qty shares at the latest price. The cost is carried
// in assets as the position's basis, so net worth is unchanged at the
// moment of purchase. Unknown ticker, non-positive qty, or insufficient
// cash returns false.
func (e *Engine) BuyStock(ticker string, qty int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if qty <= 0 || e.stocks == nil {
		return false
	}
	price, ok := e.stocks.LatestPrice(ticker)
	if !ok {
		return false
	}
	cost := price * float64(qty)
	if e.state.Player.Cash < cost {
		return false
	}
	if e.state.Player.Portfolio == nil {
		e.state.Player.Portfolio = make(map[string]int)
	}
	if e.state.Player.PortfolioBasis == nil {
		e.state.Player.PortfolioBasis = make(map[string]float64)
	}
	e.state.Player.Cash -= cost
	e.state.Player.AssetsValue += cost
	e.state.Player.Portfolio[ticker] += qty
	e.state.Player.PortfolioBasis[ticker] += cost
	slog.Info("stock purchase", "ticker", ticker, "shares", qty,
		"price", humanize.CommafWithDigits(price, 2))
	return true
}

// SellStock sells qty shares at the latest price. Only the sold shares'
// proportional cost basis leaves assets; the difference between proceeds
// and basis lands in net worth as the realized gain or loss. Selling more
// than held, an unknown ticker, or non-positive qty returns false.
func (e *Engine) SellStock(ticker string, qty int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if qty <= 0 || e.stocks == nil {
		return false
	}
	held := e.state.Player.Portfolio[ticker]
	if held < qty {
		return false
	}
	price, ok := e.stocks.LatestPrice(ticker)
	if !ok {
		return false
	}
	proceeds := price * float64(qty)
	basisShare := e.state.Player.PortfolioBasis[ticker] * float64(qty) / float64(held)
	e.state.Player.Cash += proceeds
	e.state.Player.AssetsValue -= basisShare
	if e.state.Player.AssetsValue < 0 {
		e.state.Player.AssetsValue = 0
	}
	e.state.Player.PortfolioBasis[ticker] -= basisShare
	e.state.Player.Portfolio[ticker] = held - qty
	if e.state.Player.Portfolio[ticker] == 0 {
		delete(e.state.Player.Portfolio, ticker)
		delete(e.state.Player.PortfolioBasis, ticker)
	}
	slog.Info("stock sale", "ticker", ticker, "shares", qty,
		"price", humanize.CommafWithDigits(price, 2))
	return true
}

// CreateBusiness founds a new firm in a known city. Returns the new
// business ID; an invalid sector, unknown city, or insufficient cash
// returns ("", false).
func (e *Engine) CreateBusiness(sector world.Sector, city string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !world.ValidSector(sector) {
		return "", false
	}
	if _, ok := e.state.Cities[city]; !ok {
		return "", false
	}
	if e.state.Player.Cash < businessFoundingCost {
		return "", false
	}
	e.state.Player.Cash -= businessFoundingCost
	id := fmt.Sprintf("BIZ-%d", e.nextBizID)
	e.nextBizID++

	biz := world.NewBusiness(id, sector, city)
	biz.Capacity = 60
	biz.UnitCost = 7
	biz.UnitPrice = 10
	biz.Employees = 3
	biz.FinishedGoods = 20
	e.state.Businesses = append(e.state.Businesses, biz)

	if e.ledger != nil {
		e.ledger.RecordOpex(businessFoundingCost, "Founded "+id)
	}
	slog.Info("business founded", "id", id, "sector", sector, "city", city)
	return id, true
}

// UpgradeBusiness expands a firm's capacity by 15% and trims its unit cost
// by 2%. Unknown ID or insufficient cash returns false.
func (e *Engine) UpgradeBusiness(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	biz := e.findBusiness(id)
	if biz == nil || e.state.Player.Cash < businessUpgradeCost {
		return false
	}
	e.state.Player.Cash -= businessUpgradeCost
	biz.Capacity *= 1.15
	biz.UnitCost *= 0.98
	if e.ledger != nil {
		e.ledger.RecordOpex(businessUpgradeCost, "Upgraded "+id)
	}
	slog.Info("business upgraded", "id", id,
		"capacity", fmt.Sprintf("%.1f", biz.Capacity))
	return true
}

// Travel moves the player between cities, charging the fare and burning a
// day in transit. Same-city trips, unknown cities, and insufficient cash
// return false.
func (e *Engine) Travel(from, to string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if from == to {
		return false
	}
	if _, ok := e.state.Cities[from]; !ok {
		return false
	}
	if _, ok := e.state.Cities[to]; !ok {
		return false
	}
	if e.state.Player.Cash < travelCost {
		return false
	}
	e.state.Player.Cash -= travelCost
	if e.ledger != nil {
		e.ledger.RecordOpex(travelCost, fmt.Sprintf("Travel %s to %s", from, to))
	}
	e.state.Clock.Advance(1)
	slog.Info("travel", "from", from, "to", to)
	return true
}

// RelocateBusiness moves a firm to a known city.
func (e *Engine) RelocateBusiness(id, city string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	biz := e.findBusiness(id)
	if biz == nil {
		return false
	}
	if _, ok := e.state.Cities[city]; !ok {
		return false
	}
	biz.Location = city
	return true
}

// RequestLoan asks the bank for credit.
func (e *Engine) RequestLoan(amount float64, termDays int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.bank == nil {
		return false
	}
	return e.bank.RequestLoan(amount, termDays)
}

// PlaceOrder places a manual procurement order for a firm.
func (e *Engine) PlaceOrder(bizID, input string, qty float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	biz := e.findBusiness(bizID)
	if biz == nil || e.supplyChain == nil {
		return false
	}
	return e.supplyChain.PlaceOrder(biz, input, qty)
}

func (e *Engine) findBusiness(id string) *world.Business {
	for _, b := range e.state.Businesses {
		if b.ID == id {
			return b
		}
	}
	return nil
}

package supply

import (
	"testing"

	"github.com/MarcinGorn/businesssuite/internal/entropy"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

func newTestChain(t *testing.T) (*Chain, *world.State) {
	t.Helper()
	state := world.NewState()
	return NewChain(state, entropy.NewSource(7)), state
}

func TestAdvanceOrdersDeliversMatured(t *testing.T) {
	chain, state := newTestChain(t)
	biz := state.Businesses[0]
	biz.ActiveOrders = []world.Order{
		{Input: "parts", Quantity: 100, ETADays: 1, UnitCost: 4},
		{Input: "materials", Quantity: 50, ETADays: 3, UnitCost: 2.5},
	}

	chain.AdvanceOrders(biz)

	if biz.InputsStock["parts"] != 100 {
		t.Errorf("parts stock = %v, want 100", biz.InputsStock["parts"])
	}
	if len(biz.ActiveOrders) != 1 {
		t.Fatalf("active orders = %d, want 1", len(biz.ActiveOrders))
	}
	if biz.ActiveOrders[0].ETADays != 2 {
		t.Errorf("remaining ETA = %d, want 2", biz.ActiveOrders[0].ETADays)
	}
}

func TestMaybeReorderSkipsWhenStocked(t *testing.T) {
	chain, state := newTestChain(t)
	biz := world.NewBusiness("BIZ-2", world.SectorManufacturing, "City A")
	state.Businesses = append(state.Businesses, biz)
	biz.InputsStock["parts"] = 200
	biz.InputsStock["materials"] = 200

	chain.MaybeReorder(biz)

	if len(biz.ActiveOrders) != 0 {
		t.Fatalf("orders placed above reorder point: %+v", biz.ActiveOrders)
	}
}

func TestMaybeReorderPaysOnOrder(t *testing.T) {
	chain, state := newTestChain(t)
	biz := world.NewBusiness("BIZ-2", world.SectorManufacturing, "City A")
	state.Businesses = append(state.Businesses, biz)
	startCash := state.Player.Cash

	chain.MaybeReorder(biz)

	// parts 150×4.0 and materials 150×2.5 both below the reorder point.
	wantSpend := 150*4.0 + 150*2.5
	if got := startCash - state.Player.Cash; got != wantSpend {
		t.Errorf("spend = %v, want %v", got, wantSpend)
	}
	if len(biz.ActiveOrders) != 2 {
		t.Fatalf("orders = %d, want 2", len(biz.ActiveOrders))
	}
	for _, o := range biz.ActiveOrders {
		if o.ETADays < 3 || o.ETADays > 8 {
			t.Errorf("ETA %d outside lead-time bounds", o.ETADays)
		}
	}
}

func TestReorderSkippedWhenUnaffordable(t *testing.T) {
	chain, state := newTestChain(t)
	biz := world.NewBusiness("BIZ-2", world.SectorManufacturing, "City A")
	state.Businesses = append(state.Businesses, biz)
	state.Player.Cash = 10

	chain.MaybeReorder(biz)

	if len(biz.ActiveOrders) != 0 {
		t.Fatal("unaffordable order must be skipped")
	}
	if state.Player.Cash != 10 {
		t.Errorf("cash changed to %v on skipped order", state.Player.Cash)
	}
}

func TestPlaceOrderRejectsNonPositiveQty(t *testing.T) {
	chain, state := newTestChain(t)
	biz := state.Businesses[0]
	if chain.PlaceOrder(biz, "parts", 0) || chain.PlaceOrder(biz, "parts", -5) {
		t.Fatal("non-positive quantity accepted")
	}
}

func TestRetailProducesWithoutInputs(t *testing.T) {
	chain, state := newTestChain(t)
	biz := state.Businesses[0] // retail, capacity 100
	biz.FinishedGoods = 0

	for day := 0; day < 10; day++ {
		chain.Produce(biz)
	}

	if biz.FinishedGoods != 1000 {
		t.Fatalf("finished goods = %v, want 1000 after 10 days", biz.FinishedGoods)
	}
}

func TestProductionLimitedByScarcestInput(t *testing.T) {
	chain, state := newTestChain(t)
	biz := world.NewBusiness("BIZ-2", world.SectorManufacturing, "City A")
	state.Businesses = append(state.Businesses, biz)
	biz.Capacity = 100
	// parts allow 40 units at 1.0 each, materials allow 200 at 0.5 each.
	biz.InputsStock["parts"] = 40
	biz.InputsStock["materials"] = 100

	chain.Produce(biz)

	if biz.FinishedGoods != 40 {
		t.Errorf("output = %v, want 40", biz.FinishedGoods)
	}
	if biz.InputsStock["parts"] != 0 {
		t.Errorf("parts left = %v, want 0", biz.InputsStock["parts"])
	}
	if biz.InputsStock["materials"] != 80 {
		t.Errorf("materials left = %v, want 80", biz.InputsStock["materials"])
	}
}

func TestZeroRequirementInputNeverLimits(t *testing.T) {
	chain, state := newTestChain(t)
	chain.recipes[world.SectorTech] = Recipe{
		Inputs:                  map[string]float64{"parts": 0},
		OutputPerDayPerCapacity: 1.0,
	}
	biz := world.NewBusiness("BIZ-2", world.SectorTech, "City A")
	state.Businesses = append(state.Businesses, biz)
	biz.Capacity = 50

	chain.Produce(biz)

	if biz.FinishedGoods != 50 {
		t.Fatalf("output = %v, want 50 (zero-requirement input limited output)", biz.FinishedGoods)
	}
}

func TestCarryingCostChargedOnHeldStock(t *testing.T) {
	chain, state := newTestChain(t)
	biz := state.Businesses[0]
	biz.FinishedGoods = 70 // 100 output + 70 held = 170 after production
	startCash := state.Player.Cash

	cost := chain.Produce(biz)

	want := 170 * biz.CarryingCostRateDaily
	if cost != want {
		t.Errorf("carrying cost = %v, want %v", cost, want)
	}
	if got := startCash - state.Player.Cash; got != want {
		t.Errorf("cash deducted = %v, want %v", got, want)
	}
}

func TestInventoryNeverNegative(t *testing.T) {
	chain, state := newTestChain(t)
	biz := world.NewBusiness("BIZ-2", world.SectorManufacturing, "City A")
	state.Businesses = append(state.Businesses, biz)
	biz.Capacity = 100
	biz.InputsStock["parts"] = 0.0001
	biz.InputsStock["materials"] = 0.0001

	chain.Produce(biz)

	for input, qty := range biz.InputsStock {
		if qty < 0 {
			t.Errorf("%s stock negative: %v", input, qty)
		}
	}
}

// Package supply handles procurement, in-flight orders, production, and
// inventory carrying cost for every business.
package supply

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/MarcinGorn/businesssuite/internal/config"
	"github.com/MarcinGorn/businesssuite/internal/entropy"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

// Recipe maps input names to the quantity consumed per unit of output.
type Recipe struct {
	Inputs                  map[string]float64
	OutputPerDayPerCapacity float64
}

// Config holds procurement policy shared by all firms.
type Config struct {
	LeadTimeMinDays int
	LeadTimeMaxDays int
	InputUnitCosts  map[string]float64
}

// DefaultConfig returns the built-in procurement policy.
func DefaultConfig() Config {
	return Config{
		LeadTimeMinDays: 3,
		LeadTimeMaxDays: 8,
		InputUnitCosts: map[string]float64{
			"parts":     4.0,
			"materials": 2.5,
		},
	}
}

// defaultRecipes returns the built-in per-sector recipes.
func defaultRecipes() map[world.Sector]Recipe {
	return map[world.Sector]Recipe{
		world.SectorRetail:        {Inputs: map[string]float64{}, OutputPerDayPerCapacity: 1.0},
		world.SectorManufacturing: {Inputs: map[string]float64{"parts": 1.0, "materials": 0.5}, OutputPerDayPerCapacity: 1.0},
		world.SectorRealEstate:    {Inputs: map[string]float64{}, OutputPerDayPerCapacity: 0.1},
		world.SectorTech:          {Inputs: map[string]float64{"parts": 0.2}, OutputPerDayPerCapacity: 0.8},
	}
}

// Chain runs the supply-chain step for the shared world state.
type Chain struct {
	state   *world.State
	cfg     Config
	recipes map[world.Sector]Recipe
	rng     *entropy.Source
}

// NewChain creates a supply chain with default recipes and costs.
func NewChain(state *world.State, rng *entropy.Source) *Chain {
	return &Chain{
		state:   state,
		cfg:     DefaultConfig(),
		recipes: defaultRecipes(),
		rng:     rng,
	}
}

// Rebind points the chain at a freshly loaded state.
func (c *Chain) Rebind(state *world.State) {
	c.state = state
}

// ApplyBalance overlays well-formed balance overrides; malformed entries
// keep the defaults.
func (c *Chain) ApplyBalance(b config.Balance) {
	for name, cost := range b.SupplyChain.InputUnitCosts {
		if cost > 0 {
			c.cfg.InputUnitCosts[name] = cost
		}
	}
	if min, max, ok := b.SupplyChain.LeadTimeBounds(); ok {
		c.cfg.LeadTimeMinDays = min
		c.cfg.LeadTimeMaxDays = max
	}
	for sector, r := range b.SupplyChain.Recipes {
		s := world.Sector(sector)
		if !world.ValidSector(s) || r.OutputPerDayPerCapacity <= 0 {
			continue
		}
		inputs := make(map[string]float64, len(r.Inputs))
		for name, qty := range r.Inputs {
			if qty >= 0 {
				inputs[name] = qty
			}
		}
		c.recipes[s] = Recipe{Inputs: inputs, OutputPerDayPerCapacity: r.OutputPerDayPerCapacity}
	}
}

// Recipe returns the recipe for a sector.
func (c *Chain) Recipe(s world.Sector) (Recipe, bool) {
	r, ok := c.recipes[s]
	return r, ok
}

// InputUnitCost returns the unit cost for an input, defaulting to 1.0.
func (c *Chain) InputUnitCost(name string) float64 {
	if cost, ok := c.cfg.InputUnitCosts[name]; ok {
		return cost
	}
	return 1.0
}

// InputUnitCosts returns a copy of the configured input costs.
func (c *Chain) InputUnitCosts() map[string]float64 {
	return maps.Clone(c.cfg.InputUnitCosts)
}

// AdvanceOrders ages every in-flight order by one day and delivers matured
// orders into the firm's input stock. Orders leave the active list only by
// delivery.
func (c *Chain) AdvanceOrders(b *world.Business) {
	remaining := b.ActiveOrders[:0]
	for _, order := range b.ActiveOrders {
		order.ETADays--
		if order.ETADays <= 0 {
			b.InputsStock[order.Input] += order.Quantity
			continue
		}
		remaining = append(remaining, order)
	}
	b.ActiveOrders = remaining
}

// MaybeReorder places a standing order for each recipe input at or below
// the firm's reorder point, paying on order. Unaffordable orders are
// skipped outright — no partial orders, no queued intent.
func (c *Chain) MaybeReorder(b *world.Business) {
	recipe, ok := c.recipes[b.Sector]
	if !ok || len(recipe.Inputs) == 0 {
		return
	}
	// Stable input order keeps seeded runs reproducible.
	inputs := maps.Keys(recipe.Inputs)
	slices.Sort(inputs)
	for _, input := range inputs {
		if b.InputsStock[input] > b.ReorderPoint {
			continue
		}
		c.placeOrder(b, input, b.OrderQuantity)
	}
}

// PlaceOrder is player-directed procurement with the same cost and
// lead-time policy as automatic reordering.
func (c *Chain) PlaceOrder(b *world.Business, input string, qty float64) bool {
	if qty <= 0 {
		return false
	}
	return c.placeOrder(b, input, qty)
}

func (c *Chain) placeOrder(b *world.Business, input string, qty float64) bool {
	unitCost := c.InputUnitCost(input)
	totalCost := qty * unitCost
	if c.state.Player.Cash < totalCost {
		return false
	}
	eta := c.rng.IntBetween(c.cfg.LeadTimeMinDays, c.cfg.LeadTimeMaxDays)
	c.state.Player.Cash -= totalCost
	b.ActiveOrders = append(b.ActiveOrders, world.Order{
		Input:    input,
		Quantity: qty,
		ETADays:  eta,
		UnitCost: unitCost,
	})
	return true
}

// Produce runs one day of production: output is capped by capacity and by
// the scarcest input, inputs are consumed proportionally, and the firm
// pays carrying cost on everything held. Returns the carrying cost so the
// caller can record it as opex — ledger ownership stays in finance.
func (c *Chain) Produce(b *world.Business) float64 {
	recipe, ok := c.recipes[b.Sector]
	if !ok {
		return 0
	}

	baseOutput := recipe.OutputPerDayPerCapacity * b.Capacity
	maxByInputs := baseOutput
	for input, perUnit := range recipe.Inputs {
		if perUnit <= 0 {
			continue // zero-requirement inputs never limit output
		}
		limit := b.InputsStock[input] / perUnit
		if limit < maxByInputs {
			maxByInputs = limit
		}
	}
	output := min(baseOutput, maxByInputs)
	if output < 0 {
		output = 0
	}

	for input, perUnit := range recipe.Inputs {
		need := output * perUnit
		next := b.InputsStock[input] - need
		if next < 0 {
			next = 0
		}
		b.InputsStock[input] = next
	}
	b.FinishedGoods += output

	held := b.FinishedGoods
	for _, qty := range b.InputsStock {
		held += qty
	}
	carryingCost := held * b.CarryingCostRateDaily
	if carryingCost > 0 {
		c.state.Player.Cash -= carryingCost
	}
	return carryingCost
}

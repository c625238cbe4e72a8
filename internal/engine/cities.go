package engine

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// updateCities drifts each city's opportunity and cost indices around
// their seed baselines with a smooth noise field, and compounds GDP by
// the local opportunity gap. Baselines come from the configured seed
// values, never from drifted state, so the clamp band survives reloads.
func (e *Engine) updateCities() {
	t := float64(e.state.Clock.Tick) * 0.02
	names := maps.Keys(e.state.Cities)
	slices.Sort(names)
	for i, name := range names {
		base, ok := e.cityBase[name]
		if !ok {
			base = *e.state.Cities[name]
			e.cityBase[name] = base
		}
		city := e.state.Cities[name]

		x := float64(i) * 13.7
		city.Opportunity = clampf(base.Opportunity*(1+0.2*e.cityNoise.Eval2(x, t)), 0.7*base.Opportunity, 1.3*base.Opportunity)
		city.CostIndex = clampf(base.CostIndex*(1+0.1*e.cityNoise.Eval2(x, t+512)), 0.7*base.CostIndex, 1.3*base.CostIndex)
		city.GDP *= 1 + 0.0002*(city.Opportunity-1.0)
	}
}

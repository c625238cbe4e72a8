// Package goals tracks player progress toward milestone objectives.
package goals

import "github.com/MarcinGorn/businesssuite/internal/world"

// Tracker marks objectives complete as their targets are reached.
// Completion is monotonic: a completed objective never reverts.
type Tracker struct {
	state *world.State
}

// New creates a tracker, seeding the milestone list if the state has none.
func New(state *world.State) *Tracker {
	t := &Tracker{state: state}
	t.seed()
	return t
}

// Rebind points the tracker at a freshly loaded state.
func (t *Tracker) Rebind(state *world.State) {
	t.state = state
	t.seed()
}

func (t *Tracker) seed() {
	if len(t.state.Goals.Objectives) > 0 {
		return
	}
	t.state.Goals.Objectives = []world.Objective{
		{Name: "First Million", Description: "Reach net worth of 1,000,000", Target: 1_000_000, Kind: "net_worth"},
		{Name: "Prime Credit", Description: "Reach credit score of 750", Target: 750, Kind: "credit"},
		{Name: "Revenue Run", Description: "Achieve cumulative revenue of 500,000", Target: 500_000, Kind: "revenue"},
	}
}

// RecordRevenue accumulates non-negative revenue toward revenue goals.
func (t *Tracker) RecordRevenue(amount float64) {
	if amount > 0 {
		t.state.Goals.CumulativeRevenue += amount
	}
}

// TickDaily checks every open objective against its target.
func (t *Tracker) TickDaily() {
	for i := range t.state.Goals.Objectives {
		obj := &t.state.Goals.Objectives[i]
		if obj.Completed {
			continue
		}
		switch obj.Kind {
		case "net_worth":
			obj.Completed = t.state.Player.NetWorth() >= obj.Target
		case "credit":
			obj.Completed = float64(t.state.Player.CreditScore) >= obj.Target
		case "revenue":
			obj.Completed = t.state.Goals.CumulativeRevenue >= obj.Target
		}
	}
}

// Status returns a copy of the objective list.
func (t *Tracker) Status() []world.Objective {
	out := make([]world.Objective, len(t.state.Goals.Objectives))
	copy(out, t.state.Goals.Objectives)
	return out
}

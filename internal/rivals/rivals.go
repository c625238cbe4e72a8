// Package rivals models autonomous competitors whose expansion decisions
// push sector competition pressure up and down.
package rivals

import (
	"github.com/MarcinGorn/businesssuite/internal/entropy"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

// Competitor is one autonomous firm bound to a sector.
type Competitor struct {
	Name           string       `json:"name"`
	Sector         world.Sector `json:"sector"`
	Location       string       `json:"location"`
	Aggressiveness float64      `json:"aggressiveness"` // 0-1
}

// Manager adjusts sector competition from the fixed competitor roster.
type Manager struct {
	state       *world.State
	competitors []Competitor
	rng         *entropy.Source
}

// New creates the manager with the standard roster.
func New(state *world.State, rng *entropy.Source) *Manager {
	return &Manager{
		state: state,
		rng:   rng,
		competitors: []Competitor{
			{Name: "ShopCo", Sector: world.SectorRetail, Location: "City A", Aggressiveness: 0.5},
			{Name: "BuildWorks", Sector: world.SectorManufacturing, Location: "City B", Aggressiveness: 0.6},
			{Name: "EstateOne", Sector: world.SectorRealEstate, Location: "City C", Aggressiveness: 0.4},
			{Name: "TechNova", Sector: world.SectorTech, Location: "City A", Aggressiveness: 0.7},
		},
	}
}

// Rebind points the manager at a freshly loaded state.
func (m *Manager) Rebind(state *world.State) {
	m.state = state
}

// Roster returns a copy of the competitor list.
func (m *Manager) Roster() []Competitor {
	out := make([]Competitor, len(m.competitors))
	copy(out, m.competitors)
	return out
}

// TickDaily lets each competitor expand when its sector runs hot, then
// nudges every competition index toward the accumulated pressure minus a
// constant decay, clamped to [0.7, 1.5].
func (m *Manager) TickDaily() {
	pressure := make(map[world.Sector]float64, 4)
	for _, s := range world.Sectors() {
		pressure[s] = 0
	}
	for _, comp := range m.competitors {
		demand := m.state.Market.SectorDemand[comp.Sector]
		if demand > 1.0 && m.rng.Float64() < comp.Aggressiveness*0.3 {
			pressure[comp.Sector] += 0.02
		}
	}
	for _, s := range world.Sectors() {
		next := m.state.Market.SectorCompetition[s] + pressure[s] - 0.01
		if next < 0.7 {
			next = 0.7
		}
		if next > 1.5 {
			next = 1.5
		}
		m.state.Market.SectorCompetition[s] = next
	}
}

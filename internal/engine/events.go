package engine

import (
	"log/slog"

	"github.com/MarcinGorn/businesssuite/internal/entropy"
	"github.com/MarcinGorn/businesssuite/internal/world"
)

// eventSystem spawns and ticks macro events that overlay the daily step.
// An active event applies its effect every day until its duration runs out.
type eventSystem struct {
	state *world.State
	rng   *entropy.Source
}

// eventTemplate is a spawnable event archetype with a duration range.
type eventTemplate struct {
	name        string
	description string
	severity    float64
	kind        string
	minDays     int
	maxDays     int
}

var eventTemplates = []eventTemplate{
	{"Market Crash", "Panic selling ripples through every sector", 0.7, "crash", 5, 20},
	{"Tech Boom", "A wave of optimism lifts consumer appetite", 0.6, "boom", 5, 20},
	{"New Regulation", "Compliance costs reshape one industry", 0.5, "regulation", 10, 30},
	{"Rate Hike", "The central bank tightens abruptly", 0.8, "rate_shock", 3, 10},
}

// tickDaily applies every active event, drops the expired ones, then rolls
// the 5% daily spawn chance.
func (es *eventSystem) tickDaily() {
	remaining := es.state.ActiveEvents[:0]
	for i := range es.state.ActiveEvents {
		ev := &es.state.ActiveEvents[i]
		es.applyEffect(ev)
		ev.DurationDays--
		if ev.DurationDays > 0 {
			remaining = append(remaining, *ev)
		} else {
			slog.Info("economic event ended", "event", ev.Name)
		}
	}
	es.state.ActiveEvents = remaining

	if es.rng.Float64() < 0.05 {
		es.spawn()
	}
}

func (es *eventSystem) spawn() {
	tmpl := eventTemplates[es.rng.IndexN(len(eventTemplates))]
	ev := world.EconomicEvent{
		Name:         tmpl.name,
		Description:  tmpl.description,
		Severity:     tmpl.severity,
		Kind:         tmpl.kind,
		DurationDays: es.rng.IntBetween(tmpl.minDays, tmpl.maxDays),
	}
	es.state.ActiveEvents = append(es.state.ActiveEvents, ev)
	slog.Info("economic event started",
		"event", ev.Name, "kind", ev.Kind, "days", ev.DurationDays)
}

func (es *eventSystem) applyEffect(ev *world.EconomicEvent) {
	m := &es.state.Market
	s := ev.Severity
	switch ev.Kind {
	case "crash":
		m.BaseInterestRate = max(0.01, m.BaseInterestRate-0.002*s)
		for _, sector := range world.Sectors() {
			m.SectorDemand[sector] = max(0.3, m.SectorDemand[sector]-0.05*s)
		}
	case "boom":
		for _, sector := range world.Sectors() {
			m.SectorDemand[sector] = min(1.8, m.SectorDemand[sector]+0.05*s)
		}
	case "regulation":
		sector := world.Sectors()[es.rng.IndexN(len(world.Sectors()))]
		m.SectorCompetition[sector] = min(1.6, m.SectorCompetition[sector]+0.05*s)
	case "rate_shock":
		m.BaseInterestRate = min(0.25, m.BaseInterestRate+0.01*s)
	}
}

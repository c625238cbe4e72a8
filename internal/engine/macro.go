package engine

import (
	"math"

	"github.com/MarcinGorn/businesssuite/internal/world"
)

// cycleMultiplier scales baseline sector demand by cycle phase.
func cycleMultiplier(phase world.CyclePhase) float64 {
	switch phase {
	case world.PhasePeak:
		return 1.10
	case world.PhaseExpansion:
		return 1.05
	case world.PhaseRecovery:
		return 1.00
	case world.PhaseRecession:
		return 0.90
	}
	return 1.00
}

// updateMacro advances the business cycle, the inflation random walk, and
// the mean-reverting base interest rate.
func (e *Engine) updateMacro() {
	m := &e.state.Market

	m.CycleAngle += e.cfg.CycleSpeed
	if m.CycleAngle >= 2*math.Pi {
		m.CycleAngle -= 2 * math.Pi
	}
	wave := math.Sin(m.CycleAngle)
	switch {
	case wave > 0.5:
		m.CyclePhase = world.PhasePeak
	case wave > 0:
		m.CyclePhase = world.PhaseExpansion
	case wave > -0.5:
		m.CyclePhase = world.PhaseRecovery
	default:
		m.CyclePhase = world.PhaseRecession
	}

	drift := e.cfg.InflationDrift
	m.InflationAnnual = clampf(m.InflationAnnual+e.rng.Uniform(-drift, drift)+drift, 0, 0.15)

	reversion := (0.05 - m.BaseInterestRate) * e.cfg.InterestReversion
	m.BaseInterestRate = clampf(m.BaseInterestRate+reversion+e.rng.Uniform(-0.001, 0.001), 0.01, 0.20)
}

// updateSectors nudges each demand index toward the phase multiplier while
// competition pushes it down, plus uniform noise. Indices live in [0.3, 1.7].
func (e *Engine) updateSectors() {
	m := &e.state.Market
	mult := cycleMultiplier(m.CyclePhase)
	for _, s := range world.Sectors() {
		demand := m.SectorDemand[s]
		demand += e.cfg.DemandSensitivity * (mult - 1.0)
		demand -= e.cfg.CompetitionPressure * (m.SectorCompetition[s] - 1.0)
		demand += e.rng.Uniform(-0.02, 0.02)
		m.SectorDemand[s] = clampf(demand, 0.3, 1.7)
	}
}

// dailyCompound converts an annual rate into its compounded daily rate.
func dailyCompound(annual float64) float64 {
	return math.Pow(1+annual, 1.0/365.0) - 1
}

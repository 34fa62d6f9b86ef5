// Growth and capacity model: a composite prosperity score gates city
// footprint expansion and the background population/traffic scale.
package engine

import (
	"fmt"
	"log/slog"
)

// GrowthState tracks the city footprint and derived capacity.
type GrowthState struct {
	Radius        int     `json:"radius"`
	LastExpandDay int     `json:"last_expand_day"`
	Score         float64 `json:"score"`
	Population    int     `json:"population"`
	Vehicles      int     `json:"vehicles"`
}

// growthScore blends economy, stability, climate, mean happiness, a
// treasury signal, debt headroom, and average department level into a
// 0..100 composite.
func (s *Simulation) growthScore() float64 {
	treasurySignal := clamp(s.Budget.Treasury, 0, 150) / 1.5
	debtHeadroom := clamp((debtMax-s.Budget.Debt)/(debtMax-debtMin), 0, 1) * 100
	levelSignal := clamp((s.avgDepartmentLevel()-1)/9, 0, 1) * 100

	return 0.22*s.KPIs.Get(KPIEconomy) +
		0.20*s.KPIs.Get(KPIStability) +
		0.13*s.KPIs.Get(KPIClimate) +
		0.20*s.meanHappiness() +
		0.10*treasurySignal +
		0.08*debtHeadroom +
		0.07*levelSignal
}

// updateGrowth expands the city radius when the score clears a
// threshold band and the minimum day gap has elapsed. A strong economy
// shortens the gap.
func (s *Simulation) updateGrowth() {
	s.Growth.Score = s.growthScore()

	gap := s.cfg.GrowthMinGapDays
	if s.KPIs.Get(KPIEconomy) > 70 {
		gap = s.cfg.GrowthFastGapDays
	}
	if s.Day-s.Growth.LastExpandDay < gap {
		return
	}
	if s.Growth.Radius >= s.Map.MaxRadius() {
		return
	}

	var step int
	switch {
	case s.Growth.Score >= s.cfg.GrowthBigThreshold:
		step = 2
	case s.Growth.Score >= s.cfg.GrowthThreshold:
		step = 1
	default:
		return
	}

	s.Growth.Radius += step
	if s.Growth.Radius > s.Map.MaxRadius() {
		s.Growth.Radius = s.Map.MaxRadius()
	}
	s.Growth.LastExpandDay = s.Day
	s.Growth.Population, s.Growth.Vehicles = s.capacityFor(s.Growth.Radius)

	s.EmitEvent("growth", fmt.Sprintf("city expands to radius %d", s.Growth.Radius))
	slog.Info("city expanded",
		"radius", s.Growth.Radius,
		"score", fmt.Sprintf("%.1f", s.Growth.Score),
		"population", s.Growth.Population,
	)
}

// capacityFor derives background population and traffic counts from the
// city radius.
func (s *Simulation) capacityFor(radius int) (population, vehicles int) {
	return 40 + radius*25, radius * 6
}

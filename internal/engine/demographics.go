// Demographics model: five population segments whose happiness follows
// a weighted blend of nine derived service signals.
package engine

import "github.com/mkello/civitas/internal/content"

// Demographic is one population segment.
type Demographic struct {
	Key       string  `json:"key"`
	Happiness float64 `json:"happiness"` // [0,100]
	Trend     float64 `json:"trend"`     // last-tick raw delta
}

// segmentOrder fixes iteration order for snapshots and tests.
var segmentOrder = []string{
	content.SegPoverty,
	content.SegWorking,
	content.SegMiddle,
	content.SegBusiness,
	content.SegElite,
}

func newDemographics() []*Demographic {
	out := make([]*Demographic, 0, len(segmentOrder))
	for _, key := range segmentOrder {
		out = append(out, &Demographic{Key: key, Happiness: 55})
	}
	return out
}

// Note derives the qualitative label from happiness alone.
func (d *Demographic) Note() string {
	switch {
	case d.Happiness < 25:
		return "severe"
	case d.Happiness < 45:
		return "fragile"
	case d.Happiness > 72:
		return "thriving"
	default:
		return "steady"
	}
}

// The nine service signals, in matrix column order:
// welfare, health, education, economic, climate, integrity funding
// deltas; corruption proxy; debt headroom; inequality proxy.
const signalCount = 9

// segmentWeights is each segment's weighting vector over the signals.
var segmentWeights = map[string][signalCount]float64{
	content.SegPoverty:  {1.4, 1.2, 0.8, 0.3, 0.5, 0.3, 0.4, 0.2, 1.2},
	content.SegWorking:  {0.9, 0.9, 0.9, 0.9, 0.4, 0.3, 0.4, 0.3, 0.8},
	content.SegMiddle:   {0.4, 0.8, 1.2, 0.8, 0.6, 0.8, 0.8, 0.5, 0.4},
	content.SegBusiness: {0.1, 0.3, 0.5, 1.5, 0.2, 0.7, 0.8, 0.9, -0.2},
	content.SegElite:    {-0.2, 0.3, 0.4, 1.2, 0.8, 0.6, 0.6, 1.0, -0.5},
}

// serviceSignals computes the nine signals from department budgets,
// levels, and KPIs. Each is roughly [-1, 1], centered at the budget
// baseline of 60.
func (s *Simulation) serviceSignals() [signalCount]float64 {
	fund := func(id string) float64 {
		d := s.Departments[id]
		return (d.Budget-budgetBaseline)/budgetBaseline + float64(d.Level-1)*0.05
	}

	welfare := (fund(string(KPIHealth)) + fund(string(KPIEducation))) / 2
	economic := fund(string(KPIEconomy)) + (s.KPIs.Get(KPIEconomy)-50)/100
	corruption := (s.KPIs.Get(KPIIntegrity) - 50) / 50
	headroom := clamp((140-s.Budget.Debt)/115, -1, 1)
	services := (s.KPIs.Get(KPIHealth) + s.KPIs.Get(KPIEducation)) / 2
	inequality := -(s.KPIs.Get(KPIEconomy) - services) / 100

	return [signalCount]float64{
		welfare,
		fund(string(KPIHealth)),
		fund(string(KPIEducation)),
		economic,
		fund(string(KPIClimate)),
		fund(string(KPIIntegrity)),
		corruption,
		headroom,
		inequality,
	}
}

// updateDemographics advances each segment's happiness by the weighted
// signal sum at the configured gain.
func (s *Simulation) updateDemographics() {
	signals := s.serviceSignals()
	for _, d := range s.Demographics {
		weights := segmentWeights[d.Key]
		sum := 0.0
		for i := 0; i < signalCount; i++ {
			sum += weights[i] * signals[i]
		}
		delta := s.cfg.HappinessGain * sum
		d.Trend = delta
		d.Happiness = clamp(d.Happiness+delta, 0, 100)
	}
}

// nudgeSegment applies a direct happiness delta from events and
// decisions. Trend tracking is reserved for the tick update.
func (s *Simulation) nudgeSegment(key string, delta float64) {
	for _, d := range s.Demographics {
		if d.Key == key {
			d.Happiness = clamp(d.Happiness+delta, 0, 100)
			return
		}
	}
}

// segmentByKey returns the segment, or nil for an unknown key.
func (s *Simulation) segmentByKey(key string) *Demographic {
	for _, d := range s.Demographics {
		if d.Key == key {
			return d
		}
	}
	return nil
}

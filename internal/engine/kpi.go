// KPI board: seven outcome scalars with rolling history. Stability is
// derived from the other six every tick and never accumulated.
package engine

// KPIKey names one outcome indicator.
type KPIKey string

const (
	KPIHealth    KPIKey = "health"
	KPIEducation KPIKey = "education"
	KPISafety    KPIKey = "safety"
	KPIClimate   KPIKey = "climate"
	KPIIntegrity KPIKey = "integrity"
	KPIEconomy   KPIKey = "economy"
	KPIStability KPIKey = "stability"
)

// DomainKPIs are the six directly-driven indicators; stability derives
// from them.
var DomainKPIs = [...]KPIKey{KPIHealth, KPIEducation, KPISafety, KPIClimate, KPIIntegrity, KPIEconomy}

// stabilityWeights is the fixed blend defining the stability KPI.
var stabilityWeights = map[KPIKey]float64{
	KPIHealth:    0.18,
	KPIEducation: 0.16,
	KPISafety:    0.18,
	KPIClimate:   0.14,
	KPIIntegrity: 0.16,
	KPIEconomy:   0.18,
}

// KPIBoard holds current values and a bounded rolling history per KPI.
type KPIBoard struct {
	Values  map[KPIKey]float64   `json:"values"`
	History map[KPIKey][]float64 `json:"history"`
}

func newKPIBoard(baseline map[string]float64) *KPIBoard {
	b := &KPIBoard{
		Values:  make(map[KPIKey]float64, 7),
		History: make(map[KPIKey][]float64, 7),
	}
	for _, k := range DomainKPIs {
		v := 50.0
		if bv, ok := baseline[string(k)]; ok {
			v = clamp(bv, 0, 100)
		}
		b.Values[k] = v
	}
	b.Values[KPIStability] = 0
	return b
}

// Get returns the current value of a KPI.
func (b *KPIBoard) Get(k KPIKey) float64 {
	return b.Values[k]
}

// Add nudges a KPI. Intermediate excursions outside [0,100] are allowed;
// the board is clamped at end of tick.
func (b *KPIBoard) Add(k KPIKey, delta float64) {
	if k == KPIStability {
		// Transient nudges to stability are permitted but the derived
		// recomputation overwrites them at end of tick.
		b.Values[k] += delta
		return
	}
	if _, ok := b.Values[k]; ok {
		b.Values[k] += delta
	}
}

// clampAll clamps every KPI to [0,100].
func (b *KPIBoard) clampAll() {
	for k, v := range b.Values {
		b.Values[k] = clamp(v, 0, 100)
	}
}

// recomputeStability overwrites stability with the fixed weighted sum.
func (b *KPIBoard) recomputeStability() {
	total := 0.0
	for k, w := range stabilityWeights {
		total += b.Values[k] * w
	}
	b.Values[KPIStability] = clamp(total, 0, 100)
}

// commitHistory appends current values and trims to the window.
func (b *KPIBoard) commitHistory(window int) {
	for k, v := range b.Values {
		h := append(b.History[k], v)
		if len(h) > window {
			h = h[len(h)-window:]
		}
		b.History[k] = h
	}
}

// propagateKPIs moves each domain KPI toward the level implied by its
// department's budget deviation and level, with small cross-penalties.
func (s *Simulation) propagateKPIs() {
	for _, d := range s.Departments {
		if !d.Placed {
			continue
		}
		target := 50 + (d.Budget-budgetBaseline)*s.cfg.KPIBudgetGain + float64(d.Level-1)*s.cfg.KPILevelGain
		cur := s.KPIs.Get(d.KPI)
		s.KPIs.Add(d.KPI, (target-cur)*s.cfg.KPIPace)
	}

	// Cross-penalties: high debt suppresses health, an empty treasury
	// suppresses integrity.
	if s.Budget.Debt > 120 {
		s.KPIs.Add(KPIHealth, -(s.Budget.Debt-120)*s.cfg.DebtHealthDrag)
	}
	if s.Budget.Treasury < 0 {
		s.KPIs.Add(KPIIntegrity, -s.cfg.BrokeIntegrityDrag)
	}
}

// finalizeKPIs clamps the board and recomputes the derived stability.
func (s *Simulation) finalizeKPIs() {
	s.KPIs.clampAll()
	s.KPIs.recomputeStability()
}

// bestAndWorstKPI returns the strongest and weakest domain KPI.
func (s *Simulation) bestAndWorstKPI() (best, worst KPIKey) {
	best, worst = DomainKPIs[0], DomainKPIs[0]
	for _, k := range DomainKPIs[1:] {
		if s.KPIs.Get(k) > s.KPIs.Get(best) {
			best = k
		}
		if s.KPIs.Get(k) < s.KPIs.Get(worst) {
			worst = k
		}
	}
	return best, worst
}

// Decision ledger and ideology tracker: the single choke point every
// consequential action routes through, plus the periodic report built
// from it.
package engine

import (
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"
)

// AxisNames labels the four ideology axes, in vector order.
var AxisNames = [4]string{"welfare-market", "liberty-order", "green-growth", "transparency-control"}

// IdeologyVector accumulates axis drift from every logged decision.
type IdeologyVector struct {
	Axes  [4]float64 `json:"axes"`  // each [-100,100]
	Trust float64    `json:"trust"` // [0,100]
}

// Decision is an immutable ledger entry.
type Decision struct {
	ID        string             `json:"id"`
	Day       int                `json:"day"`
	Title     string             `json:"title"`
	Category  string             `json:"category"`
	Choice    string             `json:"choice"`
	Demo      map[string]float64 `json:"demo"`
	KPI       map[KPIKey]float64 `json:"kpi"`
	Treasury  float64            `json:"treasury"`
	Projected map[string]float64 `json:"projected"` // decayed 30-day demographic delta
	Trust     float64            `json:"trust"`
	Axes      [4]float64         `json:"axes"`
	RiskFlags []string           `json:"risk_flags"`
	Priority  float64            `json:"priority"`
}

// decisionInput is what a committed action hands to the ledger.
type decisionInput struct {
	Title    string
	Category string
	Choice   string
	Demo     map[string]float64
	KPI      map[KPIKey]float64
	Treasury float64
	Trust    float64
	Axes     [4]float64
	Truth    *float64
}

// persistenceFactors scale immediate demographic deltas into the
// 30-day projection. Structural categories persist longer than ad hoc
// spending.
var persistenceFactors = map[string]float64{
	"integrity": 0.85,
	"education": 0.80,
	"climate":   0.80,
	"health":    0.65,
	"safety":    0.60,
	"economy":   0.50,
}

const defaultPersistence = 0.35

// logDecision records a consequential action: projects the 30-day
// demographic delta, drifts the ideology axes and trust, computes the
// priority score, and appends to the capped ledger.
func (s *Simulation) logDecision(in decisionInput) *Decision {
	factor, ok := persistenceFactors[in.Category]
	if !ok {
		factor = defaultPersistence
	}

	projected := make(map[string]float64, len(in.Demo))
	demoImpact := 0.0
	for seg, v := range in.Demo {
		projected[seg] = v * factor
		demoImpact += math.Abs(v)
	}

	kpiImpact := 0.0
	for _, v := range in.KPI {
		kpiImpact += math.Abs(v)
	}

	for i, drift := range in.Axes {
		s.Ideology.Axes[i] = clamp(s.Ideology.Axes[i]+drift, -100, 100)
	}
	s.Ideology.Trust = clamp(s.Ideology.Trust+in.Trust, 0, 100)

	risks := riskFlags(in)
	priority := s.cfg.PriorityDemo*demoImpact +
		s.cfg.PriorityTrust*math.Abs(in.Trust) +
		s.cfg.PriorityKPI*kpiImpact +
		s.cfg.PriorityRisk*float64(len(risks))

	d := &Decision{
		ID:        uuid.NewString(),
		Day:       s.Day,
		Title:     in.Title,
		Category:  in.Category,
		Choice:    in.Choice,
		Demo:      in.Demo,
		KPI:       in.KPI,
		Treasury:  in.Treasury,
		Projected: projected,
		Trust:     in.Trust,
		Axes:      in.Axes,
		RiskFlags: risks,
		Priority:  priority,
	}

	s.Ledger = append(s.Ledger, d)
	s.ledgerSeq++
	if len(s.Ledger) > s.cfg.LedgerCap {
		s.Ledger = s.Ledger[len(s.Ledger)-s.cfg.LedgerCap:]
	}

	// Schedule the projected delta to land after 30 days.
	if len(projected) > 0 {
		proj := projected
		s.scheduleDelayed(s.Day+30, "30-day consequences: "+in.Title, func(sim *Simulation) {
			for seg, v := range proj {
				sim.nudgeSegment(seg, v)
			}
		})
	}

	return d
}

// riskFlags derives warning tags from the entry's deltas.
func riskFlags(in decisionInput) []string {
	var flags []string
	if in.Treasury < -10 {
		flags = append(flags, "costly")
	}
	for _, v := range in.Demo {
		if v <= -3 {
			flags = append(flags, "backlash")
			break
		}
	}
	if in.Truth != nil && *in.Truth < 0 {
		flags = append(flags, "misinformation")
	}
	if in.Trust < 0 {
		flags = append(flags, "trust-eroding")
	}
	return flags
}

// Report is the periodic structured summary for external presentation.
type Report struct {
	Day           int                `json:"day"`
	WindowStart   int                `json:"window_start"`
	Counters      Counters           `json:"counters"`
	Top           []*Decision        `json:"top"`
	TopKPI        KPIKey             `json:"top_kpi"`
	BottomKPI     KPIKey             `json:"bottom_kpi"`
	KPIs          map[KPIKey]float64 `json:"kpis"`
	Stability     float64            `json:"stability"`
	MeanHappiness float64            `json:"mean_happiness"`
	Trust         float64            `json:"trust"`
}

const reportTopEntries = 5

// maybeEmitReport builds the periodic report on the fixed cadence,
// resets the window counters, and hands the report to OnReport.
func (s *Simulation) maybeEmitReport() {
	if s.Day == 0 || s.Day%s.cfg.ReportEveryDays != 0 {
		return
	}

	window := s.ledgerWindow()
	ranked := make([]*Decision, len(window))
	copy(ranked, window)
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Priority > ranked[j].Priority })
	if len(ranked) > reportTopEntries {
		ranked = ranked[:reportTopEntries]
	}

	best, worst := s.bestAndWorstKPI()
	kpis := make(map[KPIKey]float64, len(s.KPIs.Values))
	for k, v := range s.KPIs.Values {
		kpis[k] = v
	}

	r := Report{
		Day:           s.Day,
		WindowStart:   s.lastReportDay,
		Counters:      s.Counters,
		Top:           ranked,
		TopKPI:        best,
		BottomKPI:     worst,
		KPIs:          kpis,
		Stability:     s.KPIs.Get(KPIStability),
		MeanHappiness: s.meanHappiness(),
		Trust:         s.Ideology.Trust,
	}
	s.LastReport = &r
	s.lastReportDay = s.Day
	s.lastReportSeq = s.ledgerSeq
	s.Counters = Counters{}

	s.EmitEvent("report", "periodic report issued")
	slog.Info("periodic report",
		"day", r.Day,
		"stability", r.Stability,
		"mean_happiness", r.MeanHappiness,
		"top_kpi", r.TopKPI,
		"bottom_kpi", r.BottomKPI,
		"decisions_ranked", len(r.Top),
	)

	if s.OnReport != nil {
		s.OnReport(r, window)
	}
}

// ledgerWindow returns the entries logged since the previous report.
// Sequence counters rather than day stamps bound the window, so a
// decision made after a report on the same day lands in the next
// window instead of falling between the two.
func (s *Simulation) ledgerWindow() []*Decision {
	n := s.ledgerSeq - s.lastReportSeq
	if n > len(s.Ledger) {
		n = len(s.Ledger)
	}
	if n <= 0 {
		return nil
	}
	return s.Ledger[len(s.Ledger)-n:]
}

package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkello/civitas/internal/content"
)

func TestLedgerCapped(t *testing.T) {
	s := newTestSim(t)

	for i := 0; i < 300; i++ {
		s.logDecision(decisionInput{Title: fmt.Sprintf("entry %d", i), Category: "adhoc", Choice: "noted"})
	}

	require.Len(t, s.Ledger, s.cfg.LedgerCap)
	// Oldest entries are evicted first.
	assert.Equal(t, "entry 60", s.Ledger[0].Title)
	assert.Equal(t, "entry 299", s.Ledger[len(s.Ledger)-1].Title)
}

func TestDecisionRiskFlagsAndPriority(t *testing.T) {
	s := newTestSim(t)

	d := s.logDecision(decisionInput{
		Title:    "Emergency land seizure",
		Category: "adhoc",
		Choice:   "seize",
		Demo:     map[string]float64{content.SegPoverty: -4},
		Treasury: -20,
		Trust:    -2,
	})

	assert.ElementsMatch(t, []string{"costly", "backlash", "trust-eroding"}, d.RiskFlags)

	// demo 1.0*4 + trust 1.5*2 + kpi 1.2*0 + risks 2.0*3
	assert.InDelta(t, 13.0, d.Priority, 1e-9)
}

func TestDecisionProjectionUsesPersistenceFactor(t *testing.T) {
	s := newTestSim(t)

	d := s.logDecision(decisionInput{
		Title:    "Anti-corruption drive",
		Category: "integrity",
		Choice:   "launch",
		Demo:     map[string]float64{content.SegMiddle: 2},
	})
	assert.InDelta(t, 2*0.85, d.Projected[content.SegMiddle], 1e-9)

	d = s.logDecision(decisionInput{
		Title:    "One-off parade",
		Category: "adhoc",
		Choice:   "fund",
		Demo:     map[string]float64{content.SegMiddle: 2},
	})
	assert.InDelta(t, 2*defaultPersistence, d.Projected[content.SegMiddle], 1e-9)
}

func TestProjectedDeltaLandsAfterThirtyDays(t *testing.T) {
	s := newTestSim(t, 0.99)

	s.logDecision(decisionInput{
		Title:    "Housing push",
		Category: "integrity",
		Choice:   "build",
		Demo:     map[string]float64{content.SegPoverty: 4},
	})

	seg := s.segmentByKey(content.SegPoverty)
	require.NotNil(t, seg)

	advance(t, s, 29)
	beforeLanding := seg.Happiness

	advance(t, s, 1)
	// The 30-day projection (4 * 0.85) lands on top of the normal drift.
	drift := seg.Trend
	assert.InDelta(t, beforeLanding+drift+4*0.85, seg.Happiness, 1e-6)
}

func TestIdeologyDriftClamped(t *testing.T) {
	s := newTestSim(t)

	for i := 0; i < 30; i++ {
		s.logDecision(decisionInput{
			Title:    "Push the axis",
			Category: "adhoc",
			Choice:   "push",
			Axes:     [4]float64{50, -50, 0, 0},
		})
	}

	assert.Equal(t, 100.0, s.Ideology.Axes[0])
	assert.Equal(t, -100.0, s.Ideology.Axes[1])
}

func TestReportCadenceAndCounterReset(t *testing.T) {
	s := newTestSim(t, 0.99)

	var hookReports []Report
	var hookWindows [][]*Decision
	s.OnReport = func(r Report, window []*Decision) {
		hookReports = append(hookReports, r)
		hookWindows = append(hookWindows, window)
	}

	advance(t, s, 29)
	if s.LastReport != nil {
		t.Fatalf("report emitted early on day %d", s.LastReport.Day)
	}

	advance(t, s, 1)
	require.NotNil(t, s.LastReport)
	assert.Equal(t, 30, s.LastReport.Day)
	assert.Equal(t, 0, s.LastReport.WindowStart)

	// Rapid prompts timed out on days 10, 17, and 24 of the window.
	assert.Equal(t, 3, s.LastReport.Counters.RapidAuto)
	assert.Equal(t, Counters{}, s.Counters, "window counters must reset after the report")

	require.Len(t, hookReports, 1)
	assert.Len(t, hookWindows[0], 3)

	// Next report closes the following window.
	advance(t, s, 30)
	require.NotNil(t, s.LastReport)
	assert.Equal(t, 60, s.LastReport.Day)
	assert.Equal(t, 30, s.LastReport.WindowStart)
	require.Len(t, hookReports, 2)
}

func TestReportDayDecisionLandsInNextWindow(t *testing.T) {
	s := newTestSim(t, 0.99)

	var windows [][]*Decision
	s.OnReport = func(_ Report, window []*Decision) {
		windows = append(windows, window)
	}

	advance(t, s, 30)
	require.Len(t, windows, 1)

	// A command issued after the day-30 report must land in the day-60
	// window, not fall between the two.
	res := s.SetDepartmentBudget("health", 80)
	require.True(t, res.Applied, res.Reason)

	advance(t, s, 30)
	require.Len(t, windows, 2)

	found := false
	for _, d := range windows[1] {
		if d.Day == 30 && d.Category == "health" {
			found = true
		}
	}
	assert.True(t, found, "day-30 decision missing from the second window")
}

func TestReportRanksByPriority(t *testing.T) {
	s := newTestSim(t, 0.99)

	s.Day = 29
	for i := 0; i < 8; i++ {
		s.logDecision(decisionInput{
			Title:    fmt.Sprintf("decision %d", i),
			Category: "adhoc",
			Choice:   "go",
			Demo:     map[string]float64{content.SegWorking: float64(i)},
		})
	}
	s.Day = 30
	s.maybeEmitReport()

	r := s.LastReport
	require.NotNil(t, r)
	require.Len(t, r.Top, reportTopEntries)
	for i := 1; i < len(r.Top); i++ {
		if r.Top[i].Priority > r.Top[i-1].Priority {
			t.Fatalf("report entries not sorted by priority at %d", i)
		}
	}
	assert.Equal(t, "decision 7", r.Top[0].Title)
}

func TestBestAndWorstKPI(t *testing.T) {
	s := newTestSim(t)
	s.KPIs.Values[KPIEconomy] = 90
	s.KPIs.Values[KPIClimate] = 10

	best, worst := s.bestAndWorstKPI()
	if best != KPIEconomy || worst != KPIClimate {
		t.Fatalf("best=%s worst=%s, want economy/climate", best, worst)
	}
}

package engine

import (
	"math"
	"testing"
)

// Long-run invariant: every KPI stays in [0,100] and stability is the
// fixed weighted blend of the six domain KPIs after every tick.
func TestAdvanceDayKPIInvariants(t *testing.T) {
	s := newTestSim(t, 0.99)

	for day := 1; day <= 200; day++ {
		advance(t, s, 1)

		for k, v := range s.KPIs.Values {
			if v < 0 || v > 100 {
				t.Fatalf("day %d: KPI %s = %.3f out of [0,100]", day, k, v)
			}
		}

		want := 0.0
		for k, w := range stabilityWeights {
			want += s.KPIs.Get(k) * w
		}
		got := s.KPIs.Get(KPIStability)
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("day %d: stability = %.6f, want weighted sum %.6f", day, got, want)
		}
	}
}

func TestActionPointRegen(t *testing.T) {
	s := newTestSim(t, 0.99)
	s.ActionPoints = 0

	// Regen lands every other day, capped at the maximum.
	advance(t, s, 4)
	if s.ActionPoints != 2 {
		t.Fatalf("action points after 4 days = %d, want 2", s.ActionPoints)
	}

	advance(t, s, 20)
	if s.ActionPoints != s.cfg.ActionPointMax {
		t.Fatalf("action points = %d, want capped at %d", s.ActionPoints, s.cfg.ActionPointMax)
	}
}

func TestKPIHistoryWindow(t *testing.T) {
	s := newTestSim(t, 0.99)
	advance(t, s, 150)

	for k, h := range s.KPIs.History {
		if len(h) != s.cfg.HistoryWindow {
			t.Fatalf("history for %s = %d entries, want %d", k, len(h), s.cfg.HistoryWindow)
		}
	}
}

func TestDelayedEffectsFireOnce(t *testing.T) {
	s := newTestSim(t, 0.99)

	fired := 0
	s.scheduleDelayed(2, "first", func(*Simulation) { fired++ })
	s.scheduleDelayed(5, "second", func(*Simulation) { fired++ })

	s.Day = 1
	s.runDelayed()
	if fired != 0 {
		t.Fatalf("fired = %d before due day, want 0", fired)
	}

	s.Day = 2
	s.runDelayed()
	if fired != 1 {
		t.Fatalf("fired = %d on due day, want 1", fired)
	}
	s.runDelayed()
	if fired != 1 {
		t.Fatalf("fired = %d on repeat run, want 1 (single-shot)", fired)
	}

	s.Day = 9
	s.runDelayed()
	if fired != 2 {
		t.Fatalf("fired = %d after second due day, want 2", fired)
	}
	if len(s.pending) != 0 {
		t.Fatalf("pending = %d, want drained", len(s.pending))
	}
}

func TestAdvanceDayStopsAfterGameOver(t *testing.T) {
	s := newTestSim(t, 0.99)
	s.GameOver = GameOverState{Active: true, Day: s.Day, Reason: "fiscal collapse"}

	day := s.Day
	if s.AdvanceDay() {
		t.Fatal("AdvanceDay returned true after game over")
	}
	if s.Day != day {
		t.Fatalf("day advanced to %d after game over", s.Day)
	}
}

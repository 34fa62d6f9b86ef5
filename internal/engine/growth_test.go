package engine

import "testing"

// prosper pushes the composite inputs high enough to clear the big
// expansion threshold.
func prosper(s *Simulation) {
	s.KPIs.Values[KPIEconomy] = 90
	s.KPIs.Values[KPIClimate] = 80
	s.KPIs.Values[KPIStability] = 80
	s.Budget.Treasury = 100
	s.Budget.Debt = 40
	for _, d := range s.Demographics {
		d.Happiness = 80
	}
}

func TestGrowthExpandsOnProsperity(t *testing.T) {
	s := newTestSim(t)
	prosper(s)
	s.Day = 30

	s.updateGrowth()

	if s.Growth.Radius != 5 {
		t.Fatalf("radius = %d, want 3+2 on a big-threshold score (score %.1f)", s.Growth.Radius, s.Growth.Score)
	}
	if s.Growth.LastExpandDay != 30 {
		t.Fatalf("last expand day = %d, want 30", s.Growth.LastExpandDay)
	}
	if s.Growth.Population != 40+5*25 {
		t.Fatalf("population = %d, want %d", s.Growth.Population, 40+5*25)
	}
	if s.Growth.Vehicles != 5*6 {
		t.Fatalf("vehicles = %d, want %d", s.Growth.Vehicles, 5*6)
	}
}

func TestGrowthRespectsDayGap(t *testing.T) {
	s := newTestSim(t)
	prosper(s)
	s.Day = 30
	s.updateGrowth()

	// Immediately after expanding, another pass must wait out the gap.
	s.Day = 35
	s.updateGrowth()
	if s.Growth.Radius != 5 {
		t.Fatalf("radius = %d, want unchanged 5 inside the gap", s.Growth.Radius)
	}

	s.Day = 30 + s.cfg.GrowthFastGapDays
	s.updateGrowth()
	if s.Growth.Radius != 7 {
		t.Fatalf("radius = %d, want 7 after the gap elapses", s.Growth.Radius)
	}
}

func TestGrowthStallsOnWeakScore(t *testing.T) {
	s := newTestSim(t)
	s.Day = 100

	s.updateGrowth()
	if s.Growth.Radius != 3 {
		t.Fatalf("radius = %d, want stalled at 3 (score %.1f)", s.Growth.Radius, s.Growth.Score)
	}
}

func TestGrowthCappedAtMapRadius(t *testing.T) {
	s := newTestSim(t)
	prosper(s)
	s.Growth.Radius = s.Map.MaxRadius()
	s.Day = 100

	s.updateGrowth()
	if s.Growth.Radius != s.Map.MaxRadius() {
		t.Fatalf("radius = %d, want capped at %d", s.Growth.Radius, s.Map.MaxRadius())
	}
}

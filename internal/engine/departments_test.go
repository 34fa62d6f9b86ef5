package engine

import "testing"

func TestHealthStateThresholds(t *testing.T) {
	placed := func(budget float64, level int) *Department {
		return &Department{Placed: true, Budget: budget, Level: level}
	}

	cases := []struct {
		name string
		d    *Department
		kpi  float64
		want HealthState
	}{
		{"unplaced", &Department{Budget: 60, Level: 1}, 90, HealthUnbuilt},
		{"overloaded", placed(60, 1), 20, HealthOverloaded},
		{"strained", placed(60, 1), 40, HealthStrained},
		{"stable", placed(60, 1), 60, HealthStable},
		{"thriving", placed(60, 1), 80, HealthThriving},
		{"funding lifts", placed(120, 1), 40, HealthStable},  // 40 + 18
		{"levels lift", placed(60, 10), 58, HealthThriving},  // 58 + 18
		{"starved drags", placed(20, 1), 40, HealthOverloaded}, // 40 - 12
	}
	for _, c := range cases {
		if got := healthStateFor(c.d, c.kpi); got != c.want {
			t.Fatalf("%s: state = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestDepartmentRegistryMatchesKPIs(t *testing.T) {
	s := newTestSim(t)

	for _, k := range DomainKPIs {
		d, ok := s.Departments[string(k)]
		if !ok {
			t.Fatalf("no department for KPI %s", k)
		}
		if d.KPI != k || d.ID != string(k) {
			t.Fatalf("department %s mismatched: id=%s kpi=%s", k, d.ID, d.KPI)
		}
		if d.Budget != budgetBaseline || d.Level != 1 || d.Placed {
			t.Fatalf("department %s not at opening state: %+v", k, d)
		}
	}
}

func TestDepartmentForKPIFallsBackToPlaced(t *testing.T) {
	s := newTestSim(t)

	if d := s.departmentForKPI(KPIHealth); d != nil {
		t.Fatal("anchor found with nothing placed")
	}

	tile := findBuildable(t, s)
	if res := s.PlaceDepartment("safety", tile); !res.Applied {
		t.Fatalf("placement denied: %s", res.Reason)
	}

	// Health is unplaced, so the placed safety department anchors.
	d := s.departmentForKPI(KPIHealth)
	if d == nil || d.ID != "safety" {
		t.Fatalf("anchor = %+v, want the placed safety department", d)
	}
}

func TestPropagationPullsKPITowardFunding(t *testing.T) {
	s := newTestSim(t, 0.99)
	tile := findBuildable(t, s)
	if res := s.PlaceDepartment("education", tile); !res.Applied {
		t.Fatalf("placement denied: %s", res.Reason)
	}
	s.Departments["education"].Budget = 120

	start := s.KPIs.Get(KPIEducation)
	advance(t, s, 20)

	if s.KPIs.Get(KPIEducation) <= start {
		t.Fatalf("education KPI %.2f did not rise toward the funded target from %.2f", s.KPIs.Get(KPIEducation), start)
	}
}

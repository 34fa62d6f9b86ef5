package engine

import (
	"math"
	"testing"
)

func TestIncidentLifecycle(t *testing.T) {
	s := newTestSim(t, 0.99)

	in := s.SpawnIncidentForced(IncidentMedical, 2)
	if in == nil {
		t.Fatal("forced spawn returned nil")
	}
	if in.State != IncidentOpen || in.Severity != 2 {
		t.Fatalf("spawned state=%v severity=%d, want open severity 2", in.State, in.Severity)
	}
	if s.Counters.IncidentsSpawned != 1 {
		t.Fatalf("spawn counter = %d, want 1", s.Counters.IncidentsSpawned)
	}

	startHealth := s.KPIs.Get(KPIHealth)
	advance(t, s, 5)

	// Three days at severity 2, escalation on day 3, two more at 3:
	// 3*2*1.4 + 2*3*1.4 on the health KPI.
	wantDrop := 3*2*PerDayPenalty(IncidentMedical) + 2*3*PerDayPenalty(IncidentMedical)
	got := startHealth - s.KPIs.Get(KPIHealth)
	if math.Abs(got-wantDrop) > 1e-9 {
		t.Fatalf("health drop = %.3f, want %.3f", got, wantDrop)
	}
	if in.Severity != 3 {
		t.Fatalf("severity after 5 open days = %d, want 3 (escalated once)", in.Severity)
	}
	if in.DaysOpen != 5 {
		t.Fatalf("days open = %d, want 5", in.DaysOpen)
	}
}

func TestIncidentBreaksStreakExactlyOnce(t *testing.T) {
	s := newTestSim(t, 0.99)
	s.Rapid.Streak = 4

	s.SpawnIncidentForced(IncidentCrime, 1)
	advance(t, s, 4)

	if s.Rapid.Streak != 0 {
		t.Fatalf("streak = %d after 4 open days, want broken to 0", s.Rapid.Streak)
	}

	// Rebuilt streak must survive the same incident staying open.
	s.Rapid.Streak = 5
	advance(t, s, 2)
	if s.Rapid.Streak != 5 {
		t.Fatalf("streak = %d, want 5 (break applies once per incident)", s.Rapid.Streak)
	}
}

func TestDispatchEmergencyContainsAndResolves(t *testing.T) {
	s := newTestSim(t, 0.99)
	in := s.SpawnIncidentForced(IncidentFire, 3)

	ap := s.ActionPoints
	treasury := s.Budget.Treasury

	res := s.DispatchEmergency(in.ID)
	if !res.Applied {
		t.Fatalf("dispatch denied: %s", res.Reason)
	}
	if in.State != IncidentContained || !in.PlayerFunded {
		t.Fatalf("state=%v funded=%v, want contained player-funded", in.State, in.PlayerFunded)
	}
	if s.ActionPoints != ap-1 {
		t.Fatalf("action points = %d, want %d", s.ActionPoints, ap-1)
	}
	wantCost := 3 * s.cfg.DispatchCostPerSev
	if math.Abs((treasury-s.Budget.Treasury)-wantCost) > 1e-9 {
		t.Fatalf("treasury debit = %.2f, want %.2f", treasury-s.Budget.Treasury, wantCost)
	}

	// Second dispatch on a contained incident is a no-op denial.
	if res := s.DispatchEmergency(in.ID); res.Applied {
		t.Fatal("dispatch on contained incident applied")
	}

	// Burn the countdown through the real-time side channel.
	s.TickContainment(100)
	if s.IncidentByID(in.ID) != nil {
		t.Fatal("resolved incident still in active set")
	}
	if s.Counters.IncidentsResolvedFunded != 1 {
		t.Fatalf("funded resolution counter = %d, want 1", s.Counters.IncidentsResolvedFunded)
	}
	if s.Counters.IncidentsResolvedAuto != 0 {
		t.Fatalf("auto resolution counter = %d, want 0", s.Counters.IncidentsResolvedAuto)
	}
}

func TestResponderArrivedContainsUnfunded(t *testing.T) {
	s := newTestSim(t, 0.99)
	in := s.SpawnIncidentForced(IncidentFlood, 2)

	s.ResponderArrived(in.ID)
	if in.State != IncidentContained {
		t.Fatalf("state = %v, want contained", in.State)
	}
	if in.PlayerFunded {
		t.Fatal("responder containment flagged player-funded")
	}

	s.TickContainment(100)
	if s.Counters.IncidentsResolvedAuto != 1 {
		t.Fatalf("auto resolution counter = %d, want 1", s.Counters.IncidentsResolvedAuto)
	}
}

func TestTickContainmentIgnoresOpenIncidents(t *testing.T) {
	s := newTestSim(t, 0.99)
	in := s.SpawnIncidentForced(IncidentCorruption, 2)
	units := in.ResolveUnits

	s.TickContainment(50)
	if in.State != IncidentOpen {
		t.Fatalf("open incident state changed to %v", in.State)
	}
	if in.ResolveUnits != units {
		t.Fatalf("open incident countdown moved: %.1f -> %.1f", units, in.ResolveUnits)
	}
}

func TestResolutionPaysBackKPI(t *testing.T) {
	s := newTestSim(t, 0.99)
	in := s.SpawnIncidentForced(IncidentCrime, 2)
	s.containIncident(in, false)

	before := s.KPIs.Get(KPISafety)
	s.TickContainment(100)

	want := before + 2 + float64(in.Severity)
	if math.Abs(s.KPIs.Get(KPISafety)-want) > 1e-9 {
		t.Fatalf("safety after resolution = %.3f, want %.3f", s.KPIs.Get(KPISafety), want)
	}
}

func TestSpawnIncidentForcedValidation(t *testing.T) {
	s := newTestSim(t, 0.99)

	if in := s.SpawnIncidentForced("earthquake", 2); in != nil {
		t.Fatal("unknown incident type spawned")
	}

	in := s.SpawnIncidentForced(IncidentMedical, 99)
	if in.Severity != s.cfg.IncidentSeverityMax {
		t.Fatalf("severity = %d, want clamped to %d", in.Severity, s.cfg.IncidentSeverityMax)
	}
}

// Incident subsystem: short-lived stochastic problems anchored to
// departments, escalating until contained.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkello/civitas/internal/citymap"
)

// IncidentType is one of the fixed incident catalog entries.
type IncidentType string

const (
	IncidentCrime      IncidentType = "crime"
	IncidentMedical    IncidentType = "medical"
	IncidentFire       IncidentType = "fire"
	IncidentFlood      IncidentType = "flood"
	IncidentCorruption IncidentType = "corruption"
)

// incidentSpec maps a type to its KPI target, daily penalty rate, and
// preferred responder kind.
type incidentSpec struct {
	KPI       KPIKey
	PerDay    float64
	Responder string
}

var incidentCatalog = map[IncidentType]incidentSpec{
	IncidentCrime:      {KPI: KPISafety, PerDay: 1.2, Responder: "police"},
	IncidentMedical:    {KPI: KPIHealth, PerDay: 1.4, Responder: "ambulance"},
	IncidentFire:       {KPI: KPISafety, PerDay: 1.6, Responder: "fire"},
	IncidentFlood:      {KPI: KPIClimate, PerDay: 1.5, Responder: "fire"},
	IncidentCorruption: {KPI: KPIIntegrity, PerDay: 1.1, Responder: "inspector"},
}

// PerDayPenalty returns the catalog penalty rate for an incident type.
func PerDayPenalty(t IncidentType) float64 {
	return incidentCatalog[t].PerDay
}

// IncidentState is the lifecycle position of an incident.
type IncidentState int

const (
	IncidentOpen IncidentState = iota
	IncidentContained
	IncidentResolved
)

func (st IncidentState) String() string {
	switch st {
	case IncidentContained:
		return "contained"
	case IncidentResolved:
		return "resolved"
	default:
		return "open"
	}
}

// Incident is a localized problem. Lifecycle: open → contained →
// resolved (terminal, removed from the active set).
type Incident struct {
	ID           string        `json:"id"`
	Type         IncidentType  `json:"type"`
	Tile         citymap.Coord `json:"tile"`
	Severity     int           `json:"severity"` // 1..4
	DaysOpen     int           `json:"days_open"`
	State        IncidentState `json:"state"`
	ResolveUnits float64       `json:"resolve_units"` // countdown while contained
	Responder    string        `json:"responder"`
	PlayerFunded bool          `json:"player_funded"`

	streakBroken bool
}

// updateIncidents runs the per-tick incident pass: spawn roll, open
// penalties and escalation, contained countdowns, terminal removal.
func (s *Simulation) updateIncidents() {
	s.maybeSpawnIncident()

	keep := s.Incidents[:0]
	for _, in := range s.Incidents {
		switch in.State {
		case IncidentOpen:
			s.tickOpenIncident(in)
		case IncidentContained:
			s.tickContainedIncident(in)
		}
		if in.State != IncidentResolved {
			keep = append(keep, in)
		}
	}
	s.Incidents = keep
}

func (s *Simulation) tickOpenIncident(in *Incident) {
	in.DaysOpen++

	spec := incidentCatalog[in.Type]
	penalty := float64(in.Severity) * spec.PerDay
	s.KPIs.Add(spec.KPI, -penalty)
	s.KPIs.Add(KPIStability, -penalty*s.cfg.IncidentStabilityShare)

	// Escalate on the fixed boundary, capped.
	if in.DaysOpen%s.cfg.IncidentEscalateDays == 0 && in.Severity < s.cfg.IncidentSeverityMax {
		in.Severity++
		s.EmitEvent("incident", fmt.Sprintf("%s incident escalates to severity %d", in.Type, in.Severity))
	}

	// A long-running incident breaks the streak exactly once.
	if in.DaysOpen >= s.cfg.IncidentStreakDays && !in.streakBroken {
		in.streakBroken = true
		s.breakStreak(fmt.Sprintf("%s incident left open %d days", in.Type, in.DaysOpen))
	}

	// Responder crews work the scene: better-run departments contain
	// their incidents sooner.
	chance := s.cfg.IncidentAutoContain
	if d, ok := s.Departments[string(spec.KPI)]; ok && d.Placed {
		chance += float64(d.Level-1)*0.03 + (d.Budget-budgetBaseline)*0.002
	}
	if s.rng.Float() < chance {
		s.containIncident(in, false)
	}
}

// ResponderArrived is the render layer's signal that a visual responder
// actor reached the incident tile. Contains the incident, unfunded.
func (s *Simulation) ResponderArrived(incidentID string) {
	if s.GameOver.Active {
		return
	}
	if in := s.IncidentByID(incidentID); in != nil {
		s.containIncident(in, false)
	}
}

func (s *Simulation) tickContainedIncident(in *Incident) {
	s.KPIs.Add(KPIStability, -s.cfg.ContainedDrag)
	s.stepContainment(in, 1+s.Rapid.Momentum*1.5)
}

// stepContainment decrements the resolve countdown and resolves the
// incident when it reaches zero.
func (s *Simulation) stepContainment(in *Incident, units float64) {
	in.ResolveUnits -= units
	if in.ResolveUnits > 0 {
		return
	}

	in.State = IncidentResolved
	spec := incidentCatalog[in.Type]
	s.KPIs.Add(spec.KPI, 2+float64(in.Severity))
	s.KPIs.Add(KPIStability, 1.5)
	s.Budget.Treasury = clamp(s.Budget.Treasury+1, treasuryFloor, s.treasuryCeiling())

	if in.PlayerFunded {
		s.Counters.IncidentsResolvedFunded++
	} else {
		s.Counters.IncidentsResolvedAuto++
	}

	s.EmitEvent("incident", fmt.Sprintf("%s incident resolved (severity %d)", in.Type, in.Severity))
	slog.Info("incident resolved", "id", in.ID, "type", in.Type, "severity", in.Severity, "player_funded", in.PlayerFunded)
}

// TickContainment is the side channel for a real-time layer: it may
// decrement contained-incident countdowns between day ticks, but must
// not touch any other state.
func (s *Simulation) TickContainment(units float64) {
	if s.GameOver.Active || units <= 0 {
		return
	}
	keep := s.Incidents[:0]
	for _, in := range s.Incidents {
		if in.State == IncidentContained {
			s.stepContainment(in, units)
		}
		if in.State != IncidentResolved {
			keep = append(keep, in)
		}
	}
	s.Incidents = keep
}

// maybeSpawnIncident rolls for a new incident, gated by stability
// pressure and the current active count.
func (s *Simulation) maybeSpawnIncident() {
	if len(s.Incidents) >= s.cfg.IncidentMaxActive {
		return
	}
	p := s.cfg.IncidentSpawnBase + (100-s.KPIs.Get(KPIStability))*s.cfg.IncidentSpawnPressure
	p *= 1 - float64(len(s.Incidents))/float64(s.cfg.IncidentMaxActive+2)
	if s.rng.Float() >= p {
		return
	}
	s.spawnIncident(s.pickIncidentType(), 1+s.rng.Intn(3))
}

// pickIncidentType runs a cumulative-weight roll over the catalog.
// Under-funded and strained departments pull weight toward their domain.
func (s *Simulation) pickIncidentType() IncidentType {
	types := []IncidentType{IncidentCrime, IncidentMedical, IncidentFire, IncidentFlood, IncidentCorruption}

	weights := make([]float64, len(types))
	total := 0.0
	for i, t := range types {
		w := 4.0
		if d, ok := s.Departments[string(incidentCatalog[t].KPI)]; ok {
			if under := budgetBaseline - d.Budget; under > 0 {
				w += under * 0.15
			}
			switch d.Health {
			case HealthStrained:
				w += 3
			case HealthOverloaded, HealthUnbuilt:
				w += 5
			}
		}
		weights[i] = w
		total += w
	}

	roll := s.rng.Float() * total
	for i, w := range weights {
		roll -= w
		if roll <= 0 {
			return types[i]
		}
	}
	return types[len(types)-1]
}

// spawnIncident creates an incident anchored near the department that
// owns its target domain. Exported for tests and the admin surface via
// SpawnIncidentForced.
func (s *Simulation) spawnIncident(t IncidentType, severity int) *Incident {
	spec := incidentCatalog[t]

	anchor := s.Map.Center()
	if d := s.departmentForKPI(spec.KPI); d != nil {
		anchor = d.Tile
	} else {
		anchor = s.Map.RandomBuildable(s.Growth.Radius, s.rng)
	}

	in := &Incident{
		ID:           uuid.NewString(),
		Type:         t,
		Tile:         s.Map.JitterNear(anchor, 3, s.rng),
		Severity:     severity,
		State:        IncidentOpen,
		Responder:    spec.Responder,
		ResolveUnits: s.cfg.ResolveBaseUnits + float64(severity)*s.cfg.ResolvePerSeverity,
	}
	s.Incidents = append(s.Incidents, in)
	s.Counters.IncidentsSpawned++

	s.EmitEvent("incident", fmt.Sprintf("%s incident at (%d,%d), severity %d", t, in.Tile.X, in.Tile.Y, severity))
	slog.Info("incident spawned", "id", in.ID, "type", t, "severity", severity)
	return in
}

// SpawnIncidentForced injects an incident of the given type and
// severity, bypassing the spawn roll. Unknown types return nil.
func (s *Simulation) SpawnIncidentForced(t IncidentType, severity int) *Incident {
	if _, ok := incidentCatalog[t]; !ok || s.GameOver.Active {
		return nil
	}
	if severity < 1 {
		severity = 1
	}
	if severity > s.cfg.IncidentSeverityMax {
		severity = s.cfg.IncidentSeverityMax
	}
	return s.spawnIncident(t, severity)
}

// containIncident moves an open incident to contained and refreshes its
// resolve countdown from current severity.
func (s *Simulation) containIncident(in *Incident, playerFunded bool) {
	if in.State != IncidentOpen {
		return
	}
	in.State = IncidentContained
	in.PlayerFunded = playerFunded
	in.ResolveUnits = s.cfg.ResolveBaseUnits + float64(in.Severity)*s.cfg.ResolvePerSeverity

	s.EmitEvent("incident", fmt.Sprintf("%s incident contained (severity %d)", in.Type, in.Severity))
	slog.Info("incident contained", "id", in.ID, "type", in.Type, "player_funded", playerFunded)
}

// Simulation ties together all city subsystems and advances them one
// simulated day at a time.
package engine

import (
	"log/slog"

	"github.com/mkello/civitas/internal/citymap"
	"github.com/mkello/civitas/internal/config"
	"github.com/mkello/civitas/internal/content"
	"github.com/mkello/civitas/internal/entropy"
)

// Simulation holds the complete city state and wires subsystems together.
type Simulation struct {
	cfg config.Balance
	rng entropy.Source
	lib *content.Library

	Map *citymap.Map

	Day int // Simulated day counter (monotonic, starts at 0)

	KPIs         *KPIBoard
	Departments  map[string]*Department
	Budget       Budget
	ActionPoints int

	Incidents []*Incident
	Majors    []*MajorEvent

	Rapid        RapidState
	Demographics []*Demographic
	Ledger       []*Decision
	Ideology     IdeologyVector
	Growth       GrowthState
	GameOver     GameOverState

	Counters Counters

	Events      []Event // Recent engine events (bounded ring)
	TotalEvents int     // Monotonic count of all events ever emitted

	// Delayed single-shot effects keyed by trigger day.
	pending []delayedEffect

	// Major-event bookkeeping.
	recentTemplates []string
	majorReadyDay   int

	lastReportDay int
	ledgerSeq     int
	lastReportSeq int
	LastReport    *Report

	// OnReport is invoked after a periodic report is emitted, with the
	// ledger entries of its window. Optional.
	OnReport func(Report, []*Decision)
}

// Event is a notable occurrence in the city.
type Event struct {
	Day         int    `json:"day"`
	Category    string `json:"category"` // "incident", "major", "rapid", "growth", ...
	Description string `json:"description"`
}

const eventRingCap = 500

// Counters aggregates per-report-window activity. Reset after each report.
type Counters struct {
	IncidentsSpawned        int `json:"incidents_spawned"`
	IncidentsResolvedFunded int `json:"incidents_resolved_funded"`
	IncidentsResolvedAuto   int `json:"incidents_resolved_auto"`
	MajorsSpawned           int `json:"majors_spawned"`
	MajorsResolved          int `json:"majors_resolved"`
	MajorsMissed            int `json:"majors_missed"`
	RapidPlayer             int `json:"rapid_player"`
	RapidAuto               int `json:"rapid_auto"`
}

// NewSimulation creates a simulation at day 0 from the given balance,
// content library, and city map. A nil library uses built-in defaults.
func NewSimulation(cfg config.Balance, lib *content.Library, m *citymap.Map, rng entropy.Source) *Simulation {
	if lib == nil {
		lib = content.Defaults()
	}

	s := &Simulation{
		cfg:          cfg,
		rng:          rng,
		lib:          lib,
		Map:          m,
		KPIs:         newKPIBoard(lib.Baseline.KPIs),
		Departments:  newDepartments(),
		ActionPoints: cfg.StartActionPoints,
		Demographics: newDemographics(),
		Ideology:     IdeologyVector{Trust: 55},
		Growth:       GrowthState{Radius: 3},
		Rapid: RapidState{
			NextAtDay:   cfg.RapidIntervalDays,
			Credibility: CredibilityScore{Score: 50},
		},
	}

	debt := lib.Baseline.Debt
	if cfg.StartDebt >= 0 {
		debt = cfg.StartDebt
	}
	s.Budget = Budget{
		Debt:     clamp(debt, debtMin, debtMax),
		Treasury: cfg.StartTreasury,
	}
	s.Growth.Population, s.Growth.Vehicles = s.capacityFor(s.Growth.Radius)
	s.KPIs.recomputeStability()

	slog.Info("simulation created",
		"treasury", s.Budget.Treasury,
		"debt", s.Budget.Debt,
		"action_points", s.ActionPoints,
		"stability", s.KPIs.Get(KPIStability),
	)
	return s
}

// Year derives the display year from the day counter.
func (s *Simulation) Year() int {
	return s.Day / 360
}

// EmitEvent appends an event to the bounded ring.
func (s *Simulation) EmitEvent(category, description string) {
	s.Events = append(s.Events, Event{Day: s.Day, Category: category, Description: description})
	s.TotalEvents++
	if len(s.Events) > eventRingCap {
		s.Events = s.Events[len(s.Events)-eventRingCap:]
	}
}

// DepartmentByID returns the department with the given id, or nil.
func (s *Simulation) DepartmentByID(id string) *Department {
	return s.Departments[id]
}

// IncidentByID finds an active incident; nil if unknown.
func (s *Simulation) IncidentByID(id string) *Incident {
	for _, in := range s.Incidents {
		if in.ID == id {
			return in
		}
	}
	return nil
}

// MajorByID finds an active major event; nil if unknown.
func (s *Simulation) MajorByID(id string) *MajorEvent {
	for _, ev := range s.Majors {
		if ev.ID == id {
			return ev
		}
	}
	return nil
}

func (s *Simulation) avgDepartmentLevel() float64 {
	total := 0.0
	for _, d := range s.Departments {
		total += float64(d.Level)
	}
	return total / float64(len(s.Departments))
}

func (s *Simulation) avgDepartmentBudget() float64 {
	total := 0.0
	for _, d := range s.Departments {
		total += d.Budget
	}
	return total / float64(len(s.Departments))
}

func (s *Simulation) meanHappiness() float64 {
	total := 0.0
	for _, d := range s.Demographics {
		total += d.Happiness
	}
	return total / float64(len(s.Demographics))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

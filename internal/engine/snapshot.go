// Read-only state snapshot for renderers, HUDs, and the HTTP API.
package engine

// Snapshot is a copy of the externally visible simulation state.
// Consumers must treat it as read-only; mutation goes through commands.
type Snapshot struct {
	Day          int     `json:"day"`
	Year         int     `json:"year"`
	ActionPoints int     `json:"action_points"`
	ActionMax    int     `json:"action_max"`
	Budget       Budget  `json:"budget"`

	KPIs         map[KPIKey]float64   `json:"kpis"`
	KPIHistory   map[KPIKey][]float64 `json:"kpi_history"`
	Departments  []Department         `json:"departments"`
	Incidents    []Incident           `json:"incidents"`
	Majors       []MajorEvent         `json:"majors"`
	Demographics []DemographicView    `json:"demographics"`

	Rapid    RapidState     `json:"rapid"`
	Ideology IdeologyVector `json:"ideology"`
	Growth   GrowthState    `json:"growth"`
	GameOver GameOverState  `json:"game_over"`

	LastReport *Report `json:"last_report,omitempty"`
}

// DemographicView adds the derived qualitative note to a segment.
type DemographicView struct {
	Key       string  `json:"key"`
	Happiness float64 `json:"happiness"`
	Trend     float64 `json:"trend"`
	Note      string  `json:"note"`
}

// Snapshot builds a deep-enough copy of the visible state: slices and
// maps are duplicated so a consumer cannot reach back into the engine.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Day:          s.Day,
		Year:         s.Year(),
		ActionPoints: s.ActionPoints,
		ActionMax:    s.cfg.ActionPointMax,
		Budget:       s.Budget,
		Ideology:     s.Ideology,
		Growth:       s.Growth,
		GameOver:     s.GameOver,
		LastReport:   s.LastReport,
	}

	snap.KPIs = make(map[KPIKey]float64, len(s.KPIs.Values))
	for k, v := range s.KPIs.Values {
		snap.KPIs[k] = v
	}
	snap.KPIHistory = make(map[KPIKey][]float64, len(s.KPIs.History))
	for k, h := range s.KPIs.History {
		snap.KPIHistory[k] = append([]float64(nil), h...)
	}

	for _, k := range DomainKPIs {
		snap.Departments = append(snap.Departments, *s.Departments[string(k)])
	}
	for _, in := range s.Incidents {
		snap.Incidents = append(snap.Incidents, *in)
	}
	for _, ev := range s.Majors {
		snap.Majors = append(snap.Majors, *ev)
	}
	for _, d := range s.Demographics {
		snap.Demographics = append(snap.Demographics, DemographicView{
			Key:       d.Key,
			Happiness: d.Happiness,
			Trend:     d.Trend,
			Note:      d.Note(),
		})
	}

	snap.Rapid = s.Rapid
	if d := s.Rapid.Active; d != nil {
		active := *d
		active.Options = make([]RapidOption, len(d.Options))
		for i, o := range d.Options {
			if len(o.Demo) > 0 {
				demo := make(map[string]float64, len(o.Demo))
				for k, v := range o.Demo {
					demo[k] = v
				}
				o.Demo = demo
			}
			if len(o.KPI) > 0 {
				kpi := make(map[KPIKey]float64, len(o.KPI))
				for k, v := range o.KPI {
					kpi[k] = v
				}
				o.KPI = kpi
			}
			if o.Truth != nil {
				truth := *o.Truth
				o.Truth = &truth
			}
			active.Options[i] = o
		}
		snap.Rapid.Active = &active
	}

	return snap
}

// RecentEvents returns up to limit of the newest engine events.
func (s *Simulation) RecentEvents(limit int) []Event {
	if limit <= 0 || limit > len(s.Events) {
		limit = len(s.Events)
	}
	out := make([]Event, limit)
	copy(out, s.Events[len(s.Events)-limit:])
	return out
}

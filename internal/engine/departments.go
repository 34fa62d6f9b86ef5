// Department registry: the fixed set of government units whose funding
// and staffing drive the KPIs.
package engine

import "github.com/mkello/civitas/internal/citymap"

// Budget bounds and baseline shared across the engine.
const (
	budgetMin      = 20.0
	budgetMax      = 120.0
	budgetBaseline = 60.0
	levelMax       = 10
)

// HealthState classifies a department's operating condition. It is a
// pure function of KPI value, level, and budget deviation.
type HealthState int

const (
	HealthUnbuilt HealthState = iota
	HealthOverloaded
	HealthStrained
	HealthStable
	HealthThriving
)

func (h HealthState) String() string {
	switch h {
	case HealthOverloaded:
		return "overloaded"
	case HealthStrained:
		return "strained"
	case HealthStable:
		return "stable"
	case HealthThriving:
		return "thriving"
	default:
		return "unbuilt"
	}
}

// Department is one government unit. Created unplaced; placement is a
// one-time transition. Never destroyed.
type Department struct {
	ID     string       `json:"id"`
	KPI    KPIKey       `json:"kpi"`
	Budget float64      `json:"budget"` // [20,120], baseline 60
	Level  int          `json:"level"`  // 1..10
	Placed bool         `json:"placed"`
	Tile   citymap.Coord `json:"tile"`
	Health HealthState  `json:"health"`
}

// newDepartments builds the fixed registry: one department per domain
// KPI, identified by the KPI it drives.
func newDepartments() map[string]*Department {
	out := make(map[string]*Department, len(DomainKPIs))
	for _, k := range DomainKPIs {
		out[string(k)] = &Department{
			ID:     string(k),
			KPI:    k,
			Budget: budgetBaseline,
			Level:  1,
			Health: HealthUnbuilt,
		}
	}
	return out
}

// healthStateFor derives the operating condition from the department's
// KPI value, level, and budget deviation from baseline.
func healthStateFor(d *Department, kpi float64) HealthState {
	if !d.Placed {
		return HealthUnbuilt
	}
	// Funding deviation shifts the effective score; levels add headroom.
	score := kpi + (d.Budget-budgetBaseline)*0.3 + float64(d.Level-1)*2
	switch {
	case score < 30:
		return HealthOverloaded
	case score < 50:
		return HealthStrained
	case score > 75:
		return HealthThriving
	default:
		return HealthStable
	}
}

// recomputeDepartmentHealth refreshes every department's health state.
func (s *Simulation) recomputeDepartmentHealth() {
	for _, d := range s.Departments {
		d.Health = healthStateFor(d, s.KPIs.Get(d.KPI))
	}
}

// departmentForKPI returns the department driving the given KPI, or any
// placed department as a fallback anchor.
func (s *Simulation) departmentForKPI(k KPIKey) *Department {
	if d, ok := s.Departments[string(k)]; ok && d.Placed {
		return d
	}
	for _, d := range s.Departments {
		if d.Placed {
			return d
		}
	}
	return nil
}

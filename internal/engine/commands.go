// Player command surface. Commands arrive between ticks and apply
// atomically: either resources are debited and effects land, or nothing
// changes. Constraint violations are denial results, never errors.
package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mkello/civitas/internal/citymap"
	"github.com/mkello/civitas/internal/content"
)

// CommandResult reports whether a command applied, with a reason when
// it was denied.
type CommandResult struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

func deny(reason string) CommandResult { return CommandResult{Reason: reason} }

var applied = CommandResult{Applied: true}

// spendActionPoints debits the pool, refusing to go negative.
func (s *Simulation) spendActionPoints(n int) bool {
	if s.ActionPoints < n {
		return false
	}
	s.ActionPoints -= n
	return true
}

// refundActionPoints restores points after a partially-debited command
// rolls back.
func (s *Simulation) refundActionPoints(n int) {
	s.ActionPoints += n
	if s.ActionPoints > s.cfg.ActionPointMax {
		s.ActionPoints = s.cfg.ActionPointMax
	}
}

// PlaceDepartment marks a department placed on the given tile, a
// one-time transition. The site quality nudges its KPI.
func (s *Simulation) PlaceDepartment(id string, tile citymap.Coord) CommandResult {
	if s.GameOver.Active {
		return deny("game over")
	}
	d := s.Departments[id]
	if d == nil {
		return deny("unknown department")
	}
	if d.Placed {
		return deny("already placed")
	}
	if !s.Map.Occupy(tile, s.Growth.Radius) {
		return deny("tile not buildable")
	}

	d.Placed = true
	d.Tile = tile
	siteScore := s.Map.SiteScore(tile)
	s.KPIs.Add(d.KPI, siteScore)
	d.Health = healthStateFor(d, s.KPIs.Get(d.KPI))

	s.logDecision(decisionInput{
		Title:    fmt.Sprintf("Established the %s department", id),
		Category: id,
		Choice:   fmt.Sprintf("site (%d,%d)", tile.X, tile.Y),
		KPI:      map[KPIKey]float64{d.KPI: siteScore},
	})
	s.EmitEvent("department", fmt.Sprintf("%s department established at (%d,%d)", id, tile.X, tile.Y))
	slog.Info("department placed", "id", id, "tile_x", tile.X, "tile_y", tile.Y, "site_score", siteScore)
	return applied
}

// SetDepartmentBudget moves a department's budget toward the target,
// scaled by the pacing constant. Costs one action point. Requests below
// the minimum delta are a no-op with nothing debited.
func (s *Simulation) SetDepartmentBudget(id string, target float64) CommandResult {
	if s.GameOver.Active {
		return deny("game over")
	}
	d := s.Departments[id]
	if d == nil {
		return deny("unknown department")
	}

	target = clamp(target, budgetMin, budgetMax)
	delta := target - d.Budget
	if math.Abs(delta) < s.cfg.BudgetMinDelta {
		return deny("adjustment below minimum")
	}
	if !s.spendActionPoints(1) {
		return deny("insufficient action points")
	}

	d.Budget = clamp(d.Budget+delta*s.cfg.BudgetPace, budgetMin, budgetMax)

	s.logDecision(decisionInput{
		Title:    fmt.Sprintf("Adjusted %s funding", id),
		Category: id,
		Choice:   fmt.Sprintf("toward %.0f", target),
	})
	slog.Info("department budget set", "id", id, "budget", d.Budget, "target", target)
	return applied
}

// UpgradeDepartment raises a department one level for action points and
// treasury, with the KPI payoff landing after a fixed delay. Action
// points are refunded when the treasury cannot cover the cost.
func (s *Simulation) UpgradeDepartment(id string) CommandResult {
	if s.GameOver.Active {
		return deny("game over")
	}
	d := s.Departments[id]
	if d == nil {
		return deny("unknown department")
	}
	if d.Level >= levelMax {
		return deny("already at maximum level")
	}
	if !s.spendActionPoints(2) {
		return deny("insufficient action points")
	}

	cost := s.cfg.UpgradeBaseCost + float64(d.Level)*s.cfg.UpgradePerLevel
	if !s.spendTreasury(cost) {
		s.refundActionPoints(2)
		return deny("insufficient treasury")
	}

	d.Level++
	kpi := d.KPI
	payoff := s.cfg.UpgradePayoff
	s.scheduleDelayed(s.Day+s.cfg.UpgradePayoffDays,
		fmt.Sprintf("%s upgrade comes online", id),
		func(sim *Simulation) { sim.KPIs.Add(kpi, payoff) },
	)

	s.logDecision(decisionInput{
		Title:    fmt.Sprintf("Upgraded the %s department to level %d", id, d.Level),
		Category: id,
		Choice:   fmt.Sprintf("spent %.0f", cost),
		Treasury: -cost,
	})
	slog.Info("department upgraded", "id", id, "level", d.Level, "cost", cost)
	return applied
}

// ResolveRapidDecision applies the chosen option of the active prompt.
// Ignored when no decision is active.
func (s *Simulation) ResolveRapidDecision(optionKey string) CommandResult {
	if s.GameOver.Active {
		return deny("game over")
	}
	if s.Rapid.Active == nil {
		return deny("no active decision")
	}
	if !s.resolveActiveRapid(optionKey) {
		return deny("unknown option")
	}
	return applied
}

// FundMajorEvent pays the event's declared response cost and resolves
// it. Action points are refunded when the treasury falls short.
func (s *Simulation) FundMajorEvent(id string) CommandResult {
	if s.GameOver.Active {
		return deny("game over")
	}
	ev := s.MajorByID(id)
	if ev == nil {
		return deny("unknown event")
	}

	resp := ev.Template.Response
	if !s.spendActionPoints(resp.ActionPoints) {
		return deny("insufficient action points")
	}
	if !s.spendTreasury(resp.Treasury) {
		s.refundActionPoints(resp.ActionPoints)
		return deny("insufficient treasury")
	}

	s.resolveMajor(ev)

	kpi := make(map[KPIKey]float64, len(resp.KPI))
	for k, v := range resp.KPI {
		kpi[KPIKey(k)] = v
	}
	s.logDecision(decisionInput{
		Title:    "Responded to crisis: " + ev.Template.Title,
		Category: string(ev.Domain),
		Choice:   resp.Label,
		Demo:     resp.Demo,
		KPI:      kpi,
		Treasury: -resp.Treasury,
		Trust:    resp.Trust,
	})
	return applied
}

// DeferMajorEvent postpones the event's focus card. The underlying
// per-day decay continues regardless.
func (s *Simulation) DeferMajorEvent(id string) CommandResult {
	if s.GameOver.Active {
		return deny("game over")
	}
	ev := s.MajorByID(id)
	if ev == nil {
		return deny("unknown event")
	}
	ev.SnoozeUntilDay = s.Day + 3
	return applied
}

// DispatchEmergency pays to contain an open incident immediately,
// flagging it player-funded for reporting attribution.
func (s *Simulation) DispatchEmergency(incidentID string) CommandResult {
	if s.GameOver.Active {
		return deny("game over")
	}
	in := s.IncidentByID(incidentID)
	if in == nil {
		return deny("unknown incident")
	}
	if in.State != IncidentOpen {
		return deny("incident already contained")
	}
	if !s.spendActionPoints(1) {
		return deny("insufficient action points")
	}

	cost := float64(in.Severity) * s.cfg.DispatchCostPerSev
	if !s.spendTreasury(cost) {
		s.refundActionPoints(1)
		return deny("insufficient treasury")
	}

	s.containIncident(in, true)

	spec := incidentCatalog[in.Type]
	s.logDecision(decisionInput{
		Title:    fmt.Sprintf("Emergency dispatch: %s incident", in.Type),
		Category: string(spec.KPI),
		Choice:   fmt.Sprintf("severity %d, spent %.0f", in.Severity, cost),
		Treasury: -cost,
	})
	return applied
}

// Initiative is an ad hoc policy action with direct effects.
type Initiative struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Category     string             `json:"category"`
	ActionPoints int                `json:"action_points"`
	Treasury     float64            `json:"treasury"`
	KPI          map[KPIKey]float64 `json:"kpi"`
	Demo         map[string]float64 `json:"demo"`
	Trust        float64            `json:"trust"`
	Axes         [4]float64         `json:"axes"`
}

// InitiativeCatalog is the fixed set of launchable policy actions.
var InitiativeCatalog = map[string]Initiative{
	"free_clinics": {
		ID: "free_clinics", Title: "Pop-up free clinics", Category: "health",
		ActionPoints: 1, Treasury: 12,
		KPI:  map[KPIKey]float64{KPIHealth: 3},
		Demo: map[string]float64{content.SegPoverty: 4, content.SegWorking: 2},
		Axes: [4]float64{3, 0, 0, 0},
	},
	"school_meals": {
		ID: "school_meals", Title: "Universal school meals", Category: "education",
		ActionPoints: 1, Treasury: 14,
		KPI:  map[KPIKey]float64{KPIEducation: 3},
		Demo: map[string]float64{content.SegPoverty: 3, content.SegWorking: 3, content.SegMiddle: 1},
		Axes: [4]float64{3, 0, 0, 0},
	},
	"night_patrols": {
		ID: "night_patrols", Title: "Night patrol expansion", Category: "safety",
		ActionPoints: 1, Treasury: 10,
		KPI:  map[KPIKey]float64{KPISafety: 3},
		Demo: map[string]float64{content.SegBusiness: 3, content.SegMiddle: 2, content.SegPoverty: -1},
		Axes: [4]float64{0, 3, 0, 0},
	},
	"tree_planting": {
		ID: "tree_planting", Title: "Ten-thousand-trees drive", Category: "climate",
		ActionPoints: 1, Treasury: 8,
		KPI:  map[KPIKey]float64{KPIClimate: 3},
		Demo: map[string]float64{content.SegMiddle: 2, content.SegElite: 2},
		Axes: [4]float64{0, 0, 4, 0},
	},
	"open_data": {
		ID: "open_data", Title: "Open-books data portal", Category: "integrity",
		ActionPoints: 1, Treasury: 9,
		KPI:   map[KPIKey]float64{KPIIntegrity: 3},
		Demo:  map[string]float64{content.SegMiddle: 3},
		Trust: 3,
		Axes:  [4]float64{0, 0, 0, 5},
	},
	"biz_grants": {
		ID: "biz_grants", Title: "Small business grants", Category: "economy",
		ActionPoints: 1, Treasury: 16,
		KPI:  map[KPIKey]float64{KPIEconomy: 3},
		Demo: map[string]float64{content.SegBusiness: 4, content.SegWorking: 2},
		Axes: [4]float64{-3, 0, 0, 0},
	},
}

// LaunchInitiative runs a catalog policy action, gated by action points
// and treasury like any other command.
func (s *Simulation) LaunchInitiative(id string) CommandResult {
	if s.GameOver.Active {
		return deny("game over")
	}
	ini, ok := InitiativeCatalog[id]
	if !ok {
		return deny("unknown initiative")
	}
	if !s.spendActionPoints(ini.ActionPoints) {
		return deny("insufficient action points")
	}
	if !s.spendTreasury(ini.Treasury) {
		s.refundActionPoints(ini.ActionPoints)
		return deny("insufficient treasury")
	}

	for k, v := range ini.KPI {
		s.KPIs.Add(k, v)
	}
	for seg, v := range ini.Demo {
		s.nudgeSegment(seg, v)
	}

	s.logDecision(decisionInput{
		Title:    ini.Title,
		Category: ini.Category,
		Choice:   "launched",
		Demo:     ini.Demo,
		KPI:      ini.KPI,
		Treasury: -ini.Treasury,
		Trust:    ini.Trust,
		Axes:     ini.Axes,
	})
	s.EmitEvent("initiative", "launched: "+ini.Title)
	slog.Info("initiative launched", "id", id, "cost", ini.Treasury)
	return applied
}

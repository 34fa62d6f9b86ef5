// Major event subsystem: longer-lived, template-driven crises with
// per-day decay and a single funded mitigation.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkello/civitas/internal/citymap"
	"github.com/mkello/civitas/internal/content"
)

// MajorEvent is an active crisis. Lifecycle: spawned → per-day damage →
// resolved (player funds the response) or expired (punitive multiplier,
// streak break).
type MajorEvent struct {
	ID             string                 `json:"id"`
	Template       content.CrisisTemplate `json:"template"`
	Domain         KPIKey                 `json:"domain"`
	Tile           citymap.Coord          `json:"tile"`
	StartedDay     int                    `json:"started_day"`
	ExpiresDay     int                    `json:"expires_day"`
	SnoozeUntilDay int                    `json:"snooze_until_day"`
}

// updateMajorEvents applies per-day decay, expires overdue events, and
// rolls for a new spawn.
func (s *Simulation) updateMajorEvents() {
	keep := s.Majors[:0]
	for _, ev := range s.Majors {
		if s.Day >= ev.ExpiresDay {
			s.expireMajor(ev)
			continue
		}
		s.applyMajorDecay(ev, 1)
		keep = append(keep, ev)
	}
	s.Majors = keep

	s.maybeSpawnMajor()
}

// applyMajorDecay applies the template's per-day deltas, scaled.
func (s *Simulation) applyMajorDecay(ev *MajorEvent, scale float64) {
	for k, v := range ev.Template.PerDayKPI {
		s.KPIs.Add(KPIKey(k), v*scale)
	}
	for seg, v := range ev.Template.PerDayDemo {
		s.nudgeSegment(seg, v*scale)
	}
}

// expireMajor applies the per-day delta once more at the punitive
// multiplier, increments the missed counter, and breaks the streak.
func (s *Simulation) expireMajor(ev *MajorEvent) {
	s.applyMajorDecay(ev, s.cfg.MajorExpiryMultiplier)
	s.Counters.MajorsMissed++
	s.breakStreak(fmt.Sprintf("crisis %q expired unresolved", ev.Template.Title))

	s.EmitEvent("major", fmt.Sprintf("crisis expired unresolved: %s", ev.Template.Title))
	slog.Warn("major event expired", "id", ev.ID, "template", ev.Template.ID, "days_active", s.Day-ev.StartedDay)
}

// maybeSpawnMajor rolls for a new crisis, gated by the concurrency cap
// and a cooldown day; probability scales with instability and mean
// demographic unhappiness.
func (s *Simulation) maybeSpawnMajor() {
	if len(s.Majors) >= s.cfg.MajorMaxActive || s.Day < s.majorReadyDay {
		return
	}
	if len(s.lib.Crises) == 0 {
		return
	}

	p := s.cfg.MajorSpawnBase +
		(100-s.KPIs.Get(KPIStability))*s.cfg.MajorSpawnPressure +
		(100-s.meanHappiness())*s.cfg.MajorSpawnUnrest
	if s.rng.Float() >= p {
		return
	}

	tpl := s.pickCrisisTemplate()
	s.spawnMajor(tpl)
	s.majorReadyDay = s.Day + s.cfg.MajorCooldownDays
}

// pickCrisisTemplate excludes recently-used templates inside the memory
// window, falling back to the full library when everything is recent.
func (s *Simulation) pickCrisisTemplate() content.CrisisTemplate {
	recent := make(map[string]bool, len(s.recentTemplates))
	for _, id := range s.recentTemplates {
		recent[id] = true
	}

	var pool []content.CrisisTemplate
	for _, tpl := range s.lib.Crises {
		if !recent[tpl.ID] {
			pool = append(pool, tpl)
		}
	}
	if len(pool) == 0 {
		pool = s.lib.Crises
	}
	return pool[s.rng.Intn(len(pool))]
}

// spawnMajor activates a crisis from the given template.
func (s *Simulation) spawnMajor(tpl content.CrisisTemplate) *MajorEvent {
	anchor := s.Map.Center()
	if d := s.departmentForKPI(KPIKey(tpl.Domain)); d != nil {
		anchor = d.Tile
	}

	ev := &MajorEvent{
		ID:         uuid.NewString(),
		Template:   tpl,
		Domain:     KPIKey(tpl.Domain),
		Tile:       s.Map.JitterNear(anchor, 4, s.rng),
		StartedDay: s.Day,
		ExpiresDay: s.Day + tpl.Days,
	}
	s.Majors = append(s.Majors, ev)
	s.Counters.MajorsSpawned++

	s.recentTemplates = append(s.recentTemplates, tpl.ID)
	if len(s.recentTemplates) > s.cfg.MajorTemplateMemory {
		s.recentTemplates = s.recentTemplates[len(s.recentTemplates)-s.cfg.MajorTemplateMemory:]
	}

	s.EmitEvent("major", fmt.Sprintf("crisis unfolds: %s", tpl.Title))
	slog.Info("major event spawned", "id", ev.ID, "template", tpl.ID, "expires_day", ev.ExpiresDay)
	return ev
}

// SpawnMajorForced activates the template with the given id, bypassing
// the spawn roll and cooldown but honoring the concurrency cap.
// Returns nil if the template is unknown or the cap is reached.
func (s *Simulation) SpawnMajorForced(templateID string) *MajorEvent {
	if s.GameOver.Active || len(s.Majors) >= s.cfg.MajorMaxActive {
		return nil
	}
	for _, tpl := range s.lib.Crises {
		if tpl.ID == templateID {
			return s.spawnMajor(tpl)
		}
	}
	return nil
}

// resolveMajor applies the funded response payoff and removes the event.
func (s *Simulation) resolveMajor(ev *MajorEvent) {
	for k, v := range ev.Template.Response.KPI {
		s.KPIs.Add(KPIKey(k), v)
	}
	for seg, v := range ev.Template.Response.Demo {
		s.nudgeSegment(seg, v)
	}

	keep := s.Majors[:0]
	for _, other := range s.Majors {
		if other.ID != ev.ID {
			keep = append(keep, other)
		}
	}
	s.Majors = keep
	s.Counters.MajorsResolved++

	s.EmitEvent("major", fmt.Sprintf("crisis resolved: %s (%s)", ev.Template.Title, ev.Template.Response.Label))
	slog.Info("major event resolved", "id", ev.ID, "template", ev.Template.ID)
}

// Rapid decision subsystem: periodic timed forced choices with a
// default applied on timeout, plus the credibility and momentum
// counters they feed.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/mkello/civitas/internal/content"
)

// RapidKind distinguishes scripted prompts from content-driven ones.
type RapidKind int

const (
	RapidScripted RapidKind = iota
	RapidScenario
)

// RapidOption is one labeled choice with its attached effects.
type RapidOption struct {
	Key      string             `json:"key"`
	Label    string             `json:"label"`
	Demo     map[string]float64 `json:"demo"`
	KPI      map[KPIKey]float64 `json:"kpi"`
	Treasury float64            `json:"treasury"`
	Truth    *float64           `json:"truth,omitempty"` // scenario mode only
	Axes     [4]float64         `json:"axes"`
	Trust    float64            `json:"trust"`
}

// RapidDecision occupies the single active slot.
type RapidDecision struct {
	ID         string        `json:"id"`
	Kind       RapidKind     `json:"kind"`
	Title      string        `json:"title"`
	Body       string        `json:"body"`
	Category   string        `json:"category"`
	Options    []RapidOption `json:"options"`
	DefaultKey string        `json:"default_key"`
	ExpiresDay int           `json:"expires_day"`
}

// CredibilityScore tracks how well the player reads contested claims.
type CredibilityScore struct {
	Wins    int     `json:"wins"`
	Misses  int     `json:"misses"`
	Neutral int     `json:"neutral"`
	Streak  int     `json:"streak"`
	Score   float64 `json:"score"` // 0..100
}

// RapidState is the rapid-decision slot plus its derived counters.
// Momentum and Streak are deliberately independent: momentum only
// accelerates contained-incident countdowns, streak only drives bonus
// payouts and the treasury ceiling.
type RapidState struct {
	Active      *RapidDecision   `json:"active,omitempty"`
	NextAtDay   int              `json:"next_at_day"`
	Momentum    float64          `json:"momentum"` // 0..1
	Streak      int              `json:"streak"`
	BestStreak  int              `json:"best_streak"`
	Credibility CredibilityScore `json:"credibility"`
}

// checkRapid resolves a crossed deadline, then triggers a new prompt if
// the schedule is due. A crossed deadline always produces exactly one
// resolution.
func (s *Simulation) checkRapid() {
	if d := s.Rapid.Active; d != nil && s.Day >= d.ExpiresDay {
		if opt := d.defaultOption(); opt != nil {
			s.applyRapidOption(d, opt, true)
		} else {
			// A decision with no options cannot resolve; discard it.
			slog.Warn("discarding unresolvable decision", "id", d.ID)
			s.Rapid.Active = nil
		}
	}
	if s.Rapid.Active == nil && s.Day >= s.Rapid.NextAtDay {
		s.triggerRapid()
	}
}

// triggerRapid fills the slot, preferring scenario content when the
// library has any, else the scripted catalog.
func (s *Simulation) triggerRapid() {
	var d *RapidDecision
	if len(s.lib.Scenarios) > 0 && s.rng.Float() < s.cfg.RapidScenarioBias {
		if len(s.lib.TruthChecks) > 0 && s.rng.Float() < 0.35 {
			d = s.truthCheckDecision(s.lib.TruthChecks[s.rng.Intn(len(s.lib.TruthChecks))])
		} else {
			d = scenarioDecision(s.lib.Scenarios[s.rng.Intn(len(s.lib.Scenarios))])
		}
	}
	// Option-less scenario content cannot resolve; use the catalog.
	if d == nil || len(d.Options) == 0 {
		d = scriptedCatalog[s.rng.Intn(len(scriptedCatalog))]
	}

	dd := *d
	dd.ExpiresDay = s.Day + s.cfg.RapidWindowDays
	s.Rapid.Active = &dd
	s.Rapid.NextAtDay = s.Day + s.cfg.RapidIntervalDays

	s.EmitEvent("rapid", fmt.Sprintf("decision required: %s", dd.Title))
	slog.Info("rapid decision triggered", "id", dd.ID, "title", dd.Title, "expires_day", dd.ExpiresDay)
}

// resolveActiveRapid applies the chosen option. Returns false when no
// decision is active or the key is unknown.
func (s *Simulation) resolveActiveRapid(optionKey string) bool {
	d := s.Rapid.Active
	if d == nil {
		return false
	}
	opt := d.optionByKey(optionKey)
	if opt == nil {
		return false
	}
	s.applyRapidOption(d, opt, false)
	return true
}

// applyRapidOption commits the option's effects, updates credibility /
// momentum / streak, logs the decision, and clears the slot.
func (s *Simulation) applyRapidOption(d *RapidDecision, opt *RapidOption, auto bool) {
	for seg, v := range opt.Demo {
		s.nudgeSegment(seg, v)
	}
	for k, v := range opt.KPI {
		s.KPIs.Add(k, v)
	}
	s.Budget.Treasury = clamp(s.Budget.Treasury+opt.Treasury, treasuryFloor, s.treasuryCeiling())

	if opt.Truth != nil {
		s.scoreCredibility(*opt.Truth)
	}

	if auto {
		s.Counters.RapidAuto++
		s.breakStreak("decision timed out")
	} else {
		s.Counters.RapidPlayer++
		s.Rapid.Streak++
		if s.Rapid.Streak > s.Rapid.BestStreak {
			s.Rapid.BestStreak = s.Rapid.Streak
		}
		s.Rapid.Momentum = clamp(s.Rapid.Momentum+s.cfg.MomentumGain, 0, 1)
	}

	s.logDecision(decisionInput{
		Title:    d.Title,
		Category: d.Category,
		Choice:   opt.Label,
		Demo:     opt.Demo,
		KPI:      opt.KPI,
		Treasury: opt.Treasury,
		Trust:    opt.Trust,
		Axes:     opt.Axes,
		Truth:    opt.Truth,
	})

	mode := "resolved"
	if auto {
		mode = "auto-resolved"
	}
	s.EmitEvent("rapid", fmt.Sprintf("decision %s: %s — %s", mode, d.Title, opt.Label))
	slog.Info("rapid decision "+mode, "id", d.ID, "option", opt.Key)

	s.Rapid.Active = nil
}

// scoreCredibility folds one truth-quality signal into the score:
// win ratio and streak bonus, minus a total-plays penalty.
func (s *Simulation) scoreCredibility(quality float64) {
	c := &s.Rapid.Credibility
	switch {
	case quality > 0:
		c.Wins++
		c.Streak++
	case quality < 0:
		c.Misses++
		c.Streak = 0
	default:
		c.Neutral++
	}
	plays := c.Wins + c.Misses + c.Neutral
	ratio := 0.0
	if plays > 0 {
		ratio = float64(c.Wins) / float64(plays)
	}
	c.Score = clamp(50+45*ratio+2*float64(c.Streak)-0.3*float64(plays), 0, 100)
}

// breakStreak zeroes the rapid streak. Momentum is untouched; it only
// decays on its own schedule.
func (s *Simulation) breakStreak(reason string) {
	if s.Rapid.Streak == 0 {
		return
	}
	slog.Info("streak broken", "streak", s.Rapid.Streak, "reason", reason)
	s.Rapid.Streak = 0
}

// decayMomentum applies the per-day momentum decay.
func (s *Simulation) decayMomentum() {
	s.Rapid.Momentum *= s.cfg.MomentumDecay
	if s.Rapid.Momentum < 0.01 {
		s.Rapid.Momentum = 0
	}
}

// checkStreakRewards pays small treasury bonuses at streak milestones.
func (s *Simulation) checkStreakRewards() {
	switch s.Rapid.Streak {
	case 3, 5, 8:
		bonus := float64(s.Rapid.Streak) * 2
		s.Budget.Treasury = clamp(s.Budget.Treasury+bonus, treasuryFloor, s.treasuryCeiling())
		s.Ideology.Trust = clamp(s.Ideology.Trust+1, 0, 100)
		s.EmitEvent("reward", fmt.Sprintf("decisive governance bonus: +%.0f treasury (streak %d)", bonus, s.Rapid.Streak))
	}
}

func (d *RapidDecision) optionByKey(key string) *RapidOption {
	for i := range d.Options {
		if d.Options[i].Key == key {
			return &d.Options[i]
		}
	}
	return nil
}

// defaultOption resolves the declared default, falling back to the
// first option when the default key is missing from the option list.
func (d *RapidDecision) defaultOption() *RapidOption {
	if opt := d.optionByKey(d.DefaultKey); opt != nil {
		return opt
	}
	if len(d.Options) > 0 {
		return &d.Options[0]
	}
	return nil
}

// scenarioDecision converts library content into a live decision.
// The first option is the declared default.
func scenarioDecision(sc content.Scenario) *RapidDecision {
	d := &RapidDecision{
		ID:       "scenario:" + sc.ID,
		Kind:     RapidScenario,
		Title:    sc.Title,
		Body:     sc.Body,
		Category: sc.Category,
	}
	for _, o := range sc.Options {
		opt := RapidOption{
			Key:      o.Key,
			Label:    o.Label,
			Demo:     o.Demo,
			Treasury: o.Treasury,
			Truth:    o.Truth,
			Trust:    o.Trust,
		}
		opt.KPI = make(map[KPIKey]float64, len(o.KPI))
		for k, v := range o.KPI {
			opt.KPI[KPIKey(k)] = v
		}
		for i := 0; i < len(o.Axes) && i < 4; i++ {
			opt.Axes[i] = o.Axes[i]
		}
		d.Options = append(d.Options, opt)
	}
	if len(d.Options) > 0 {
		d.DefaultKey = d.Options[0].Key
	}
	return d
}

// truthCheckDecision builds a believe/dismiss prompt from a contested
// claim. Believing a genuine claim or dismissing a fabricated one is a
// correct read.
func (s *Simulation) truthCheckDecision(tc content.TruthCheck) *RapidDecision {
	believe := tc.Quality
	dismiss := -tc.Quality
	return &RapidDecision{
		ID:         "truth:" + tc.ID,
		Kind:       RapidScenario,
		Title:      "Contested claim: " + tc.Origin,
		Body:       tc.Claim,
		Category:   "integrity",
		DefaultKey: "dismiss",
		Options: []RapidOption{
			{
				Key:   "dismiss",
				Label: "Dismiss the claim",
				Truth: &dismiss,
			},
			{
				Key:   "act",
				Label: "Act on the claim",
				Demo:  map[string]float64{content.SegMiddle: 1},
				KPI:   map[KPIKey]float64{KPIIntegrity: 1},
				Truth: &believe,
				Axes:  [4]float64{0, 0, 0, 2},
			},
		},
	}
}

// scriptedCatalog is the fixed fallback when no scenario content loads.
var scriptedCatalog = []*RapidDecision{
	{
		ID:         "scripted:overtime",
		Kind:       RapidScripted,
		Title:      "Sanitation overtime request",
		Body:       "Sanitation crews request paid overtime to clear the backlog before the weekend.",
		Category:   "adhoc",
		DefaultKey: "deny",
		Options: []RapidOption{
			{Key: "deny", Label: "Deny the overtime", Demo: map[string]float64{content.SegWorking: -2}},
			{Key: "approve", Label: "Approve the overtime", Demo: map[string]float64{content.SegWorking: 3}, KPI: map[KPIKey]float64{KPIHealth: 1}, Treasury: -6, Axes: [4]float64{2, 0, 0, 0}},
		},
	},
	{
		ID:         "scripted:checkpoint",
		Kind:       RapidScripted,
		Title:      "Holiday checkpoint plan",
		Body:       "The police chief wants temporary checkpoints on the ring road over the holiday.",
		Category:   "safety",
		DefaultKey: "decline",
		Options: []RapidOption{
			{Key: "decline", Label: "Decline the plan", Demo: map[string]float64{content.SegBusiness: -1}},
			{Key: "approve", Label: "Approve checkpoints", Demo: map[string]float64{content.SegPoverty: -2, content.SegBusiness: 2}, KPI: map[KPIKey]float64{KPISafety: 2}, Treasury: -4, Axes: [4]float64{0, 3, 0, 0}},
		},
	},
	{
		ID:         "scripted:surplus",
		Kind:       RapidScripted,
		Title:      "Depot surplus auction",
		Body:       "The works depot holds surplus vehicles. Auction them now or keep them in reserve?",
		Category:   "economy",
		DefaultKey: "keep",
		Options: []RapidOption{
			{Key: "keep", Label: "Keep them in reserve"},
			{Key: "auction", Label: "Auction the surplus", Treasury: 10, Demo: map[string]float64{content.SegBusiness: 1}, Axes: [4]float64{-1, 0, 0, 0}},
		},
	},
}

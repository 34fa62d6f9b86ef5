// Tick orchestration: AdvanceDay is the only entry point that moves the
// day counter, and the real-time Loop that drives it.
package engine

import (
	"log/slog"
	"sync"
	"time"
)

// AdvanceDay advances the simulation by one day. Subsystems run in a
// fixed order because later steps read values written by earlier ones:
// economy → KPI propagation → major events → incidents → demographics →
// growth → KPI finalize/history → delayed effects → housekeeping →
// deadline checks → report → game-over. Returns false once the
// game-over latch is set; callers must stop ticking.
func (s *Simulation) AdvanceDay() bool {
	if s.GameOver.Active {
		return false
	}

	s.Day++

	s.updateEconomy()
	s.propagateKPIs()
	s.updateMajorEvents()
	s.updateIncidents()
	s.updateDemographics()
	s.updateGrowth()

	s.finalizeKPIs()
	s.KPIs.commitHistory(s.cfg.HistoryWindow)

	s.runDelayed()
	s.recomputeDepartmentHealth()
	s.regenActionPoints()
	s.decayMomentum()

	s.checkRapid()
	s.checkStreakRewards()
	s.maybeEmitReport()
	s.checkGameOver()

	return !s.GameOver.Active
}

// regenActionPoints adds one point on the fixed regeneration cadence.
func (s *Simulation) regenActionPoints() {
	if s.cfg.ActionRegenDays > 0 && s.Day%s.cfg.ActionRegenDays == 0 {
		if s.ActionPoints < s.cfg.ActionPointMax {
			s.ActionPoints++
		}
	}
}

// Loop drives the simulation in real time. There is exactly one writer
// of simulation state; player commands are serialized with ticks
// through Do.
type Loop struct {
	Sim      *Simulation
	Interval time.Duration // Base day interval
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused

	// OnDay runs after each completed day, inside the lock.
	OnDay func(day int)

	mu      sync.Mutex
	running bool
}

// NewLoop creates a loop with default pacing.
func NewLoop(sim *Simulation) *Loop {
	return &Loop{Sim: sim, Interval: 2 * time.Second, Speed: 1.0}
}

// Run starts the loop. Blocks until Stop is called or the game ends.
func (l *Loop) Run() {
	l.mu.Lock()
	l.running = true
	l.mu.Unlock()

	slog.Info("simulation loop started", "day", l.Sim.Day, "speed", l.Speed)

	for {
		l.mu.Lock()
		if !l.running {
			l.mu.Unlock()
			break
		}
		if l.Speed <= 0 {
			l.mu.Unlock()
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		alive := l.Sim.AdvanceDay()
		if l.OnDay != nil {
			l.OnDay(l.Sim.Day)
		}
		speed := l.Speed
		if !alive {
			l.running = false
		}
		l.mu.Unlock()

		if !alive {
			break
		}

		elapsed := time.Since(start)
		target := time.Duration(float64(l.Interval) / speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("simulation loop stopped", "day", l.Sim.Day)
}

// Stop halts the loop.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.running = false
	l.mu.Unlock()
}

// Do runs fn while holding the loop lock, serializing player commands
// and snapshot reads against ticks.
func (l *Loop) Do(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

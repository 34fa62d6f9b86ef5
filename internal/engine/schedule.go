// Delayed single-shot effects, kept sorted by trigger day and consumed
// once per tick.
package engine

import "sort"

type delayedEffect struct {
	Day   int
	Label string
	Apply func(*Simulation)
}

// scheduleDelayed queues a single-shot effect for the given day.
func (s *Simulation) scheduleDelayed(day int, label string, apply func(*Simulation)) {
	s.pending = append(s.pending, delayedEffect{Day: day, Label: label, Apply: apply})
	sort.SliceStable(s.pending, func(i, j int) bool { return s.pending[i].Day < s.pending[j].Day })
}

// runDelayed fires every effect due today or earlier and removes it.
func (s *Simulation) runDelayed() {
	fired := 0
	for _, e := range s.pending {
		if e.Day > s.Day {
			break
		}
		e.Apply(s)
		s.EmitEvent("delayed", e.Label)
		fired++
	}
	if fired > 0 {
		s.pending = s.pending[fired:]
	}
}

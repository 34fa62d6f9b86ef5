// Game-over monitor: terminal-condition checks run after all other
// updates. The latch is one-way; the engine never auto-recovers.
package engine

import (
	"fmt"
	"log/slog"
)

// GameOverState is the latched terminal condition.
type GameOverState struct {
	Active bool   `json:"active"`
	Day    int    `json:"day"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

// checkGameOver latches on fiscal collapse (treasury ≤ 0) or
// legitimacy collapse (any segment's happiness at 0).
func (s *Simulation) checkGameOver() {
	if s.GameOver.Active {
		return
	}

	if s.Budget.Treasury <= 0 {
		s.GameOver = GameOverState{
			Active: true,
			Day:    s.Day,
			Reason: "fiscal collapse",
			Detail: fmt.Sprintf("treasury %.1f, debt %.1f, stability %.1f",
				s.Budget.Treasury, s.Budget.Debt, s.KPIs.Get(KPIStability)),
		}
	} else {
		for _, d := range s.Demographics {
			if d.Happiness <= 0 {
				s.GameOver = GameOverState{
					Active: true,
					Day:    s.Day,
					Reason: "legitimacy collapse",
					Detail: fmt.Sprintf("the %s segment has abandoned the government", d.Key),
				}
				break
			}
		}
	}

	if s.GameOver.Active {
		s.EmitEvent("gameover", s.GameOver.Reason+": "+s.GameOver.Detail)
		slog.Warn("game over", "day", s.GameOver.Day, "reason", s.GameOver.Reason, "detail", s.GameOver.Detail)
	}
}

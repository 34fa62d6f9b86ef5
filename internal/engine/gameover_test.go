package engine

import (
	"strings"
	"testing"

	"github.com/mkello/civitas/internal/content"
)

func TestFiscalCollapse(t *testing.T) {
	s := newTestSim(t, 0.99)
	s.Budget.Treasury = -50

	if s.AdvanceDay() {
		t.Fatal("AdvanceDay returned true on the collapsing tick")
	}
	if !s.GameOver.Active {
		t.Fatal("game over not latched")
	}
	if s.GameOver.Reason != "fiscal collapse" {
		t.Fatalf("reason = %q, want fiscal collapse", s.GameOver.Reason)
	}
	if s.GameOver.Day != s.Day {
		t.Fatalf("game over day = %d, want %d", s.GameOver.Day, s.Day)
	}

	if res := s.SetDepartmentBudget("health", 80); res.Applied {
		t.Fatal("command applied after fiscal collapse")
	}
}

func TestLegitimacyCollapseNamesSegment(t *testing.T) {
	s := newTestSim(t, 0.99)
	// Starve the welfare services so the drift stays negative, then put
	// the poverty segment on the floor.
	s.Departments["health"].Budget = 20
	s.Departments["education"].Budget = 20
	s.segmentByKey(content.SegPoverty).Happiness = 0

	if s.AdvanceDay() {
		t.Fatal("AdvanceDay returned true on the collapsing tick")
	}
	if s.GameOver.Reason != "legitimacy collapse" {
		t.Fatalf("reason = %q, want legitimacy collapse", s.GameOver.Reason)
	}
	if !strings.Contains(s.GameOver.Detail, content.SegPoverty) {
		t.Fatalf("detail %q does not name the collapsed segment", s.GameOver.Detail)
	}
}

func TestGameOverLatchIsOneWay(t *testing.T) {
	s := newTestSim(t, 0.99)
	s.GameOver = GameOverState{Active: true, Day: 10, Reason: "fiscal collapse", Detail: "original"}

	// Even with a healthy treasury the latch must not clear or rewrite.
	s.Budget.Treasury = 80
	s.checkGameOver()

	if s.GameOver.Day != 10 || s.GameOver.Detail != "original" {
		t.Fatalf("latch rewritten: %+v", s.GameOver)
	}
}

func TestHealthyCityDoesNotCollapse(t *testing.T) {
	s := newTestSim(t, 0.99)
	advance(t, s, 300)

	if s.GameOver.Active {
		t.Fatalf("unexpected collapse: %s (%s)", s.GameOver.Reason, s.GameOver.Detail)
	}
}

package engine

import (
	"testing"

	"github.com/mkello/civitas/internal/content"
)

func TestSegmentNotes(t *testing.T) {
	cases := []struct {
		happiness float64
		want      string
	}{
		{10, "severe"},
		{24.9, "severe"},
		{25, "fragile"},
		{44, "fragile"},
		{45, "steady"},
		{72, "steady"},
		{73, "thriving"},
	}
	for _, c := range cases {
		d := &Demographic{Happiness: c.happiness}
		if got := d.Note(); got != c.want {
			t.Fatalf("note at %.1f = %q, want %q", c.happiness, got, c.want)
		}
	}
}

func TestNudgeSegmentClamps(t *testing.T) {
	s := newTestSim(t)

	s.nudgeSegment(content.SegPoverty, 200)
	if got := s.segmentByKey(content.SegPoverty).Happiness; got != 100 {
		t.Fatalf("happiness = %.1f, want clamped to 100", got)
	}

	s.nudgeSegment(content.SegPoverty, -500)
	if got := s.segmentByKey(content.SegPoverty).Happiness; got != 0 {
		t.Fatalf("happiness = %.1f, want clamped to 0", got)
	}

	// Unknown keys are ignored.
	s.nudgeSegment("aristocracy", 10)
	if s.segmentByKey("aristocracy") != nil {
		t.Fatal("unknown segment materialized")
	}
}

func TestWelfareFundingLiftsPoorSegments(t *testing.T) {
	s := newTestSim(t)
	s.Departments["health"].Budget = 120
	s.Departments["education"].Budget = 120

	s.updateDemographics()

	poor := s.segmentByKey(content.SegPoverty)
	if poor.Trend <= 0 {
		t.Fatalf("poverty trend = %.3f with maxed welfare budgets, want positive", poor.Trend)
	}
}

func TestStarvedServicesDragPoorSegments(t *testing.T) {
	s := newTestSim(t)
	s.Departments["health"].Budget = 20
	s.Departments["education"].Budget = 20

	s.updateDemographics()

	poor := s.segmentByKey(content.SegPoverty)
	if poor.Trend >= 0 {
		t.Fatalf("poverty trend = %.3f with starved welfare budgets, want negative", poor.Trend)
	}
}

func TestSegmentsDivergeOnInequality(t *testing.T) {
	s := newTestSim(t)
	// A booming economy with collapsed services: business thrives while
	// poverty suffers through the inequality signal.
	s.KPIs.Values[KPIEconomy] = 95
	s.KPIs.Values[KPIHealth] = 20
	s.KPIs.Values[KPIEducation] = 20
	s.Departments["economy"].Budget = 110

	s.updateDemographics()

	poor := s.segmentByKey(content.SegPoverty)
	biz := s.segmentByKey(content.SegBusiness)
	if biz.Trend <= poor.Trend {
		t.Fatalf("business trend %.3f not above poverty trend %.3f under inequality", biz.Trend, poor.Trend)
	}
}

func TestHappinessStaysBounded(t *testing.T) {
	s := newTestSim(t, 0.99)
	advance(t, s, 200)

	for _, d := range s.Demographics {
		if d.Happiness < 0 || d.Happiness > 100 {
			t.Fatalf("segment %s happiness %.2f out of [0,100]", d.Key, d.Happiness)
		}
	}
}

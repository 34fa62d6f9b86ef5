// Package content holds the data-driven libraries the engine consumes:
// major-event crisis templates, rapid-decision scenarios, truth-check
// claims, and the baseline seed values. All of it can be overridden by
// JSON files at startup; missing files fall back to the built-ins.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// CrisisTemplate describes one major-event archetype.
type CrisisTemplate struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Domain     string             `json:"domain"` // KPI key the crisis centers on
	Days       int                `json:"days"`   // lifespan before expiry
	PerDayKPI  map[string]float64 `json:"per_day_kpi"`
	PerDayDemo map[string]float64 `json:"per_day_demo"`
	Response   Response           `json:"response"`
}

// Response is the single funded mitigation a crisis carries.
type Response struct {
	Label        string             `json:"label"`
	ActionPoints int                `json:"action_points"`
	Treasury     float64            `json:"treasury"`
	KPI          map[string]float64 `json:"kpi"`
	Demo         map[string]float64 `json:"demo"`
	Trust        float64            `json:"trust"`
}

// Scenario is a content-driven rapid decision with 2-3 options.
type Scenario struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Body     string           `json:"body"`
	Category string           `json:"category"`
	Options  []ScenarioOption `json:"options"`
}

// ScenarioOption is one labeled choice. Truth is optional: present only
// when the option represents a read on contested information.
type ScenarioOption struct {
	Key      string             `json:"key"`
	Label    string             `json:"label"`
	Demo     map[string]float64 `json:"demo"`
	KPI      map[string]float64 `json:"kpi"`
	Treasury float64            `json:"treasury"`
	Truth    *float64           `json:"truth,omitempty"`
	Axes     []float64          `json:"axes,omitempty"` // 4 ideology axis drifts
	Trust    float64            `json:"trust"`
}

// TruthCheck is a contested claim the player can believe or dismiss.
// Quality is signed: positive means the claim is genuine.
type TruthCheck struct {
	ID      string  `json:"id"`
	Claim   string  `json:"claim"`
	Origin  string  `json:"origin"`
	Quality float64 `json:"quality"`
}

// Baseline seeds the opening KPI board and debt.
type Baseline struct {
	KPIs map[string]float64 `json:"kpis"`
	Debt float64            `json:"debt"`
}

// Library bundles all loaded content.
type Library struct {
	Crises      []CrisisTemplate `json:"crises"`
	Scenarios   []Scenario       `json:"scenarios"`
	TruthChecks []TruthCheck     `json:"truth_checks"`
	Baseline    Baseline         `json:"baseline"`
}

// Load reads content JSON files from dir, falling back to built-in
// defaults for any file that is missing or malformed. The returned
// error describes what fell back; the Library is always usable.
func Load(dir string) (*Library, error) {
	lib := Defaults()
	if dir == "" {
		return lib, nil
	}

	var errs []error

	if err := loadJSON(filepath.Join(dir, "crises.json"), &lib.Crises); err != nil {
		errs = append(errs, fmt.Errorf("crises: %w", err))
	}
	if err := loadJSON(filepath.Join(dir, "scenarios.json"), &lib.Scenarios); err != nil {
		errs = append(errs, fmt.Errorf("scenarios: %w", err))
	}
	if err := loadJSON(filepath.Join(dir, "truthchecks.json"), &lib.TruthChecks); err != nil {
		errs = append(errs, fmt.Errorf("truth checks: %w", err))
	}
	if err := loadJSON(filepath.Join(dir, "baseline.json"), &lib.Baseline); err != nil {
		errs = append(errs, fmt.Errorf("baseline: %w", err))
	}

	return lib, errors.Join(errs...)
}

// loadJSON decodes path into v, leaving v untouched on any failure.
func loadJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // absent file is not an error, defaults apply
		}
		return err
	}
	return json.Unmarshal(raw, v)
}

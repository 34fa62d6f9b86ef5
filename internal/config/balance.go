// Package config holds the gameplay balance coefficients.
// Every tunable number the engine uses lives here so tests and
// difficulty presets can construct their own instances.
package config

// Balance holds simulation balance configuration.
type Balance struct {
	// Economy recurrence.
	RevenueBase       float64 `json:"revenue_base"`
	RevenuePerEconomy float64 `json:"revenue_per_economy"`
	RevenuePerLevel   float64 `json:"revenue_per_level"`
	RevenueFloor      float64 `json:"revenue_floor"`
	RevenueCeil       float64 `json:"revenue_ceil"`

	ExpenditureBase      float64 `json:"expenditure_base"`
	ExpenditurePerBudget float64 `json:"expenditure_per_budget"`
	ExpenditureHealthGap float64 `json:"expenditure_health_gap"`
	ExpenditurePerDebt   float64 `json:"expenditure_per_debt"`
	ExpenditureFloor     float64 `json:"expenditure_floor"`
	ExpenditureCeil      float64 `json:"expenditure_ceil"`

	DebtRate     float64 `json:"debt_rate"`
	TreasuryRate float64 `json:"treasury_rate"`

	TreasuryCeilBase      float64 `json:"treasury_ceil_base"`
	TreasuryCeilEconomy   float64 `json:"treasury_ceil_economy"`
	TreasuryCeilPerLevel  float64 `json:"treasury_ceil_per_level"`
	TreasuryCeilPerStreak float64 `json:"treasury_ceil_per_streak"`

	// KPI propagation.
	KPIPace         float64 `json:"kpi_pace"`
	KPIBudgetGain   float64 `json:"kpi_budget_gain"`
	KPILevelGain    float64 `json:"kpi_level_gain"`
	HistoryWindow   int     `json:"history_window"`
	DebtHealthDrag  float64 `json:"debt_health_drag"`
	BrokeIntegrityDrag float64 `json:"broke_integrity_drag"`

	// Action points.
	ActionPointMax   int `json:"action_point_max"`
	ActionRegenDays  int `json:"action_regen_days"`

	// Incidents.
	IncidentMaxActive      int     `json:"incident_max_active"`
	IncidentSpawnBase      float64 `json:"incident_spawn_base"`
	IncidentSpawnPressure  float64 `json:"incident_spawn_pressure"`
	IncidentEscalateDays   int     `json:"incident_escalate_days"`
	IncidentStreakDays     int     `json:"incident_streak_days"`
	IncidentSeverityMax    int     `json:"incident_severity_max"`
	IncidentStabilityShare float64 `json:"incident_stability_share"`
	IncidentAutoContain    float64 `json:"incident_auto_contain"`
	ResolveBaseUnits       float64 `json:"resolve_base_units"`
	ResolvePerSeverity     float64 `json:"resolve_per_severity"`
	ContainedDrag          float64 `json:"contained_drag"`
	DispatchCostPerSev     float64 `json:"dispatch_cost_per_sev"`

	// Major events.
	MajorMaxActive       int     `json:"major_max_active"`
	MajorSpawnBase       float64 `json:"major_spawn_base"`
	MajorSpawnPressure   float64 `json:"major_spawn_pressure"`
	MajorSpawnUnrest     float64 `json:"major_spawn_unrest"`
	MajorCooldownDays    int     `json:"major_cooldown_days"`
	MajorTemplateMemory  int     `json:"major_template_memory"`
	MajorExpiryMultiplier float64 `json:"major_expiry_multiplier"`

	// Rapid decisions.
	RapidIntervalDays int     `json:"rapid_interval_days"`
	RapidWindowDays   int     `json:"rapid_window_days"`
	RapidScenarioBias float64 `json:"rapid_scenario_bias"`
	MomentumGain      float64 `json:"momentum_gain"`
	MomentumDecay     float64 `json:"momentum_decay"`

	// Demographics.
	HappinessGain float64 `json:"happiness_gain"`

	// Decision ledger.
	LedgerCap        int     `json:"ledger_cap"`
	ReportEveryDays  int     `json:"report_every_days"`
	PriorityDemo     float64 `json:"priority_demo"`
	PriorityTrust    float64 `json:"priority_trust"`
	PriorityKPI      float64 `json:"priority_kpi"`
	PriorityRisk     float64 `json:"priority_risk"`

	// Growth.
	GrowthMinGapDays  int     `json:"growth_min_gap_days"`
	GrowthFastGapDays int     `json:"growth_fast_gap_days"`
	GrowthThreshold   float64 `json:"growth_threshold"`
	GrowthBigThreshold float64 `json:"growth_big_threshold"`

	// Department commands.
	BudgetPace        float64 `json:"budget_pace"`
	BudgetMinDelta    float64 `json:"budget_min_delta"`
	UpgradeBaseCost   float64 `json:"upgrade_base_cost"`
	UpgradePerLevel   float64 `json:"upgrade_per_level"`
	UpgradePayoff     float64 `json:"upgrade_payoff"`
	UpgradePayoffDays int     `json:"upgrade_payoff_days"`

	// Starting state. A StartDebt below zero defers to the content
	// library's baseline debt seed.
	StartTreasury     float64 `json:"start_treasury"`
	StartDebt         float64 `json:"start_debt"`
	StartActionPoints int     `json:"start_action_points"`
}

// Default returns the baseline balance configuration.
func Default() Balance {
	return Balance{
		RevenueBase:       70,
		RevenuePerEconomy: 0.5,
		RevenuePerLevel:   6,
		RevenueFloor:      40,
		RevenueCeil:       170,

		ExpenditureBase:      38,
		ExpenditurePerBudget: 0.45,
		ExpenditureHealthGap: 0.22,
		ExpenditurePerDebt:   0.08,
		ExpenditureFloor:     40,
		ExpenditureCeil:      160,

		DebtRate:     0.06,
		TreasuryRate: 0.12,

		TreasuryCeilBase:      90,
		TreasuryCeilEconomy:   0.8,
		TreasuryCeilPerLevel:  6,
		TreasuryCeilPerStreak: 2,

		KPIPace:            0.15,
		KPIBudgetGain:      0.45,
		KPILevelGain:       5,
		HistoryWindow:      120,
		DebtHealthDrag:     0.012,
		BrokeIntegrityDrag: 0.8,

		ActionPointMax:  4,
		ActionRegenDays: 2,

		IncidentMaxActive:      6,
		IncidentSpawnBase:      0.04,
		IncidentSpawnPressure:  0.0045,
		IncidentEscalateDays:   3,
		IncidentStreakDays:     4,
		IncidentSeverityMax:    4,
		IncidentStabilityShare: 0.4,
		IncidentAutoContain:    0.12,
		ResolveBaseUnits:       6,
		ResolvePerSeverity:     3,
		ContainedDrag:          0.3,
		DispatchCostPerSev:     4,

		MajorMaxActive:        2,
		MajorSpawnBase:        0.03,
		MajorSpawnPressure:    0.004,
		MajorSpawnUnrest:      0.003,
		MajorCooldownDays:     8,
		MajorTemplateMemory:   6,
		MajorExpiryMultiplier: 2.5,

		RapidIntervalDays: 7,
		RapidWindowDays:   3,
		RapidScenarioBias: 0.7,
		MomentumGain:      0.25,
		MomentumDecay:     0.95,

		HappinessGain: 0.2,

		LedgerCap:       240,
		ReportEveryDays: 30,
		PriorityDemo:    1.0,
		PriorityTrust:   1.5,
		PriorityKPI:     1.2,
		PriorityRisk:    2.0,

		GrowthMinGapDays:   20,
		GrowthFastGapDays:  12,
		GrowthThreshold:    62,
		GrowthBigThreshold: 75,

		BudgetPace:        0.6,
		BudgetMinDelta:    1,
		UpgradeBaseCost:   12,
		UpgradePerLevel:   8,
		UpgradePayoff:     6,
		UpgradePayoffDays: 5,

		StartTreasury:     48,
		StartDebt:         -1,
		StartActionPoints: 3,
	}
}

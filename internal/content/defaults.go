package content

// Demographic segment keys used throughout the built-in content.
const (
	SegPoverty  = "poverty"
	SegWorking  = "working"
	SegMiddle   = "middle"
	SegBusiness = "business"
	SegElite    = "elite"
)

// Defaults returns the built-in content library.
func Defaults() *Library {
	return &Library{
		Crises:      defaultCrises(),
		Scenarios:   defaultScenarios(),
		TruthChecks: defaultTruthChecks(),
		Baseline: Baseline{
			KPIs: map[string]float64{
				"health":    58,
				"education": 55,
				"safety":    57,
				"climate":   52,
				"integrity": 50,
				"economy":   54,
			},
			Debt: 60,
		},
	}
}

// crisis builds a template with the common shape: a daily hit on its
// domain KPI, daily unhappiness for the listed segments, and a funded
// response that claws most of it back.
func crisis(id, title, domain string, days int, dailyHit float64, hitSegs []string, cost float64, label string) CrisisTemplate {
	perDemo := map[string]float64{}
	for _, s := range hitSegs {
		perDemo[s] = -dailyHit * 0.6
	}
	payDemo := map[string]float64{}
	for _, s := range hitSegs {
		payDemo[s] = dailyHit * 2.2
	}
	return CrisisTemplate{
		ID:         id,
		Title:      title,
		Domain:     domain,
		Days:       days,
		PerDayKPI:  map[string]float64{domain: -dailyHit},
		PerDayDemo: perDemo,
		Response: Response{
			Label:        label,
			ActionPoints: 2,
			Treasury:     cost,
			KPI:          map[string]float64{domain: dailyHit * 3},
			Demo:         payDemo,
			Trust:        2,
		},
	}
}

func defaultCrises() []CrisisTemplate {
	return []CrisisTemplate{
		crisis("epidemic", "Respiratory epidemic spreads", "health", 8, 1.4, []string{SegPoverty, SegWorking}, 26, "Emergency vaccination drive"),
		crisis("hospital_strike", "Hospital staff walk out", "health", 6, 1.2, []string{SegWorking, SegMiddle}, 20, "Settle with the nurses' union"),
		crisis("water_contamination", "Contaminated water supply", "health", 7, 1.5, []string{SegPoverty, SegWorking, SegMiddle}, 28, "Flush and retrofit the mains"),
		crisis("clinic_closures", "Rural clinics shutting down", "health", 9, 0.9, []string{SegPoverty}, 18, "Mobile clinic program"),
		crisis("teacher_strike", "Teachers strike over pay", "education", 7, 1.2, []string{SegWorking, SegMiddle}, 22, "Fund the pay settlement"),
		crisis("exam_leak", "National exam papers leaked", "education", 5, 1.0, []string{SegMiddle}, 14, "Re-run the exams"),
		crisis("school_collapse", "School roof collapse scare", "education", 6, 1.3, []string{SegWorking, SegMiddle}, 24, "Emergency inspection blitz"),
		crisis("crime_wave", "Organized crime wave", "safety", 8, 1.5, []string{SegWorking, SegMiddle, SegBusiness}, 26, "Task force surge"),
		crisis("gang_feud", "Gang feud turns violent", "safety", 6, 1.3, []string{SegPoverty, SegWorking}, 20, "Mediated truce and patrols"),
		crisis("prison_break", "Mass prison escape", "safety", 5, 1.6, []string{SegMiddle, SegBusiness}, 24, "Manhunt and lockdown"),
		crisis("stadium_crush", "Stadium safety scandal", "safety", 6, 1.0, []string{SegWorking}, 16, "Venue safety overhaul"),
		crisis("heatwave", "Record heatwave", "climate", 7, 1.3, []string{SegPoverty, SegElite}, 22, "Cooling centers and grid relief"),
		crisis("river_flood", "River bursts its banks", "climate", 8, 1.5, []string{SegPoverty, SegWorking}, 30, "Levee reinforcement"),
		crisis("smog_alert", "Prolonged smog alert", "climate", 9, 1.0, []string{SegMiddle, SegElite}, 20, "Traffic restriction scheme"),
		crisis("landfill_fire", "Landfill fire smolders", "climate", 6, 1.1, []string{SegPoverty}, 16, "Containment and relocation"),
		crisis("bribery_ring", "Bribery ring in permits office", "integrity", 7, 1.2, []string{SegMiddle, SegBusiness}, 18, "Independent prosecutor"),
		crisis("audit_scandal", "Treasury audit scandal", "integrity", 8, 1.1, []string{SegMiddle, SegElite}, 20, "Open-books commission"),
		crisis("market_crash", "Local market crash", "economy", 8, 1.6, []string{SegBusiness, SegElite, SegWorking}, 30, "Liquidity backstop"),
		crisis("port_strike", "Port workers blockade", "economy", 6, 1.3, []string{SegBusiness, SegWorking}, 22, "Arbitrated settlement"),
		crisis("supply_shock", "Fuel supply shock", "economy", 7, 1.2, []string{SegWorking, SegMiddle, SegBusiness}, 24, "Strategic reserve release"),
	}
}

func truthPtr(v float64) *float64 { return &v }

func defaultScenarios() []Scenario {
	return []Scenario{
		{
			ID:       "transit_fares",
			Title:    "Transit fare shortfall",
			Body:     "The transit authority wants a fare hike to cover losses. Advisors are split.",
			Category: "economy",
			Options: []ScenarioOption{
				{Key: "hike", Label: "Approve the fare hike", Demo: map[string]float64{SegPoverty: -4, SegWorking: -3, SegBusiness: 2}, KPI: map[string]float64{"economy": 2}, Treasury: 8, Axes: []float64{-3, 0, 0, 0}},
				{Key: "subsidize", Label: "Subsidize fares from treasury", Demo: map[string]float64{SegPoverty: 4, SegWorking: 3, SegElite: -2}, KPI: map[string]float64{"economy": -1}, Treasury: -10, Axes: []float64{4, 0, 0, 0}, Trust: 1},
			},
		},
		{
			ID:       "curfew_petition",
			Title:    "Downtown curfew petition",
			Body:     "Business owners petition for a night curfew after a spate of vandalism.",
			Category: "safety",
			Options: []ScenarioOption{
				{Key: "impose", Label: "Impose the curfew", Demo: map[string]float64{SegBusiness: 4, SegWorking: -3, SegPoverty: -4}, KPI: map[string]float64{"safety": 3}, Axes: []float64{0, 5, 0, 0}, Trust: -1},
				{Key: "patrols", Label: "Extra patrols instead", Demo: map[string]float64{SegBusiness: 1, SegWorking: 1}, KPI: map[string]float64{"safety": 1}, Treasury: -6, Axes: []float64{0, 2, 0, 0}},
				{Key: "decline", Label: "Decline both", Demo: map[string]float64{SegBusiness: -3, SegPoverty: 2}, Axes: []float64{0, -3, 0, 0}},
			},
		},
		{
			ID:       "factory_permit",
			Title:    "Factory permit on wetland",
			Body:     "An investor promises 800 jobs if allowed to build on protected wetland.",
			Category: "climate",
			Options: []ScenarioOption{
				{Key: "approve", Label: "Approve the permit", Demo: map[string]float64{SegWorking: 4, SegBusiness: 4, SegElite: 1}, KPI: map[string]float64{"economy": 3, "climate": -4}, Treasury: 12, Axes: []float64{0, 0, -6, 0}},
				{Key: "reject", Label: "Protect the wetland", Demo: map[string]float64{SegMiddle: 2, SegElite: 2, SegWorking: -3}, KPI: map[string]float64{"climate": 3}, Axes: []float64{0, 0, 6, 0}, Trust: 1},
			},
		},
		{
			ID:       "leak_dossier",
			Title:    "Leaked procurement dossier",
			Body:     "A journalist claims the roads contract was rigged. The contractor denies everything.",
			Category: "integrity",
			Options: []ScenarioOption{
				{Key: "investigate", Label: "Open a public inquiry", Demo: map[string]float64{SegMiddle: 3, SegPoverty: 2, SegElite: -3}, KPI: map[string]float64{"integrity": 3}, Treasury: -6, Truth: truthPtr(0.8), Axes: []float64{0, 0, 0, 6}, Trust: 2},
				{Key: "dismiss", Label: "Dismiss it as a smear", Demo: map[string]float64{SegElite: 2, SegMiddle: -3}, KPI: map[string]float64{"integrity": -2}, Truth: truthPtr(-0.8), Axes: []float64{0, 0, 0, -5}, Trust: -2},
			},
		},
		{
			ID:       "vaccine_rumor",
			Title:    "Clinic rumor goes viral",
			Body:     "A viral post claims the new clinic batch is spoiled. Health staff say storage logs are clean.",
			Category: "health",
			Options: []ScenarioOption{
				{Key: "recall", Label: "Recall the batch anyway", Demo: map[string]float64{SegPoverty: 1, SegMiddle: -2}, KPI: map[string]float64{"health": -2}, Treasury: -8, Truth: truthPtr(-0.6), Trust: -1},
				{Key: "publish", Label: "Publish the storage logs", Demo: map[string]float64{SegMiddle: 2, SegWorking: 1}, KPI: map[string]float64{"health": 1, "integrity": 1}, Truth: truthPtr(0.7), Axes: []float64{0, 0, 0, 3}, Trust: 2},
			},
		},
		{
			ID:       "festival_funding",
			Title:    "Harvest festival funding",
			Body:     "Organizers ask the city to underwrite this year's festival after sponsors pulled out.",
			Category: "adhoc",
			Options: []ScenarioOption{
				{Key: "fund", Label: "Underwrite the festival", Demo: map[string]float64{SegWorking: 3, SegMiddle: 2, SegPoverty: 2}, Treasury: -12, Axes: []float64{2, 0, 0, 0}, Trust: 1},
				{Key: "scale", Label: "Fund a scaled-down version", Demo: map[string]float64{SegWorking: 1, SegMiddle: 1}, Treasury: -5},
				{Key: "decline", Label: "Let it lapse this year", Demo: map[string]float64{SegWorking: -2, SegMiddle: -2}, Treasury: 0},
			},
		},
		{
			ID:       "tax_amnesty",
			Title:    "Back-tax amnesty proposal",
			Body:     "The chamber of commerce proposes a one-time amnesty on back taxes to pull firms out of the shadow economy.",
			Category: "economy",
			Options: []ScenarioOption{
				{Key: "amnesty", Label: "Grant the amnesty", Demo: map[string]float64{SegBusiness: 4, SegElite: 3, SegWorking: -2}, KPI: map[string]float64{"economy": 2, "integrity": -2}, Treasury: 14, Axes: []float64{-4, 0, 0, -2}},
				{Key: "enforce", Label: "Enforce collection instead", Demo: map[string]float64{SegBusiness: -3, SegPoverty: 2, SegMiddle: 1}, KPI: map[string]float64{"integrity": 2}, Treasury: 6, Axes: []float64{3, 2, 0, 2}, Trust: 1},
			},
		},
		{
			ID:       "surveillance_grid",
			Title:    "Surveillance grid offer",
			Body:     "A vendor offers a discounted city-wide camera grid with live analytics.",
			Category: "safety",
			Options: []ScenarioOption{
				{Key: "deploy", Label: "Deploy the grid", Demo: map[string]float64{SegBusiness: 2, SegElite: 2, SegPoverty: -3, SegMiddle: -2}, KPI: map[string]float64{"safety": 3}, Treasury: -16, Axes: []float64{0, 6, 0, -4}, Trust: -1},
				{Key: "pilot", Label: "Pilot in two districts", Demo: map[string]float64{SegBusiness: 1, SegMiddle: -1}, KPI: map[string]float64{"safety": 1}, Treasury: -6, Axes: []float64{0, 2, 0, -1}},
				{Key: "refuse", Label: "Refuse the offer", Demo: map[string]float64{SegPoverty: 2, SegMiddle: 1, SegBusiness: -2}, Axes: []float64{0, -4, 0, 3}, Trust: 1},
			},
		},
	}
}

func defaultTruthChecks() []TruthCheck {
	return []TruthCheck{
		{ID: "budget_hole", Claim: "Opposition blog: the treasury is hiding a 40-crown budget hole.", Origin: "The Ledger Leaks", Quality: -0.7},
		{ID: "bridge_cracks", Claim: "Engineering forum: the north bridge shows fatigue cracks.", Origin: "civengineers.net", Quality: 0.8},
		{ID: "water_meter", Claim: "Neighborhood group: new water meters overbill by 12%.", Origin: "Ward 4 Assembly", Quality: 0.5},
		{ID: "crime_stats", Claim: "Tabloid: street crime doubled since last quarter.", Origin: "The Daily Siren", Quality: -0.6},
		{ID: "school_mold", Claim: "Parents' association: mold found in two school basements.", Origin: "PTA Council", Quality: 0.7},
		{ID: "land_deal", Claim: "Anonymous tip: a council member's cousin bought the depot land cheap.", Origin: "anonymous", Quality: -0.3},
	}
}

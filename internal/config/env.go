package config

import (
	"os"
	"strconv"
)

// FromEnv loads balance configuration from environment variables.
// Falls back to defaults for anything not set.
func FromEnv() Balance {
	cfg := Default()

	if v := getEnvFloat("CIVITAS_START_TREASURY"); v != nil {
		cfg.StartTreasury = *v
	}
	if v := getEnvFloat("CIVITAS_START_DEBT"); v != nil && *v >= 0 {
		cfg.StartDebt = *v
	}
	if v := getEnvInt("CIVITAS_START_ACTION_POINTS"); v != nil && *v >= 0 {
		cfg.StartActionPoints = *v
	}
	if v := getEnvInt("CIVITAS_ACTION_POINT_MAX"); v != nil && *v > 0 {
		cfg.ActionPointMax = *v
	}
	if v := getEnvInt("CIVITAS_RAPID_INTERVAL_DAYS"); v != nil && *v > 0 {
		cfg.RapidIntervalDays = *v
	}
	if v := getEnvInt("CIVITAS_REPORT_EVERY_DAYS"); v != nil && *v > 0 {
		cfg.ReportEveryDays = *v
	}
	if v := getEnvInt("CIVITAS_MAJOR_MAX_ACTIVE"); v != nil && *v > 0 {
		cfg.MajorMaxActive = *v
	}
	if v := getEnvInt("CIVITAS_INCIDENT_MAX_ACTIVE"); v != nil && *v > 0 {
		cfg.IncidentMaxActive = *v
	}
	if v := getEnvFloat("CIVITAS_INCIDENT_SPAWN_BASE"); v != nil && *v >= 0 {
		cfg.IncidentSpawnBase = *v
	}
	if v := getEnvFloat("CIVITAS_MAJOR_SPAWN_BASE"); v != nil && *v >= 0 {
		cfg.MajorSpawnBase = *v
	}

	// Difficulty presets override individual knobs.
	switch os.Getenv("CIVITAS_DIFFICULTY") {
	case "casual":
		cfg.IncidentSpawnBase *= 0.6
		cfg.MajorSpawnBase *= 0.6
		cfg.StartTreasury += 30
	case "hard":
		cfg.IncidentSpawnBase *= 1.5
		cfg.MajorSpawnBase *= 1.4
		cfg.StartTreasury -= 15
		cfg.DebtRate *= 1.25
	}

	return cfg
}

func getEnvInt(key string) *int {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func getEnvFloat(key string) *float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Command civitas runs the city governance simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mkello/civitas/internal/api"
	"github.com/mkello/civitas/internal/citymap"
	"github.com/mkello/civitas/internal/config"
	"github.com/mkello/civitas/internal/content"
	"github.com/mkello/civitas/internal/engine"
	"github.com/mkello/civitas/internal/entropy"
	"github.com/mkello/civitas/internal/persistence"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("CIVITAS — City Governance Simulation")

	seed := envInt64("CIVITAS_SEED", 0)
	dbPath := envStr("CIVITAS_DB", "data/civitas.db")
	apiPort := int(envInt64("CIVITAS_PORT", 8080))
	contentDir := os.Getenv("CIVITAS_CONTENT_DIR")

	// ── Config ────────────────────────────────────────────────────────
	cfg := config.FromEnv()

	// ── Entropy ───────────────────────────────────────────────────────
	if seed == 0 {
		seed = entropy.CryptoSeed()
	}
	rng := entropy.NewSource(seed)
	slog.Info("entropy seeded", "seed", seed)

	// ── Content library ───────────────────────────────────────────────
	lib := content.Defaults()
	if contentDir != "" {
		loaded, err := content.Load(contentDir)
		if err != nil {
			slog.Warn("content load incomplete, using defaults where missing", "dir", contentDir, "error", err)
		}
		lib = loaded
	}
	slog.Info("content library ready",
		"crises", len(lib.Crises),
		"scenarios", len(lib.Scenarios),
		"truth_checks", len(lib.TruthChecks),
	)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("archive opened", "path", dbPath)

	// ── City map (deterministic from seed) ────────────────────────────
	slog.Info("generating city map...")
	genCfg := citymap.DefaultGenConfig()
	genCfg.Seed = seed
	cityMap := citymap.Generate(genCfg)

	buildable := 0
	for _, row := range cityMap.Tiles {
		for _, t := range row {
			if t.Buildable {
				buildable++
			}
		}
	}
	slog.Info("city map ready", "size", cityMap.Size, "buildable_tiles", buildable)

	// ── Simulation ────────────────────────────────────────────────────
	sim := engine.NewSimulation(cfg, lib, cityMap, rng)

	loop := engine.NewLoop(sim)
	loop.Speed = envFloat("CIVITAS_SPEED", 1.0)

	// Archive each report with its decision window, and flush events.
	// The monotonic counter survives the engine's bounded event ring.
	var archivedEvents int
	sim.OnReport = func(r engine.Report, window []*engine.Decision) {
		if err := db.SaveReport(r, window); err != nil {
			slog.Error("report archive failed", "error", err)
		}
	}
	loop.OnDay = func(day int) {
		events := sim.RecentEvents(0)
		fresh := sim.TotalEvents - archivedEvents
		if fresh > len(events) {
			fresh = len(events)
		}
		if fresh <= 0 {
			return
		}
		if err := db.SaveEvents(events[len(events)-fresh:]); err != nil {
			slog.Error("event archive failed", "error", err)
		} else {
			archivedEvents = sim.TotalEvents
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("CIVITAS_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("CIVITAS_ADMIN_KEY not set — command endpoints will be disabled")
	}

	hub := api.NewHub()
	prevOnDay := loop.OnDay
	loop.OnDay = func(day int) {
		prevOnDay(day)
		hub.Broadcast(sim.Snapshot())
	}

	apiServer := &api.Server{
		Sim:      sim,
		Loop:     loop,
		Port:     apiPort,
		AdminKey: adminKey,
		Hub:      hub,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		loop.Stop()
	}()

	fmt.Printf("\nCivitas is live: treasury %.0f, %d action points, day %d.\n",
		sim.Budget.Treasury, sim.ActionPoints, sim.Day)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", apiPort)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	loop.Run()

	if sim.GameOver.Active {
		fmt.Printf("\nGame over on day %d: %s\n%s\n", sim.GameOver.Day, sim.GameOver.Reason, sim.GameOver.Detail)
	} else {
		fmt.Println("Simulation stopped.")
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

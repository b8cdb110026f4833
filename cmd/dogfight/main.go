package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/dogfight/internal/config"
	"github.com/l1jgo/dogfight/internal/data"
	"github.com/l1jgo/dogfight/internal/game"
	"github.com/l1jgo/dogfight/internal/persist"
	"github.com/l1jgo/dogfight/internal/scripting"
	"github.com/l1jgo/dogfight/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              dogfight  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      headless flight-combat simulation    \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", serverName)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value string) {
	dotsLen := 42 - len(label) - len(value)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), value)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("DOGFIGHT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Optional match history database
	var matches *persist.MatchRepo
	if cfg.Database.Enabled {
		printSection("database")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		version, err := persist.RunMigrations(ctx, db.Pool, log)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("migrations applied (schema v%d)", version))
		matches = persist.NewMatchRepo(db)
		fmt.Println()
	}

	// 4. Data tables
	printSection("data")
	aircraft := data.DefaultAircraftTable()
	if cfg.Data.AircraftPath != "" {
		aircraft, err = data.LoadAircraftTable(cfg.Data.AircraftPath)
		if err != nil {
			return fmt.Errorf("aircraft: %w", err)
		}
		printOK("aircraft table " + cfg.Data.AircraftPath)
	} else {
		printOK("aircraft table (built-in)")
	}
	var spawns []data.SpawnPoint
	if cfg.Data.SpawnPath != "" {
		spawns, err = data.LoadSpawnList(cfg.Data.SpawnPath)
		if err != nil {
			return fmt.Errorf("spawns: %w", err)
		}
		printStat("fixed spawns", fmt.Sprintf("%d", len(spawns)))
	}

	// 5. Lua scripts
	var scripts *scripting.Engine
	if cfg.Data.ScriptsDir != "" {
		scripts, err = scripting.NewEngine(cfg.Data.ScriptsDir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer scripts.Close()
		printOK("lua scripts " + cfg.Data.ScriptsDir)
	}
	fmt.Println()

	// 6. Build the match
	g, err := game.New(game.Options{
		Config:    cfg,
		Aircraft:  aircraft,
		Log:       log,
		Spawns:    spawns,
		Scripts:   scripts,
		Autopilot: true,
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	printSection("match")
	printStat("seed", fmt.Sprintf("%d", g.Seed()))
	printStat("enemies", fmt.Sprintf("%d", g.Match().EnemiesSpawned))
	printReady(fmt.Sprintf("game loop started (tick: %s, realtime: %v)", cfg.Simulation.TickRate, cfg.Simulation.Realtime))
	fmt.Println()

	startedAt := time.Now()
	interrupted := loop(g, cfg.Simulation, shutdownCh, log)
	finishedAt := time.Now()

	// 7. Record and report
	m := g.Match()
	rec := persist.MatchRecord{
		ServerName:       cfg.Server.Name,
		Seed:             g.Seed(),
		Outcome:          m.Outcome.String(),
		EnemiesSpawned:   m.EnemiesSpawned,
		EnemiesDestroyed: m.EnemiesDestroyed,
		Ticks:            g.Ticks(),
		SimSeconds:       g.Now().Seconds(),
		StartedAt:        startedAt,
		FinishedAt:       finishedAt,
	}
	if matches != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		id, err := matches.Save(ctx, rec, killRows(g.Kills()))
		if err != nil {
			log.Error("save match failed", zap.Error(err))
		} else {
			log.Info("match saved", zap.String("match_id", id.String()))
		}
	}

	printSection("summary")
	printStat("outcome", rec.Outcome)
	printStat("destroyed", fmt.Sprintf("%d/%d", rec.EnemiesDestroyed, rec.EnemiesSpawned))
	printStat("simulated", g.Now().String())
	printStat("ticks", fmt.Sprintf("%d", rec.Ticks))
	stats := g.Stats()
	printStat("shots fired", fmt.Sprintf("%d", stats.ShotsFired))
	printStat("missiles launched", fmt.Sprintf("%d", stats.MissilesLaunched))
	if interrupted {
		printReady("stopped by signal")
	}
	fmt.Println()

	if matches != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		printHistory(ctx, matches, log)
	}
	return nil
}

// printHistory shows the outcome tally and the latest recorded matches.
func printHistory(ctx context.Context, matches *persist.MatchRepo, log *zap.Logger) {
	tally, err := matches.Tally(ctx)
	if err != nil {
		log.Warn("match tally failed", zap.Error(err))
		return
	}
	recent, err := matches.Recent(ctx, 5)
	if err != nil {
		log.Warn("recent matches failed", zap.Error(err))
		return
	}

	printSection("history")
	for _, st := range historyStats(tally, recent) {
		printStat(st[0], st[1])
	}
	fmt.Println()
}

// historyStats renders the tally (every outcome, zeros included) followed by
// one line per recent match as label/value pairs.
func historyStats(tally map[string]int, recent []persist.MatchRecord) [][2]string {
	out := make([][2]string, 0, 3+len(recent))
	for _, o := range []world.Outcome{world.OutcomeVictory, world.OutcomeDefeat, world.OutcomeNone} {
		out = append(out, [2]string{o.String(), fmt.Sprintf("%d", tally[o.String()])})
	}
	for _, r := range recent {
		out = append(out, [2]string{
			r.FinishedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%s %d/%d", r.Outcome, r.EnemiesDestroyed, r.EnemiesSpawned),
		})
	}
	return out
}

// loop steps the match until it is decided, the simulated time limit is
// reached, or a shutdown signal arrives. It reports whether a signal ended it.
func loop(g *game.Game, sim config.SimulationConfig, shutdownCh <-chan os.Signal, log *zap.Logger) bool {
	done := func() bool {
		if g.Outcome() != world.OutcomeNone {
			return true
		}
		return sim.MaxDuration > 0 && g.Now() >= sim.MaxDuration
	}

	if !sim.Realtime {
		for !done() {
			select {
			case sig := <-shutdownCh:
				log.Info("shutdown signal received", zap.String("signal", sig.String()))
				return true
			default:
			}
			if !g.Step(sim.TickRate) {
				return false
			}
		}
		return false
	}

	ticker := time.NewTicker(sim.TickRate)
	defer ticker.Stop()
	for !done() {
		select {
		case <-ticker.C:
			if !g.Step(sim.TickRate) {
				return false
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return true
		}
	}
	return false
}

func killRows(kills []game.Kill) []persist.KillRow {
	rows := make([]persist.KillRow, 0, len(kills))
	for _, k := range kills {
		rows = append(rows, persist.KillRow{
			Victim:     k.Victim,
			Instigator: k.Instigator,
			Player:     k.Player,
			AtSeconds:  k.At.Seconds(),
		})
	}
	return rows
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

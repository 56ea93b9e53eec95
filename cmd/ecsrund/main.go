package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/ecsrun/internal/appsystems"
	"github.com/l1jgo/ecsrun/internal/components"
	"github.com/l1jgo/ecsrun/internal/config"
	"github.com/l1jgo/ecsrun/internal/core/ecs"
	"github.com/l1jgo/ecsrun/internal/core/interaction"
	"github.com/l1jgo/ecsrun/internal/core/statemachine"
	coresys "github.com/l1jgo/ecsrun/internal/core/system"
	"github.com/l1jgo/ecsrun/internal/diagnostics"
	"github.com/l1jgo/ecsrun/internal/persist"
	"github.com/l1jgo/ecsrun/internal/scripting"
	"github.com/l1jgo/ecsrun/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              ecsrun runtime               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
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

func run() error {
	cfgPath := "config/runtime.toml"
	if p := os.Getenv("ECSRUN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// Diagnostics: an optional Postgres-backed timing sink. When disabled
	// the world keeps its no-op default.
	var sink ecs.TimingSink = diagnostics.NoopSink{}
	var closeSink func() error

	if cfg.Diagnostics.Enabled {
		printSection("diagnostics")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		cancel()
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}

		migCtx, migCancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = persist.RunMigrations(migCtx, db.Pool)
		migCancel()
		if err != nil {
			db.Close()
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("postgres connected and migrated")

		pgSink := diagnostics.NewPostgresSink(db.Pool, log, cfg.Diagnostics.BatchSize, cfg.Diagnostics.FlushInterval)
		sink = pgSink
		closeSink = func() error {
			err := pgSink.Close()
			db.Close()
			return err
		}
		fmt.Println()
	}

	// Scripting: a Lua engine for interaction effects.
	eng, err := scripting.NewEngine(cfg.Scripting.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer eng.Close()

	// World and registry.
	registry := ecs.NewRegistry()
	world := ecs.NewWorld(registry)
	world.SetTimingSink(sink)
	if cfg.Runtime.PauseOnStart {
		world.Pause()
	}

	labelID := registry.IDOf(components.Label{})

	// Seed initial entities from YAML.
	printSection("world seed")
	entities, err := seed.Load(cfg.Seed.BlueprintFile, world, components.Decoders())
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	printOK(fmt.Sprintf("%d entities loaded", len(entities)))

	// Give the landmark entity an interactive effect that runs a scripted
	// greeting, wiring the interaction and scripting packages together.
	for _, e := range entities {
		if v, ok := e.Get(labelID); ok {
			if l, ok := v.(components.Label); ok && l.Name == "landmark" {
				e.Add(interaction.Component{
					Effect: interaction.ScriptedEffect{Engine: eng, Function: "greet", Log: log},
				})
			}
		}
	}
	if len(entities) >= 2 {
		interaction.Interact(world, entities[0], entities[len(entities)-1])
	}
	fmt.Println()

	// Coroutine-driven state machine: the first wanderer periodically
	// announces itself, alternating a frame-count wait and a millisecond
	// wait to exercise both wait kinds.
	smRuntime := statemachine.NewRuntime(world)
	if len(entities) > 0 {
		wanderer := entities[0]
		announce := statemachine.Loop(func() []statemachine.Step {
			return []statemachine.Step{
				func() statemachine.Wait {
					log.Debug("wanderer tick", zap.Uint64("entity", uint64(wanderer.ID())))
					wanderer.SendMessage(components.Chat{Channel: 0, Text: "still wandering"})
					return smRuntime.Cache().Frames(60)
				},
				func() statemachine.Wait {
					return smRuntime.Cache().Ms(500)
				},
			}
		})
		smRuntime.Spawn(wanderer, announce)
	}

	// Systems.
	movement := appsystems.NewMovement(world)
	labelWatch := appsystems.NewLabelWatch(world, labelID, log)
	snapshot := appsystems.NewSnapshot(world)
	heartbeat := appsystems.NewPauseHeartbeat(log)
	regen := appsystems.NewRegen(world)
	chatLog := appsystems.NewChatLog(world, log)

	_, err = coresys.NewScheduler(world, movement, labelWatch, snapshot, heartbeat, regen, chatLog)
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	world.EarlyStart()
	world.Start()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Runtime.TargetTick)
	defer ticker.Stop()

	printSection("runtime ready")
	printReady(fmt.Sprintf("tick rate %s, fixed step %s", cfg.Runtime.TargetTick, cfg.Runtime.FixedStep))
	fmt.Println()

	lastTick := time.Now()
	for {
		select {
		case now := <-ticker.C:
			dt := now.Sub(lastTick)
			lastTick = now
			world.FixedUpdate(cfg.Runtime.FixedStep)
			world.Update(dt)
			smRuntime.Tick(dt.Milliseconds())
			world.LateUpdate(dt)
			world.Render(dt)
			world.EndFrame()
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			world.Exit()
			if closeSink != nil {
				if err := closeSink(); err != nil {
					log.Error("diagnostics shutdown", zap.Error(err))
				}
			}
			log.Info("runtime stopped")
			return nil
		}
	}
}

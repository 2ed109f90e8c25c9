package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sma-timetable-engine/internal/engine"
	"github.com/noah-isme/sma-timetable-engine/internal/models"
	"github.com/noah-isme/sma-timetable-engine/pkg/config"
	"github.com/noah-isme/sma-timetable-engine/pkg/dataset"
	"github.com/noah-isme/sma-timetable-engine/pkg/export"
	"github.com/noah-isme/sma-timetable-engine/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck
	sugar := logr.Sugar()

	grid := models.DefaultGrid()
	input, err := dataset.Load(cfg.Dataset, grid)
	if err != nil {
		sugar.Fatalw("failed to load dataset", "error", err)
	}
	sugar.Infow("dataset loaded",
		"requirements", len(input.Requirements),
		"teachers", len(input.Teachers),
		"classrooms", len(input.Classrooms),
		"preferences", len(input.Preferences),
	)

	metrics := engine.NewMetrics()
	if cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				sugar.Errorw("metrics server stopped", "error", err)
			}
		}()
		sugar.Infow("metrics exposed", "addr", cfg.Metrics.Addr)
	}

	eng := engine.NewEngine(validator.New(), logr, metrics)

	var best *models.ScheduleResult
	for _, strategy := range cfg.Runner.Strategies {
		runCfg := engine.Config{
			Strategy:                strategy,
			PopulationSize:          cfg.Runner.PopulationSize,
			MaxGenerations:          cfg.Runner.MaxGenerations,
			CrossoverRate:           cfg.Runner.CrossoverRate,
			MutationRate:            cfg.Runner.MutationRate,
			EliteSize:               cfg.Runner.EliteSize,
			TournamentSize:          cfg.Runner.TournamentSize,
			ConvergenceThreshold:    cfg.Runner.ConvergenceThreshold,
			GreedyImprovementRounds: cfg.Runner.GreedyImprovementRounds,
			TimeoutSeconds:          int(cfg.Runner.Timeout.Seconds()),
			Seed:                    cfg.Runner.Seed,
		}

		result, err := eng.GenerateSchedule(context.Background(), input, runCfg)
		if err != nil {
			sugar.Errorw("run failed", "strategy", strategy, "error", err)
			continue
		}

		sugar.Infow("run finished",
			"strategy", result.Strategy,
			"fitness", result.Fitness,
			"success_rate", result.SuccessRate,
			"unassigned", result.UnassignedSessions,
			"generations", result.Generations,
			"elapsed", result.Elapsed,
		)

		if best == nil || result.Fitness > best.Fitness {
			best = result
		}
	}

	if best == nil {
		sugar.Fatalw("no run produced a schedule")
	}
	sugar.Infow("best run", "strategy", best.Strategy, "fitness", best.Fitness, "run_id", best.RunID)

	if err := writeArtifacts(cfg, eng, grid, best); err != nil {
		sugar.Fatalw("failed to write artifacts", "error", err)
	}
}

func writeArtifacts(cfg *config.Config, eng *engine.Engine, grid models.TimeGrid, best *models.ScheduleResult) error {
	if !cfg.Output.WriteCSV && !cfg.Output.WritePDF {
		return nil
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	analysis := eng.AnalyzeSchedule(best, grid)

	if cfg.Output.WriteCSV {
		timetable, err := export.RenderTimetableCSV(best)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(cfg.Output.Dir, "timetable.csv"), timetable, 0o644); err != nil {
			return fmt.Errorf("write timetable csv: %w", err)
		}

		utilization, err := export.RenderUtilizationCSV(analysis)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(cfg.Output.Dir, "utilization.csv"), utilization, 0o644); err != nil {
			return fmt.Errorf("write utilization csv: %w", err)
		}
	}

	if cfg.Output.WritePDF {
		doc, err := export.RenderTimetablePDF(best, cfg.Output.PDFTitle)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(cfg.Output.Dir, "timetable.pdf"), doc, 0o644); err != nil {
			return fmt.Errorf("write timetable pdf: %w", err)
		}
	}

	return nil
}

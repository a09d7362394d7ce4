package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/teresco/tm-dataproc/internal/adapters/persistence"
	"github.com/teresco/tm-dataproc/internal/application/common"
	"github.com/teresco/tm-dataproc/internal/application/graphbuild"
	"github.com/teresco/tm-dataproc/internal/application/pipeline"
	"github.com/teresco/tm-dataproc/internal/domain/corpus"
	"github.com/teresco/tm-dataproc/internal/infrastructure/config"
	"github.com/teresco/tm-dataproc/internal/infrastructure/database"
	"github.com/teresco/tm-dataproc/internal/infrastructure/metrics"
	"github.com/teresco/tm-dataproc/internal/infrastructure/pidfile"
	"github.com/teresco/tm-dataproc/pkg/utils"
)

var (
	highwayDataFlag string
	userListsFlag   string
	errorCheckFlag  bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ingest the highway data corpus and write every derived output",
		RunE:  runRun,
	}
	cmd.Flags().StringVar(&highwayDataFlag, "highway-data", "", "Root of the highway data tree (overrides config)")
	cmd.Flags().StringVar(&userListsFlag, "user-lists", "", "Directory of *.list travel files (overrides config)")
	cmd.Flags().BoolVar(&errorCheckFlag, "error-check-only", false, "Stop after the fatal-error check; write nothing")
	return cmd
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyRunFlags(cfg)

	runID := utils.GenerateRunID("run", cfg.Paths.Database, os.Getpid())

	pf := pidfile.New(cfg.Paths.PIDFile)
	if err := pf.Acquire(); err != nil {
		return fmt.Errorf("another tmbuild run holds the output tree: %w", err)
	}
	defer pf.Release()

	logger := newConsoleLogger(verbose)
	reg := metrics.New()

	ctx := common.WithLogger(cmd.Context(), logger)
	ctx = metrics.WithRegistry(ctx, reg)

	logger.Log("INFO", "starting run", map[string]interface{}{"run_id": runID})

	start := time.Now()
	result, err := pipeline.New(cfg).Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	reg.IngestDuration.Observe(time.Since(start).Seconds())

	if n := result.Errors.Len(); n > 0 {
		logger.Log("ERROR", "fatal errors encountered; no output written", map[string]interface{}{"count": n})
		return fmt.Errorf("%d fatal error(s) during ingestion", n)
	}

	if cfg.Run.ErrorCheckOnly {
		logger.Log("INFO", "error-check-only run succeeded", nil)
		return nil
	}

	if err := persistResult(ctx, cfg, result); err != nil {
		return fmt.Errorf("persisting results: %w", err)
	}

	if !cfg.Run.SkipGraphs {
		plan := graphbuild.Plan(result.Systems, cfg.Paths.Graphs)
		if err := graphbuild.Write(result.Graph, plan, cfg.Paths.Graphs); err != nil {
			return fmt.Errorf("writing graphs: %w", err)
		}
		logger.Log("INFO", "graphs written", map[string]interface{}{"count": len(plan)})
	}

	logger.Log("INFO", "run complete", map[string]interface{}{
		"systems": len(result.Systems), "travelers": len(result.Travelers),
	})
	return nil
}

func applyRunFlags(cfg *config.Config) {
	if highwayDataFlag != "" {
		cfg.Paths.HighwayData = highwayDataFlag
	}
	if userListsFlag != "" {
		cfg.Paths.UserLists = userListsFlag
	}
	if errorCheckFlag {
		cfg.Run.ErrorCheckOnly = true
	}
}

// persistResult stages the resolved corpus into the configured database
// (relational dump), in the fixed FK-safe order
// CorpusRepository documents: systems, then per-system routes/waypoints/
// segments, then connected routes, then datacheck entries, then travelers
// and their clinched segments.
func persistResult(ctx context.Context, cfg *config.Config, result *pipeline.Result) error {
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	corpusRepo := persistence.NewCorpusRepository(db)
	if err := corpusRepo.SaveSystems(ctx, result.Systems); err != nil {
		return err
	}

	waypointIDs := make(map[*corpus.Waypoint]uint)
	segmentIDs := make(map[*corpus.HighwaySegment]uint)
	for _, sys := range result.Systems {
		if err := corpusRepo.SaveRoutes(ctx, sys, waypointIDs, segmentIDs); err != nil {
			return err
		}
	}
	for _, sys := range result.Systems {
		if err := corpusRepo.SaveConnectedRoutes(ctx, sys); err != nil {
			return err
		}
	}

	if err := persistence.NewDatacheckRepository(db).SaveAll(ctx, result.Datacheck); err != nil {
		return err
	}

	return persistence.NewTravelerRepository(db).SaveAll(ctx, result.Travelers, segmentIDs)
}

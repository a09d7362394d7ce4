package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teresco/tm-dataproc/internal/application/common"
	"github.com/teresco/tm-dataproc/internal/application/graphbuild"
	"github.com/teresco/tm-dataproc/internal/application/pipeline"
	"github.com/teresco/tm-dataproc/internal/infrastructure/config"
	"github.com/teresco/tm-dataproc/internal/infrastructure/metrics"
)

var graphsOutFlag string

// newGraphsCommand regenerates only the .tmg graph family, skipping the
// database dump entirely — useful after a graphs/*.csv directive edit that
// doesn't change the underlying corpus.
func newGraphsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "Ingest the corpus and write only the .tmg graph files",
		RunE:  runGraphs,
	}
	cmd.Flags().StringVar(&highwayDataFlag, "highway-data", "", "Root of the highway data tree (overrides config)")
	cmd.Flags().StringVar(&graphsOutFlag, "graphs", "", "Output directory for .tmg files (overrides config)")
	return cmd
}

func runGraphs(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if highwayDataFlag != "" {
		cfg.Paths.HighwayData = highwayDataFlag
	}
	if graphsOutFlag != "" {
		cfg.Paths.Graphs = graphsOutFlag
	}

	logger := newConsoleLogger(verbose)
	ctx := common.WithLogger(cmd.Context(), logger)
	ctx = metrics.WithRegistry(ctx, metrics.New())

	result, err := pipeline.New(cfg).Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	if n := result.Errors.Len(); n > 0 {
		return fmt.Errorf("%d fatal error(s) during ingestion", n)
	}

	plan := graphbuild.Plan(result.Systems, cfg.Paths.Graphs)
	if err := graphbuild.Write(result.Graph, plan, cfg.Paths.Graphs); err != nil {
		return fmt.Errorf("writing graphs: %w", err)
	}
	logger.Log("INFO", "graphs written", map[string]interface{}{"count": len(plan)})
	return nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/capsidlab/jrfatlas/logger"
	"github.com/capsidlab/jrfatlas/pkg/config"
	"github.com/capsidlab/jrfatlas/pkg/db"
	"github.com/capsidlab/jrfatlas/pkg/fetch"
	"github.com/capsidlab/jrfatlas/pkg/stage"
)

var (
	enrichSeeds      bool
	refreshDomains   bool
	lookupStructures bool
)

// withPipeline builds the shared dependencies and hands a ready pipeline
// to the command body. The provenance catalog is best-effort: a broken
// catalog file must not block a data run.
func withPipeline(body func(ctx context.Context, p *stage.Pipeline) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client := fetch.NewClient(cfg.HTTP.Timeout, cfg.HTTP.RateDelay, cfg.HTTP.UserAgent)

		catalog, err := db.Open(cfg.Catalog.Path)
		if err != nil {
			logger.Warn("run catalog unavailable", zap.String("path", cfg.Catalog.Path), zap.Error(err))
			catalog = nil
		}
		defer catalog.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return body(ctx, stage.New(cfg, client, catalog))
	}
}

func main() {
	// .env is optional outside development setups.
	_ = godotenv.Load()
	if err := logger.InitFromEnv(); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	root := &cobra.Command{
		Use:           "jrfatlas",
		Short:         "Curate the jelly-roll fold capsid protein atlas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the curated seed protein table",
		RunE: withPipeline(func(ctx context.Context, p *stage.Pipeline) error {
			return p.Seed(ctx, enrichSeeds)
		}),
	}
	seedCmd.Flags().BoolVar(&enrichSeeds, "enrich", false,
		"cross-check seed entries against live UniProt (live mode only)")

	domainsCmd := &cobra.Command{
		Use:   "domains",
		Short: "Write the PFAM reference table and seed domain mapping",
		RunE: withPipeline(func(ctx context.Context, p *stage.Pipeline) error {
			return p.Domains(ctx, refreshDomains)
		}),
	}
	domainsCmd.Flags().BoolVar(&refreshDomains, "refresh", false,
		"refresh seed domain mappings from InterPro (live mode only)")

	expandCmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand capsid domains to candidate proteins and clean the hits",
		RunE: withPipeline(func(ctx context.Context, p *stage.Pipeline) error {
			return p.Expand(ctx)
		}),
	}

	annotateCmd := &cobra.Command{
		Use:   "annotate",
		Short: "Build the annotated master table and high-confidence subset",
		RunE: withPipeline(func(ctx context.Context, p *stage.Pipeline) error {
			return p.Annotate(ctx, lookupStructures)
		}),
	}
	annotateCmd.Flags().BoolVar(&lookupStructures, "structures", false,
		"look up best structures per protein (live mode only)")

	structureCmd := &cobra.Command{
		Use:   "structure",
		Short: "Compare the structure panel, cluster it, and build the domain graph",
		RunE: withPipeline(func(ctx context.Context, p *stage.Pipeline) error {
			return p.Structure(ctx)
		}),
	}

	synthesizeCmd := &cobra.Command{
		Use:   "synthesize",
		Short: "Condense the master table into report tables and figures",
		RunE: withPipeline(func(ctx context.Context, p *stage.Pipeline) error {
			return p.Synthesize(ctx)
		}),
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run every stage in order",
		RunE: withPipeline(func(ctx context.Context, p *stage.Pipeline) error {
			return p.RunAll(ctx, stage.RunOptions{
				EnrichSeeds:      enrichSeeds,
				RefreshDomains:   refreshDomains,
				LookupStructures: lookupStructures,
			})
		}),
	}
	runCmd.Flags().BoolVar(&enrichSeeds, "enrich", false,
		"cross-check seed entries against live UniProt (live mode only)")
	runCmd.Flags().BoolVar(&refreshDomains, "refresh", false,
		"refresh seed domain mappings from InterPro (live mode only)")
	runCmd.Flags().BoolVar(&lookupStructures, "structures", false,
		"look up best structures per protein (live mode only)")

	root.AddCommand(seedCmd, domainsCmd, expandCmd, annotateCmd, structureCmd, synthesizeCmd, runCmd)

	if err := root.Execute(); err != nil {
		logger.Error("pipeline failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

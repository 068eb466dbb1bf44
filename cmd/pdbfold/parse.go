package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/pdbfold/internal/batch"
	"github.com/danmuck/pdbfold/internal/config"
	"github.com/danmuck/pdbfold/internal/observability"
	"github.com/danmuck/pdbfold/internal/pdb"
	"github.com/danmuck/pdbfold/internal/pdb/record"
	"github.com/danmuck/pdbfold/internal/render"
)

type parseFlags struct {
	strict          bool
	failFast        bool
	workers         int
	format          string
	metricsTextfile string
	records         []string
}

func newParseCmd(a *app) *cobra.Command {
	f := &parseFlags{}
	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse PDB files and print their continuation records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, f, args)
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&f.strict, "strict", false, "fail on the first bad REVDAT entry instead of substituting a sentinel")
	flags.BoolVar(&f.failFast, "fail-fast", false, "stop the batch at the first failing file")
	flags.IntVar(&f.workers, "workers", 0, "files parsed concurrently (default from config)")
	flags.StringVar(&f.format, "format", "", "output format: json|yaml")
	flags.StringVar(&f.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file")
	flags.StringSliceVar(&f.records, "records", nil, "record tags to parse (default all)")
	return cmd
}

// mergeParseFlags applies flags the user set on top of the loaded config.
func mergeParseFlags(cmd *cobra.Command, cfg config.Config, f *parseFlags) config.Config {
	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Strict = f.strict
	}
	if flags.Changed("fail-fast") {
		cfg.FailFast = f.failFast
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("format") {
		cfg.Format = f.format
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile = f.metricsTextfile
	}
	if flags.Changed("records") {
		cfg.Records = f.records
	}
	return cfg
}

func runParse(cmd *cobra.Command, a *app, f *parseFlags, paths []string) error {
	cfg := mergeParseFlags(cmd, a.cfg, f)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	reg, err := pdb.DefaultRegistry(cfg.Records...)
	if err != nil {
		return err
	}

	policy := record.PolicySentinel
	if cfg.Strict {
		policy = record.PolicyStrict
	}
	runner, err := batch.NewRunner(batch.Options{
		Workers:  cfg.Workers,
		FailFast: cfg.FailFast,
		Parse:    pdb.Options{Policy: policy},
		Registry: reg,
	})
	if err != nil {
		return err
	}

	sum, runErr := runner.Run(cmd.Context(), paths)
	if err := render.Write(cmd.OutOrStdout(), format, sum); err != nil {
		return err
	}
	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		log.Debug().Str("path", cfg.MetricsTextfile).Msg("metrics written")
	}
	if runErr != nil {
		return runErr
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", sum.Failed, len(paths))
	}
	return nil
}

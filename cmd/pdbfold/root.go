package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danmuck/pdbfold/internal/config"
	"github.com/danmuck/pdbfold/internal/logging"
)

// app carries state resolved by the root command for its subcommands.
type app struct {
	cfgFile  string
	verbose  bool
	logLevel string
	cfg      config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "pdbfold",
		Short: "Fold and parse PDB continuation records",
		Long: `pdbfold reassembles multi-line PDB records (COMPND, SOURCE, REVDAT,
TITLE, KEYWDS, EXPDTA, AUTHOR) and prints them as typed JSON or YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "TOML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "trace|debug|info|warn|error|off")

	root.AddCommand(newParseCmd(a), newTokensCmd(a), newConfigCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.cfgFile != "" {
		loaded, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	level, ok := logging.ParseLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if a.verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	lc := logging.Resolve(logging.ProfileRuntime)
	lc.Level = level
	lc.Out = cmd.ErrOrStderr()
	logging.Apply(lc)
	return nil
}

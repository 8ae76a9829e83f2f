package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taxdesk/tds-calculator/internal/calculation"
	"github.com/taxdesk/tds-calculator/internal/config"
	"github.com/taxdesk/tds-calculator/internal/domain"
	"github.com/taxdesk/tds-calculator/internal/logging"
)

// app holds what every subcommand needs once flags are parsed
type app struct {
	configFile string
	rulesFile  string
	verbose    bool

	settings *config.Settings
	logger   zerolog.Logger
	registry *domain.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tdscalc",
		Short: "TDS determination and late-deposit interest for FY 2025-26",
		Long: `tdscalc resolves the deductee category, applicable rate and threshold for a
payment under the Income Tax Act, computes the TDS, its deposit due date and the
interest owed on late deposit. It works on single payments, on .xlsx/.csv batches,
and as an HTTP service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "settings file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&a.rulesFile, "rules", "", "rule table yaml (defaults to the built-in FY 2025-26 table)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newCalculateCmd(a),
		newSectionsCmd(a),
		newBulkCmd(a),
		newTemplateCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.configFile)
	if err != nil {
		return err
	}
	if a.rulesFile != "" {
		settings.Engine.RulesPath = a.rulesFile
	}
	if a.verbose {
		settings.Log.Level = "debug"
	}
	a.settings = settings
	a.logger = logging.New(cmd.ErrOrStderr(), settings.Log.Level, settings.Log.Format)

	reg, err := config.LoadRegistry(settings.Engine.RulesPath)
	if err != nil {
		return err
	}
	a.registry = reg
	a.logger.Debug().Str("rules", reg.Version).Int("sections", reg.Len()).Msg("rule table loaded")
	return nil
}

// engine builds a calculation engine from the loaded settings. obs may be nil.
func (a *app) engine(obs calculation.Observer) (*calculation.Engine, error) {
	engine, err := calculation.NewEngineWithConfig(a.registry, calculation.EngineConfig{
		Convention: calculation.MonthConvention(a.settings.Engine.InterestConvention),
		Workers:    a.settings.Bulk.Workers,
	})
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logging.NewAdapter(a.logger, "engine"))
	engine.SetObserver(obs)
	return engine, nil
}

func writeOut(cmd *cobra.Command, b []byte) error {
	if _, err := cmd.OutOrStdout().Write(b); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

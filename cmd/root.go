package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phy132/kirchhoff/internal/config"
	"github.com/phy132/kirchhoff/internal/logging"
	"github.com/phy132/kirchhoff/internal/store"
)

// cli holds the global flags and what PersistentPreRunE builds from them.
type cli struct {
	configPath   string
	dbPath       string
	problemsPath string
	answersPath  string
	verbose      bool
	noColor      bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "kirchhoff",
		Short: "Grade Kirchhoff's-law equations and branch currents",
		Long: "kirchhoff checks student equations and currents for the two-loop " +
			"resistor circuit against each problem set's reference solution.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "kirchhoff.yaml", "Path to YAML config file (missing file uses defaults)")
	pf.StringVar(&c.dbPath, "db", "", "Attempt database (overrides KIRCHHOFF_DB env var)")
	pf.StringVar(&c.problemsPath, "problems", "", "Path to problems.json (overrides config)")
	pf.StringVar(&c.answersPath, "answers", "", "Path to answers.json (overrides config)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&c.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newCheckEquationsCmd(c),
		newCheckCurrentsCmd(c),
		newSolveCmd(c),
		newValidateCmd(c),
		newHistoryCmd(c),
		newConfigCmd(c),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// setup loads the config, applies flag overrides and builds the logger.
func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.problemsPath != "" {
		cfg.Data.Problems = c.problemsPath
	}
	if c.answersPath != "" {
		cfg.Data.Answers = c.answersPath
	}
	if c.dbPath != "" {
		cfg.Database.DSN = c.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Logging, c.verbose)
	if err != nil {
		return err
	}
	c.cfg, c.logger = cfg, logger
	return nil
}

// resolveDBPath returns the database DSN using --db (highest priority),
// then the config file and KIRCHHOFF_DB, then the default XDG path.
func (c *cli) resolveDBPath() (string, error) {
	dsn, err := c.cfg.DatabaseDSN()
	if err != nil {
		return "", err
	}
	if c.cfg.Database.Driver == store.DriverSQLite {
		return dsn, store.EnsureDir(dsn)
	}
	return dsn, nil
}

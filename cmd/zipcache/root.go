package main

import (
	"github.com/goliatone/go-zipcache/config"
	"github.com/goliatone/go-zipcache/pkg/di"
	"github.com/spf13/cobra"
)

// annotationContainer marks commands that need the wired container.
const annotationContainer = "zipcache/container"

// needsContainer is the annotation set for commands that resolve or touch the store.
var needsContainer = map[string]string{annotationContainer: "true"}

// app carries state shared by the subcommands of one invocation.
type app struct {
	container *di.Container

	driver    string
	dsn       string
	logLevel  string
	logFormat string
	noCache   bool
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "zipcache [sub-command]",
		Short: "Resolve postal codes to addresses through a persistent cache",
		Long: `zipcache serves addresses from a persistent cache keyed by postal code and
  consults the configured providers on a miss. Settings are read from ZIPCACHE_*
  environment variables; flags override them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
		DisableAutoGenTag: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.driver, "driver", "", "store driver: sqlite3, postgres or memory")
	flags.StringVar(&a.dsn, "dsn", "", "database connection string")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	flags.BoolVar(&a.noCache, "no-cache", false, "disable the in-process read-through cache")

	cmd.AddCommand(newResolveCmd(a), newSeedCmd(a), newMigrateCmd(a))
	return cmd, a
}

func (a *app) setup(cmd *cobra.Command) error {
	// help and completion commands run without a store
	if cmd.Annotations[annotationContainer] != "true" {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.applyFlags(&cfg)

	logger := cfg.Log.NewLogger(cmd.ErrOrStderr())
	container, err := di.NewContainer(cmd.Context(), cfg, di.WithLogger(logger))
	if err != nil {
		return err
	}
	a.container = container
	return nil
}

func (a *app) applyFlags(cfg *config.Config) {
	if a.driver != "" {
		cfg.Database.Driver = a.driver
	}
	if a.dsn != "" {
		cfg.Database.DSN = a.dsn
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if a.noCache {
		cfg.Cache.Enabled = false
	}
}

func (a *app) teardown() error {
	if a.container == nil {
		return nil
	}
	err := a.container.Close()
	a.container = nil
	return err
}

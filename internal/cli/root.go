package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-engine/internal/catalog"
	"options-engine/internal/config"
	"options-engine/internal/logging"
	"options-engine/internal/models"
	"options-engine/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.DataStore
}

// LoadCatalog returns the configured strategy catalog for a spot
// price: the built-in one unless a catalog file is configured.
func (a *App) LoadCatalog(spot float64) ([]models.Strategy, error) {
	if a.Config.Data.CatalogPath != "" {
		return catalog.LoadFile(a.Config.Data.CatalogPath)
	}
	return catalog.Default(spot), nil
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	dataStore, err := store.NewSQLiteStore(cfg.Data.DatabasePath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, data commands will be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "optengine",
		Short: "Options pricing and market-regime analysis engine",
		Long: `optengine prices European options with the Black-Scholes model,
solves implied volatility, checks put-call parity for arbitrage, and
classifies price history into a market regime to rank candidate option
strategies.

Use 'optengine help <command>' for more information about a command.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/options-engine)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addPricerCommands(rootCmd, app)
	addAnalyzerCommands(rootCmd, app)
	addDataCommands(rootCmd, app)
	addCatalogCommands(rootCmd, app)

	return rootCmd
}

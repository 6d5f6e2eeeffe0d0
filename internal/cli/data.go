package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-engine/internal/marketdata"
)

// addDataCommands adds price-history data commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Manage stored price history",
	}
	dataCmd.AddCommand(newDataImportCmd(app))
	dataCmd.AddCommand(newDataShowCmd(app))
	rootCmd.AddCommand(dataCmd)
}

func newDataImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import OHLCV history from a CSV file",
		Long: `Import price history from a CSV file with columns
date,open,high,low,close,volume. Existing rows for the same symbol and
timestamp are replaced.`,
		Example: `  optengine data import history/AAPL.csv --symbol AAPL`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			symbol, _ := cmd.Flags().GetString("symbol")
			symbol = strings.ToUpper(symbol)
			if symbol == "" {
				output.Error("--symbol is required")
				return fmt.Errorf("symbol required")
			}
			if app.Store == nil {
				output.Error("Store not available")
				return fmt.Errorf("store not available")
			}

			points, err := marketdata.LoadCSV(args[0])
			if err != nil {
				output.Error("Import failed: %v", err)
				return err
			}
			if err := app.Store.SavePricePoints(ctx, symbol, points); err != nil {
				output.Error("Save failed: %v", err)
				return err
			}

			app.Logger.Info().
				Str("symbol", symbol).
				Int("points", len(points)).
				Msg("Price history imported")
			output.Success("Imported %d points for %s", len(points), symbol)
			return nil
		},
	}
	cmd.Flags().String("symbol", "", "symbol to store the history under")
	return cmd
}

func newDataShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show <symbol>",
		Short:   "Show stored price history for a symbol",
		Example: `  optengine data show AAPL --limit 10`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			symbol := strings.ToUpper(args[0])
			limit, _ := cmd.Flags().GetInt("limit")
			if app.Store == nil {
				output.Error("Store not available")
				return fmt.Errorf("store not available")
			}

			points, err := app.Store.GetPricePoints(ctx, symbol, limit)
			if err != nil {
				output.Error("Query failed: %v", err)
				return err
			}
			if len(points) == 0 {
				output.Warning("No history stored for %s", symbol)
				return nil
			}

			if output.IsJSON() {
				return output.JSON(points)
			}
			output.Bold("%-12s %10s %10s %10s %10s %12s", "DATE", "OPEN", "HIGH", "LOW", "CLOSE", "VOLUME")
			for _, p := range points {
				output.Printf("%-12s %10.2f %10.2f %10.2f %10.2f %12d\n",
					p.Timestamp.Format("2006-01-02"), p.Open, p.High, p.Low, p.Close, p.Volume)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 60, "maximum number of recent points to show")
	return cmd
}

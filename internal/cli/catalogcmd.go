package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"options-engine/internal/models"
	"options-engine/pkg/utils"
)

// addCatalogCommands adds strategy catalog commands.
func addCatalogCommands(rootCmd *cobra.Command, app *App) {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the strategy catalog",
	}
	catalogCmd.AddCommand(newCatalogListCmd(app))
	catalogCmd.AddCommand(newCatalogShowCmd(app))
	rootCmd.AddCommand(catalogCmd)
}

func newCatalogListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List catalog strategies and their tags",
		Example: `  optengine catalog list --spot 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			spot, _ := cmd.Flags().GetFloat64("spot")

			strategies, err := app.LoadCatalog(spot)
			if err != nil {
				output.Error("Failed to load catalog: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(strategies)
			}
			output.Bold("%-18s %-24s %-12s %-8s %-8s %-12s", "ID", "NAME", "REGIME", "TREND", "VOL", "COMPLEXITY")
			for _, s := range strategies {
				output.Printf("%-18s %-24s %-12s %-8s %-8s %-12s\n",
					s.ID, s.Name, s.Regime, s.MarketCondition, s.VolatilityBias, s.Complexity)
			}
			return nil
		},
	}
	cmd.Flags().Float64("spot", 100, "spot price used to derive built-in strikes")
	return cmd
}

func newCatalogShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show <id>",
		Short:   "Show one catalog strategy in detail",
		Example: `  optengine catalog show iron-condor --spot 200`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			spot, _ := cmd.Flags().GetFloat64("spot")

			strategies, err := app.LoadCatalog(spot)
			if err != nil {
				output.Error("Failed to load catalog: %v", err)
				return err
			}

			var found *models.Strategy
			for i := range strategies {
				if strategies[i].ID == args[0] {
					found = &strategies[i]
					break
				}
			}
			if found == nil {
				output.Error("Strategy %q not found", args[0])
				return fmt.Errorf("strategy not found")
			}

			if output.IsJSON() {
				return output.JSON(found)
			}
			output.Bold("%s — %s", found.ID, found.Name)
			output.Printf("  %s\n", found.Description)
			output.Printf("  Regime: %s  Condition: %s  Vol bias: %s  Decay: %s\n",
				found.Regime, found.MarketCondition, found.VolatilityBias, found.TimeDecay)
			if found.MaxProfit != nil {
				output.Printf("  Max profit: %s\n", utils.FormatCurrency(*found.MaxProfit))
			} else {
				output.Printf("  Max profit: unlimited\n")
			}
			if found.MaxLoss != nil {
				output.Printf("  Max loss:   %s\n", utils.FormatCurrency(*found.MaxLoss))
			} else {
				output.Printf("  Max loss:   unlimited\n")
			}
			for _, leg := range found.Legs {
				output.Printf("  Leg: %s %s @ %.2f exp %s qty %d price %s\n",
					leg.Action, leg.Type, leg.Strike,
					leg.Expiration.Format("2006-01-02"), leg.Quantity,
					utils.FormatCurrency(leg.Price))
			}
			return nil
		},
	}
	cmd.Flags().Float64("spot", 100, "spot price used to derive built-in strikes")
	return cmd
}

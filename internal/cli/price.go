package cli

import (
	"github.com/spf13/cobra"

	"options-engine/internal/models"
	"options-engine/internal/pricing"
	"options-engine/pkg/utils"
)

// addPricerCommands adds the Black-Scholes pricer commands.
func addPricerCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newGreeksCmd(app))
	rootCmd.AddCommand(newIVCmd(app))
	rootCmd.AddCommand(newParityCmd(app))
}

// addPricingFlags registers the shared Black-Scholes input flags.
func addPricingFlags(cmd *cobra.Command, withVol bool) {
	cmd.Flags().Float64P("spot", "S", 0, "underlying spot price")
	cmd.Flags().Float64P("strike", "K", 0, "strike price")
	cmd.Flags().Float64P("rate", "r", 0.05, "annual risk-free rate")
	cmd.Flags().Float64P("years", "T", 0, "time to expiry in years")
	if withVol {
		cmd.Flags().Float64("vol", 0, "annualized volatility (e.g. 0.25)")
	}
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("years")
}

func optionTypeFlag(cmd *cobra.Command) models.OptionType {
	typ, _ := cmd.Flags().GetString("type")
	return models.OptionType(typ)
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Black-Scholes theoretical price for a European option",
		Example: `  optengine price -S 100 -K 105 -r 0.05 --vol 0.25 -T 0.5 --type call
  optengine price -S 200 -K 190 --vol 0.40 -T 0.25 --type put --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			spot, _ := cmd.Flags().GetFloat64("spot")
			strike, _ := cmd.Flags().GetFloat64("strike")
			rate, _ := cmd.Flags().GetFloat64("rate")
			vol, _ := cmd.Flags().GetFloat64("vol")
			years, _ := cmd.Flags().GetFloat64("years")
			typ := optionTypeFlag(cmd)

			price, err := pricing.Price(spot, strike, rate, vol, years, typ)
			if err != nil {
				output.Error("Pricing failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"type":  typ,
					"price": price,
				})
			}
			output.Bold("%s theoretical price: %s", typ, utils.FormatCurrency(price))
			return nil
		},
	}
	addPricingFlags(cmd, true)
	cmd.Flags().String("type", "call", "option type (call|put)")
	cmd.MarkFlagRequired("vol")
	return cmd
}

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Greeks for a European option",
		Long: `Compute delta, gamma, theta and vega for one set of pricing inputs.
Theta is decay per calendar day; vega is per 1-point volatility move.`,
		Example: `  optengine greeks -S 100 -K 105 -r 0.05 --vol 0.25 -T 0.5 --type call`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			spot, _ := cmd.Flags().GetFloat64("spot")
			strike, _ := cmd.Flags().GetFloat64("strike")
			rate, _ := cmd.Flags().GetFloat64("rate")
			vol, _ := cmd.Flags().GetFloat64("vol")
			years, _ := cmd.Flags().GetFloat64("years")
			typ := optionTypeFlag(cmd)

			greeks, err := pricing.ComputeGreeks(spot, strike, rate, vol, years, typ)
			if err != nil {
				output.Error("Greeks computation failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(greeks)
			}
			output.Bold("%s greeks", typ)
			output.Printf("  Delta: %8.4f\n", greeks.Delta)
			output.Printf("  Gamma: %8.4f\n", greeks.Gamma)
			output.Printf("  Theta: %8.4f /day\n", greeks.Theta)
			output.Printf("  Vega:  %8.4f /vol-pt\n", greeks.Vega)
			return nil
		},
	}
	addPricingFlags(cmd, true)
	cmd.Flags().String("type", "call", "option type (call|put)")
	cmd.MarkFlagRequired("vol")
	return cmd
}

func newIVCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iv",
		Short: "Implied volatility from an observed option price",
		Example: `  optengine iv --price 7.50 -S 100 -K 105 -r 0.05 -T 0.5 --type call`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			marketPrice, _ := cmd.Flags().GetFloat64("price")
			spot, _ := cmd.Flags().GetFloat64("spot")
			strike, _ := cmd.Flags().GetFloat64("strike")
			rate, _ := cmd.Flags().GetFloat64("rate")
			years, _ := cmd.Flags().GetFloat64("years")
			typ := optionTypeFlag(cmd)

			sigma, converged, err := pricing.ImpliedVolatility(marketPrice, spot, strike, rate, years, typ)
			if err != nil {
				output.Error("Implied volatility failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"implied_volatility": sigma,
					"converged":          converged,
				})
			}
			output.Bold("Implied volatility: %.4f (%.1f%%)", sigma, sigma*100)
			if !converged {
				output.Warning("Solver did not converge; value is a best-effort estimate")
			}
			return nil
		},
	}
	addPricingFlags(cmd, false)
	cmd.Flags().Float64("price", 0, "observed option market price")
	cmd.Flags().String("type", "call", "option type (call|put)")
	cmd.MarkFlagRequired("price")
	return cmd
}

func newParityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parity",
		Short: "Put-call parity arbitrage check",
		Example: `  optengine parity --call 5.00 --put 3.00 -S 100 -K 98 -r 0.05 -T 0.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			callPrice, _ := cmd.Flags().GetFloat64("call")
			putPrice, _ := cmd.Flags().GetFloat64("put")
			spot, _ := cmd.Flags().GetFloat64("spot")
			strike, _ := cmd.Flags().GetFloat64("strike")
			rate, _ := cmd.Flags().GetFloat64("rate")
			years, _ := cmd.Flags().GetFloat64("years")

			result, err := pricing.FindArbitrageOpportunity(callPrice, putPrice, spot, strike, rate, years)
			if err != nil {
				output.Error("Parity check failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			output.Printf("Parity (S - PV(K)):  %s\n", utils.FormatSigned(result.PutCallParity))
			output.Printf("Residual:            %s\n", utils.FormatSigned(result.Difference))
			if result.HasArbitrage {
				output.Warning("Arbitrage opportunity: %s", result.Strategy)
			} else {
				output.Success("No arbitrage opportunity")
			}
			return nil
		},
	}
	addPricingFlags(cmd, false)
	cmd.Flags().Float64("call", 0, "observed call price")
	cmd.Flags().Float64("put", 0, "observed put price")
	cmd.MarkFlagRequired("call")
	cmd.MarkFlagRequired("put")
	return cmd
}

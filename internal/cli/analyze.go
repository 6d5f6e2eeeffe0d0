package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-engine/internal/errors"
	"options-engine/internal/logging"
	"options-engine/internal/marketdata"
	"options-engine/internal/models"
	"options-engine/internal/regime"
	"options-engine/pkg/utils"
)

// addAnalyzerCommands adds the regime analyzer commands.
func addAnalyzerCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newRegimeCmd(app))
	rootCmd.AddCommand(newRecommendCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
}

// loadHistory fetches the trailing price history for a symbol from the
// store and resolves the current price from the newest close.
func (a *App) loadHistory(ctx context.Context, symbol string) ([]models.PricePoint, float64, error) {
	if a.Store == nil {
		return nil, 0, fmt.Errorf("store not available")
	}
	provider := marketdata.NewStoreProvider(a.Store)
	series, err := provider.History(ctx, symbol, a.Config.Analysis.MinHistory)
	if err != nil {
		return nil, 0, err
	}
	if len(series) == 0 {
		return nil, 0, errors.NewDataError("history", symbol, "no price history; run 'optengine data import' first", errors.ErrDataNotFound)
	}
	return series, series[len(series)-1].Close, nil
}

func newRegimeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regime <symbol>",
		Short: "Classify the current market regime for a symbol",
		Example: `  optengine regime AAPL
  optengine regime SPY --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			symbol := strings.ToUpper(args[0])
			series, currentPrice, err := app.loadHistory(ctx, symbol)
			if err != nil {
				output.Error("Failed to load history: %v", err)
				return err
			}

			r, err := regime.AnalyzeRegime(series, currentPrice)
			if err != nil {
				output.Error("Regime analysis failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(r)
			}
			printRegime(output, symbol, r)
			return nil
		},
	}
	return cmd
}

func newRecommendCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <symbol>",
		Short: "Rank catalog strategies against the current regime",
		Example: `  optengine recommend AAPL
  optengine recommend TSLA --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			symbol := strings.ToUpper(args[0])
			series, currentPrice, err := app.loadHistory(ctx, symbol)
			if err != nil {
				output.Error("Failed to load history: %v", err)
				return err
			}

			r, err := regime.AnalyzeRegime(series, currentPrice)
			if err != nil {
				output.Error("Regime analysis failed: %v", err)
				return err
			}

			strategies, err := app.LoadCatalog(currentPrice)
			if err != nil {
				output.Error("Failed to load catalog: %v", err)
				return err
			}

			recs, err := regime.GetStrategyRecommendations(r, currentPrice, strategies, app.Config.Analysis.RiskFreeRate)
			if err != nil {
				output.Error("Recommendation failed: %v", err)
				return err
			}

			logger := logging.WithSymbol(app.Logger, symbol)
			for _, rec := range recs {
				logging.LogRecommendation(logger, symbol, rec.Strategy.ID, rec.Confidence, rec.BlackScholes.Edge)
			}

			if output.IsJSON() {
				return output.JSON(recs)
			}
			printRegime(output, symbol, r)
			printRecommendations(output, recs)
			return nil
		},
	}
	return cmd
}

func newAnalyzeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <symbol>",
		Short: "Full regime analysis with insights and risk factors",
		Long: `Run the full pipeline: regime classification, strategy
recommendation, market insights and risk factors. The result is
persisted for later review. With --watch the analysis repeats at the
configured refresh interval.`,
		Example: `  optengine analyze AAPL
  optengine analyze SPY --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])
			watch, _ := cmd.Flags().GetBool("watch")

			runOnce := func() error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				series, currentPrice, err := app.loadHistory(ctx, symbol)
				if err != nil {
					output.Error("Failed to load history: %v", err)
					return err
				}

				strategies, err := app.LoadCatalog(currentPrice)
				if err != nil {
					output.Error("Failed to load catalog: %v", err)
					return err
				}

				analysis, err := regime.PerformRegimeAnalysis(series, currentPrice, strategies)
				if err != nil {
					output.Error("Analysis failed: %v", err)
					return err
				}

				logger := logging.WithSymbol(app.Logger, symbol)
				logging.LogAnalysis(logger, symbol,
					string(analysis.CurrentRegime.Type),
					string(analysis.CurrentRegime.Trend),
					analysis.CurrentRegime.Confidence,
					len(analysis.Recommendations))

				if app.Store != nil {
					if err := app.Store.SaveAnalysis(ctx, symbol, &analysis); err != nil {
						logger.Warn().Err(err).Msg("Failed to persist analysis")
					}
				}

				if output.IsJSON() {
					return output.JSON(analysis)
				}
				printAnalysis(output, symbol, analysis)
				return nil
			}

			if err := runOnce(); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ticker := time.NewTicker(app.Config.Analysis.RefreshInterval)
			defer ticker.Stop()
			for range ticker.C {
				output.Println()
				if err := runOnce(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("watch", false, "repeat at the configured refresh interval")
	return cmd
}

func printRegime(output *Output, symbol string, r models.MarketRegime) {
	output.Bold("%s — %s regime (%s)", symbol, r.Type, r.Timeframe)
	switch r.Trend {
	case models.TrendBullish:
		output.Bullish("  Trend:      %s", r.Trend)
	case models.TrendBearish:
		output.Bearish("  Trend:      %s", r.Trend)
	default:
		output.Printf("  Trend:      %s\n", r.Trend)
	}
	output.Printf("  Volatility: %s\n", r.Volatility)
	output.Printf("  Momentum:   %s\n", utils.FormatPercent(r.Momentum))
	output.Printf("  Confidence: %.0f%%\n", r.Confidence)
}

func printRecommendations(output *Output, recs []models.StrategyRecommendation) {
	if len(recs) == 0 {
		output.Dim("No strategies cleared the confidence bar for this regime")
		return
	}
	for i, rec := range recs {
		output.Println()
		output.Bold("%d. %s (%.0f%% confidence)", i+1, rec.Strategy.Name, rec.Confidence)
		output.Printf("   Theoretical: %s  Market: %s  Edge: %s\n",
			utils.FormatCurrency(rec.BlackScholes.TheoreticalPrice),
			utils.FormatCurrency(rec.BlackScholes.MarketPrice),
			utils.FormatSigned(rec.BlackScholes.Edge))
		output.Printf("   Max profit: %s  Max loss: %s  PoP: %.0f%%\n",
			utils.FormatCurrency(rec.RiskReward.MaxProfit),
			utils.FormatCurrency(rec.RiskReward.MaxLoss),
			rec.RiskReward.ProbabilityOfProfit)
		for _, reason := range rec.Reasoning {
			output.Dim("   - %s", reason)
		}
	}
}

func printAnalysis(output *Output, symbol string, analysis models.RegimeAnalysis) {
	printRegime(output, symbol, analysis.CurrentRegime)
	printRecommendations(output, analysis.Recommendations)

	if len(analysis.MarketInsights) > 0 {
		output.Println()
		output.Bold("Market insights")
		for _, insight := range analysis.MarketInsights {
			output.Info("  - %s", insight)
		}
	}
	if len(analysis.RiskFactors) > 0 {
		output.Println()
		output.Bold("Risk factors")
		for _, factor := range analysis.RiskFactors {
			output.Warning("  - %s", factor)
		}
	}
}

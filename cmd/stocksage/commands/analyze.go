package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker]",
	Short: "Run a one-shot analysis for a ticker",
	Long: `Fetches market data for a ticker, scores it and prints the
recommendation to the console.

Example:
  go run ./cmd/stocksage analyze AAPL
  go run ./cmd/stocksage analyze TSLA --timeout 30s`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeTimeout time.Duration

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 60*time.Second, "overall deadline for the analysis")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ticker := strings.ToUpper(strings.TrimSpace(args[0]))

	_, log, acquirer, engine, err := buildStack()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	log.WithField("ticker", ticker).Info("Fetching market data")

	snapshot, news, err := acquirer.Acquire(ctx, ticker)
	if err != nil {
		return fmt.Errorf("fetch stock data for %s: %w", ticker, err)
	}

	result := engine.Analyze(snapshot, news)

	fmt.Printf("\n=== %s (%s) ===\n", result.CompanyName, result.Ticker)
	if result.Sector != nil {
		fmt.Printf("Sector:       %s\n", *result.Sector)
	}
	fmt.Printf("Price:        $%.2f (%+.2f%% today)\n", result.CurrentPrice, result.PriceChange24h)
	if result.Volume != nil {
		fmt.Printf("Volume:       %s\n", humanize.Comma(*result.Volume))
	}
	if result.MarketCap != nil {
		fmt.Printf("Market cap:   $%s\n", humanize.Comma(*result.MarketCap))
	}
	fmt.Printf("Data source:  %s\n", result.DataSource)

	fmt.Println("\nScores:")
	fmt.Printf("  Technical:    %d\n", result.TechnicalScore)
	fmt.Printf("  Fundamental:  %d\n", result.FundamentalScore)
	fmt.Printf("  Sentiment:    %d\n", result.SentimentScore)

	fmt.Printf("\nRecommendation: %s (confidence %d%%)\n", result.OverallPrediction, result.ConfidenceLevel)
	fmt.Printf("Time horizon:   %s\n", result.TimeHorizon)
	fmt.Printf("Price targets:  $%.2f / $%.2f / $%.2f\n",
		result.PriceTargets.Conservative,
		result.PriceTargets.Moderate,
		result.PriceTargets.Optimistic)

	fmt.Println("\nStrengths:")
	for _, s := range result.KeyStrengths {
		fmt.Printf("  + %s\n", s)
	}
	fmt.Println("Risks:")
	for _, r := range result.KeyRisks {
		fmt.Printf("  - %s\n", r)
	}

	fmt.Printf("\n%s\n", result.Reasoning)

	if len(result.News) > 0 {
		fmt.Println("\nRecent news:")
		for _, item := range result.News {
			fmt.Printf("  • %s (%s)\n", item.Headline, item.Source)
		}
	}

	return nil
}

package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stocksage",
	Short: "StockSage - multi-factor stock analysis service",
	Long: `StockSage Unified CLI

Ticker-driven investment assessment backed by Alpha Vantage and Yahoo
Finance market data with Finnhub news.

Usage:
  go run ./cmd/stocksage [command]

Examples:
  go run ./cmd/stocksage api
  go run ./cmd/stocksage analyze AAPL`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

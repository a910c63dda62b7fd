package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "tagger",
		Short:        "Export contract tags for liquidity pool tokens from a subgraph",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch all pools and write their contract tags",
		RunE:  runFetch,
	}

	fetchCmd.Flags().String("chain-id", "1", "chain id to fetch")
	fetchCmd.Flags().String("api-key", "", "subgraph gateway API key")
	fetchCmd.Flags().String("out", "./data/tags.jsonl", "output file path")
	fetchCmd.Flags().String("format", "jsonl", "output format (jsonl, json, yaml)")
	fetchCmd.Flags().String("sqlite", "", "optional SQLite database path")
	fetchCmd.Flags().String("pg-dsn", "", "optional Postgres DSN")
	fetchCmd.Flags().String("summary", "./data/summary.json", "run summary path (empty disables)")
	fetchCmd.Flags().String("rpc", "", "optional RPC URL used to verify the chain id")
	fetchCmd.Flags().Int("max-pages", 0, "maximum pages to fetch, 0 means unlimited")
	fetchCmd.Flags().Float64("rps", 0, "maximum subgraph requests per second, 0 means unlimited")
	fetchCmd.Flags().Duration("timeout", 30*time.Second, "HTTP timeout per subgraph request")
	fetchCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	fetchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(fetchCmd)

	chainsCmd := &cobra.Command{
		Use:   "chains",
		Short: "List supported chain ids",
		RunE:  runChains,
	}

	root.AddCommand(chainsCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

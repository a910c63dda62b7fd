package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"poolTags/internal/chain"
	"poolTags/internal/config"
	"poolTags/internal/metrics"
	"poolTags/internal/model"
	"poolTags/internal/storage"
	"poolTags/internal/storage/postgres"
	"poolTags/internal/storage/sqlite"
	"poolTags/internal/subgraph"
	"poolTags/internal/tags"
)

func runFetch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	endpoint, err := subgraph.ResolveEndpoint(cfg.ChainID, cfg.APIKey)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RPCURL != "" {
		if err := verifyChain(ctx, cfg.RPCURL, cfg.ChainID); err != nil {
			return err
		}
		logger.Info("rpc chain id verified", zap.String("chain_id", cfg.ChainID))
	}

	sinks, pgStore, closeSinks, err := openSinks(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSinks()

	var mtr *metrics.Metrics
	if cfg.MetricsAddr != "" {
		mtr = metrics.New()
		srv := mtr.Serve(cfg.MetricsAddr)
		logger.Info("metrics enabled", zap.String("addr", cfg.MetricsAddr))
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	client := subgraph.NewClient(subgraph.ClientConfig{
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	fetcher := tags.NewFetcher(tags.FetcherConfig{MaxPages: cfg.MaxPages}, client, tags.NewZapDiagnostics(logger), mtr)

	logger.Info("fetch start",
		zap.String("chain_id", cfg.ChainID),
		zap.String("endpoint", subgraph.RedactURL(endpoint, cfg.APIKey)),
		zap.String("out", cfg.Out),
		zap.String("format", cfg.Format),
		zap.Bool("sqlite", cfg.SQLitePath != ""),
		zap.Bool("postgres", cfg.PGDSN != ""),
		zap.Int("max_pages", cfg.MaxPages),
		zap.Float64("rps", cfg.RequestsPerSecond),
	)

	result, err := fetcher.Fetch(ctx, cfg.ChainID, cfg.APIKey)
	if err != nil {
		logger.Error("fetch failed", zap.Error(err), zap.String("kind", subgraph.Kind(err)))
		return err
	}
	if len(result.Tags) == 0 {
		return fmt.Errorf("no contract tags produced for chain %s (%d pools fetched)", cfg.ChainID, result.Stats.Pools)
	}

	if err := sinks.PutTags(ctx, cfg.ChainID, result.Tags); err != nil {
		return fmt.Errorf("store tags: %w", err)
	}

	if pgStore != nil {
		if err := saveExportState(ctx, pgStore, cfg.ChainID, result.Stats.LastCursor, logger); err != nil {
			return err
		}
	}

	summary := model.FetchSummary{
		ChainID:       cfg.ChainID,
		Pages:         result.Stats.Pages,
		Pools:         result.Stats.Pools,
		RejectedPools: result.Stats.Rejected,
		Tags:          result.Stats.Tags,
		LastCursor:    result.Stats.LastCursor,
	}
	if err := storage.NewSummaryStore(cfg.Summary).Save(summary); err != nil {
		return err
	}

	logger.Info("fetch complete",
		zap.Int("pages", summary.Pages),
		zap.Int("pools", summary.Pools),
		zap.Int("rejected", summary.RejectedPools),
		zap.Int("tags", summary.Tags),
		zap.Int64("last_cursor", summary.LastCursor),
	)
	return nil
}

func verifyChain(ctx context.Context, rpcURL, chainID string) error {
	chainClient, err := chain.NewClient(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	return chainClient.VerifyChainID(ctx, chainID)
}

func openSinks(ctx context.Context, cfg config.Config) (storage.Multi, *postgres.Store, func(), error) {
	var (
		sinks   storage.Multi
		pgStore *postgres.Store
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	fileSink, err := storage.NewFileStorage(cfg.Out, cfg.Format)
	if err != nil {
		return nil, nil, closeAll, err
	}
	sinks = append(sinks, fileSink)

	if cfg.SQLitePath != "" {
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			closeAll()
			return nil, nil, func() {}, fmt.Errorf("open sqlite: %w", err)
		}
		closers = append(closers, func() { _ = store.Close() })
		sinks = append(sinks, store)
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			closeAll()
			return nil, nil, func() {}, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, store.Close)
		if err := store.EnsureSchema(ctx); err != nil {
			closeAll()
			return nil, nil, func() {}, fmt.Errorf("postgres schema: %w", err)
		}
		sinks = append(sinks, store)
		pgStore = store
	}

	return sinks, pgStore, closeAll, nil
}

func saveExportState(ctx context.Context, store *postgres.Store, chainID string, cursor int64, logger *zap.Logger) error {
	name := "export:" + chainID
	previous, ok, err := store.LoadState(ctx, name)
	if err != nil {
		return fmt.Errorf("load export state: %w", err)
	}
	if ok && previous > cursor {
		logger.Warn("export cursor moved backwards", zap.Int64("previous", previous), zap.Int64("current", cursor))
	}
	if err := store.SaveState(ctx, name, cursor); err != nil {
		return fmt.Errorf("save export state: %w", err)
	}
	return nil
}

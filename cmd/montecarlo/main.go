package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"mm-sim-go/config"
	"mm-sim-go/infrastructure/logger"
	"mm-sim-go/metrics"
	"mm-sim-go/process"
	"mm-sim-go/report"
	"mm-sim-go/sim"
	"mm-sim-go/store"
)

// Monte Carlo driver: generate a batch of Brownian paths into the store,
// replay them all through the strategy, aggregate terminal PnL and write a
// summary CSV.
func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "YAML config path")
	runs := flag.Int("runs", 0, "override run.runs when > 0")
	dbPath := flag.String("db", "", "override store.path when set")
	outPath := flag.String("out", "montecarlo.csv", "batch summary CSV path")
	keep := flag.Bool("keep", false, "keep stored paths after the batch")
	flag.Parse()

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *runs > 0 {
		cfg.Run.Runs = *runs
	}
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "paths.db"
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Close()

	if cfg.Metrics.Addr != "" {
		metrics.StartMetricsServer(cfg.Metrics.Addr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		zlog.LogError(err)
		os.Exit(1)
	}

	if err := generatePaths(cfg, st); err != nil {
		zlog.LogError(err)
		os.Exit(1)
	}
	paths, err := st.FetchAll()
	if err != nil {
		zlog.LogError(err)
		os.Exit(1)
	}
	zlog.Info("paths_loaded", zap.Int("count", len(paths)), zap.String("db", cfg.Store.Path))

	batch := &sim.Batch{Cfg: cfg, Log: zlog, Paths: paths}
	result, err := batch.Run(ctx)
	if err != nil {
		zlog.LogError(err, zap.Int("completed_runs", len(result.Outcomes)))
		os.Exit(1)
	}

	stats := report.ComputeStats(result.TerminalPnLs())
	zlog.LogBatch(stats.Count, stats.Mean, stats.Std)
	zlog.Info("batch_summary",
		zap.Float64("pnl_min", stats.Min),
		zap.Float64("pnl_max", stats.Max),
		zap.Float64("pnl_max_drawdown_pct", stats.MaxDrawdownPct),
	)

	if err := report.WriteBatchCSV(*outPath, result); err != nil {
		zlog.LogError(err)
		os.Exit(1)
	}
	zlog.Info("summary_written", zap.String("path", *outPath))

	if !*keep {
		if err := st.Clear(); err != nil {
			zlog.LogError(err)
		}
	}
}

// generatePaths fills the store with one fresh path per run, seeded
// base+run so the batch is reproducible end to end.
func generatePaths(cfg config.SimConfig, st *store.PathStore) error {
	p := cfg.Model
	for i := 0; i < cfg.Run.Runs; i++ {
		seed := cfg.Run.PriceSeed + int64(i)
		bm, err := process.NewBrownianMotion(
			p.InitialMid, p.Mu, p.Sigma, p.StepSize, p.Steps(),
			process.NewSeededSource(seed),
		)
		if err != nil {
			return err
		}
		if err := st.Save(seed, bm.GeneratePath()); err != nil {
			return err
		}
	}
	return nil
}

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
	"mm-sim-go/report"
	"mm-sim-go/sim"
)

// Single-run simulator: one Brownian path, one strategy run, optional
// per-tick CSV dump. Parameters come from flags, with an optional YAML
// config as the base.
func main() {
	cfgPath := flag.String("config", "", "optional YAML config path")
	gamma := flag.Float64("gamma", 0.1, "risk aversion")
	sigma := flag.Float64("sigma", 2, "volatility")
	kappa := flag.Float64("kappa", 1.5, "order-arrival decay")
	intensityA := flag.Float64("a", 140, "order-arrival intensity scale")
	mu := flag.Float64("mu", 0, "mid-price drift")
	horizon := flag.Float64("horizon", 1, "terminal time T")
	dt := flag.Float64("dt", 0.005, "step size")
	mid := flag.Float64("mid", 100, "initial mid price")
	priceSeed := flag.Int64("priceSeed", 1, "price stream seed")
	fillSeed := flag.Int64("fillSeed", 2, "fill stream seed")
	liquidate := flag.Bool("liquidate", false, "close open inventory at the horizon")
	outPath := flag.String("out", "", "write per-tick series CSV to this path")
	flag.Parse()

	var cfg config.SimConfig
	if *cfgPath != "" {
		loaded, err := config.LoadWithEnvOverrides(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
		cfg.Model.Gamma = *gamma
		cfg.Model.Sigma = *sigma
		cfg.Model.Kappa = *kappa
		cfg.Model.IntensityA = *intensityA
		cfg.Model.Mu = *mu
		cfg.Model.Horizon = *horizon
		cfg.Model.StepSize = *dt
		cfg.Model.InitialMid = *mid
		cfg.Run.PriceSeed = *priceSeed
		cfg.Run.FillSeed = *fillSeed
		cfg.Run.LiquidateAtHorizon = *liquidate
		if err := config.Validate(cfg); err != nil {
			log.Fatalf("invalid parameters: %v", err)
		}
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

	runner, err := sim.BuildRunner(cfg, zlog)
	if err != nil {
		zlog.LogError(err)
		os.Exit(1)
	}
	result, err := runner.Run(ctx)
	if err != nil {
		zlog.LogError(err, zap.Int("completed_steps", result.Steps()))
		os.Exit(1)
	}

	st := result.TerminalState()
	zlog.LogRun(0, result.Steps(), st.PnL, st.Position)
	zlog.Info("run_summary",
		zap.Int("fills", result.FillCount()),
		zap.Float64("final_mid", result.TerminalMid()),
		zap.Float64("cash", st.Cash),
	)

	if *outPath != "" {
		if err := report.WriteSeriesCSV(*outPath, result); err != nil {
			zlog.LogError(err)
			os.Exit(1)
		}
		zlog.Info("series_written", zap.String("path", *outPath))
	}
}

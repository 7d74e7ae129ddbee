package sim

import (
	"mm-sim-go/config"
	"mm-sim-go/execution"
	"mm-sim-go/infrastructure/logger"
	"mm-sim-go/inventory"
	"mm-sim-go/process"
	"mm-sim-go/strategy/asmm"
)

// BuildRunner assembles one isolated run from config: seeded price process,
// quote calculator, fill simulator and a fresh ledger. The price and fill
// streams get separate sources so each can be reproduced on its own.
func BuildRunner(cfg config.SimConfig, log *logger.Logger) (*Runner, error) {
	p := cfg.Model
	prices, err := process.NewBrownianMotion(
		p.InitialMid, p.Mu, p.Sigma, p.StepSize, p.Steps(),
		process.NewSeededSource(cfg.Run.PriceSeed),
	)
	if err != nil {
		return nil, err
	}
	return buildWithPrices(cfg, prices, log)
}

// BuildReplayRunner assembles a run that replays a stored path instead of
// generating a fresh one. Model parameters still come from config; the
// path supplies only the mids.
func BuildReplayRunner(cfg config.SimConfig, path process.Path, log *logger.Logger) (*Runner, error) {
	prices, err := process.NewReplay(path)
	if err != nil {
		return nil, err
	}
	return buildWithPrices(cfg, prices, log)
}

func buildWithPrices(cfg config.SimConfig, prices PriceSource, log *logger.Logger) (*Runner, error) {
	p := cfg.Model
	quoter, err := asmm.NewQuoteCalculator(p)
	if err != nil {
		return nil, err
	}
	fills, err := execution.NewFillSimulator(p, process.NewSeededSource(cfg.Run.FillSeed))
	if err != nil {
		return nil, err
	}
	return &Runner{
		Params:             p,
		Prices:             prices,
		Quoter:             quoter,
		Fills:              fills,
		Ledger:             inventory.NewLedger(p.InitialInventory, p.InitialCash),
		Log:                log,
		LiquidateAtHorizon: cfg.Run.LiquidateAtHorizon,
	}, nil
}

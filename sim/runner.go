// Package sim orchestrates the per-tick simulation pipeline:
// price process -> quote calculator -> fill simulator -> inventory ledger.
package sim

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mm-sim-go/execution"
	"mm-sim-go/infrastructure/logger"
	"mm-sim-go/inventory"
	"mm-sim-go/market"
	"mm-sim-go/metrics"
	"mm-sim-go/strategy/asmm"
)

// PriceSource yields the mid-price path one point at a time. Both the live
// Brownian generator and the stored-path replayer satisfy it.
type PriceSource interface {
	Next() (market.PricePoint, bool)
}

// Runner wires one isolated simulation run. Each tick's output feeds the
// next tick's input, so a Runner is strictly sequential and must not be
// shared across runs.
type Runner struct {
	Params asmm.ModelParams
	Prices PriceSource
	Quoter *asmm.QuoteCalculator
	Fills  *execution.FillSimulator
	Ledger *inventory.Ledger
	Log    *logger.Logger

	// LiquidateAtHorizon closes any open position at the terminal mid.
	// Off by default: the base model marks to market and stops.
	LiquidateAtHorizon bool
}

// Run executes the loop until the price source is exhausted or ctx is
// cancelled. Cancellation is only observed at tick boundaries; a tick's
// four-stage sequence is never split. On numerical instability the
// offending tick is not applied and the partial result is returned with
// the error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.Prices == nil || r.Quoter == nil || r.Fills == nil || r.Ledger == nil {
		return nil, errors.New("runner not initialized")
	}
	log := r.Log
	if log == nil {
		log = logger.Nop()
	}

	result := newResult(r.Params.Steps() + 1)
	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		// (1) advance the price process
		pt, ok := r.Prices.Next()
		if !ok {
			break
		}

		// (2) quote from the new mid and the inventory known at decision
		// time, i.e. before this tick's fills
		prev := r.Ledger.State()
		tau := r.Params.Horizon - float64(pt.Step)*r.Params.StepSize
		quote, err := r.Quoter.ComputeQuotes(pt.Step, pt.Mid, prev.Position, tau)
		if err != nil {
			log.LogError(err, zap.Int("step", pt.Step))
			return result, err
		}

		// (3) decide fills against the new quotes
		fills, err := r.Fills.SimulateFills(quote, pt.Mid)
		if err != nil {
			log.LogError(err, zap.Int("step", pt.Step))
			return result, err
		}

		// (4) apply fills and re-mark the book
		st := r.Ledger.ApplyFills(pt.Step, fills, pt.Mid)
		result.append(pt, quote, fills, st)
	}

	if r.LiquidateAtHorizon {
		r.liquidate(result)
	}
	metrics.IncrementRunsCompleted()
	return result, nil
}

// liquidate closes the terminal position at the final mid and rewrites the
// last snapshot. Policy action, recorded separately from model fills.
func (r *Runner) liquidate(result *Result) {
	st := result.TerminalState()
	if st.Position == 0 || result.Steps() == 0 {
		return
	}
	mid := result.TerminalMid()
	side := market.Ask
	if st.Position < 0 {
		side = market.Bid
	}
	fill := market.Fill{Step: st.Step, Side: side, Price: mid, Size: absFloat(st.Position)}
	final := r.Ledger.ApplyFills(st.Step, []market.Fill{fill}, mid)
	result.States[len(result.States)-1] = final
	result.LiquidationFill = &fill
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

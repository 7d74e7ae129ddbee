package sim

import (
	"context"
	"fmt"
	"sync"

	"mm-sim-go/config"
	"mm-sim-go/infrastructure/logger"
	"mm-sim-go/inventory"
	"mm-sim-go/process"
)

// RunOutcome is the per-run record a batch keeps: terminal snapshot plus
// fill count, enough for aggregation without holding every series.
type RunOutcome struct {
	Run      int
	Terminal inventory.State
	FinalMid float64
	Fills    int
}

// BatchResult collects outcomes in run order.
type BatchResult struct {
	Outcomes []RunOutcome
}

// TerminalPnLs extracts the terminal mark-to-market PnL of each run.
func (b *BatchResult) TerminalPnLs() []float64 {
	out := make([]float64, len(b.Outcomes))
	for i, o := range b.Outcomes {
		out[i] = o.Terminal.PnL
	}
	return out
}

// Batch executes cfg.Run.Runs independent simulations. Every run owns its
// own price process, fill simulator and ledger; the only sharing is the
// read-only config. Per-run seeds are derived as base+run so a fixed base
// seed reproduces the whole batch, in any worker order.
type Batch struct {
	Cfg config.SimConfig
	Log *logger.Logger

	// Paths, when set, replays stored paths instead of generating fresh
	// ones; the batch size is then capped at len(Paths).
	Paths []process.Path
}

// Run executes the batch, sequentially or across cfg.Run.Workers goroutines.
func (b *Batch) Run(ctx context.Context) (*BatchResult, error) {
	log := b.Log
	if log == nil {
		log = logger.Nop()
	}
	runs := b.Cfg.Run.Runs
	if len(b.Paths) > 0 && len(b.Paths) < runs {
		runs = len(b.Paths)
	}

	outcomes := make([]RunOutcome, runs)
	errs := make([]error, runs)

	workers := b.Cfg.Run.Workers
	if workers <= 1 {
		for i := 0; i < runs; i++ {
			outcomes[i], errs[i] = b.runOne(ctx, i, log)
			if errs[i] != nil {
				return &BatchResult{Outcomes: outcomes[:i]}, fmt.Errorf("run %d: %w", i, errs[i])
			}
		}
		return &BatchResult{Outcomes: outcomes}, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i], errs[i] = b.runOne(ctx, i, log)
			}
		}()
	}
	for i := 0; i < runs; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return &BatchResult{Outcomes: outcomes}, fmt.Errorf("run %d: %w", i, err)
		}
	}
	return &BatchResult{Outcomes: outcomes}, nil
}

func (b *Batch) runOne(ctx context.Context, i int, log *logger.Logger) (RunOutcome, error) {
	cfg := b.Cfg
	cfg.Run.PriceSeed += int64(i)
	cfg.Run.FillSeed += int64(i)

	var (
		runner *Runner
		err    error
	)
	if len(b.Paths) > 0 {
		runner, err = BuildReplayRunner(cfg, b.Paths[i], nil)
	} else {
		runner, err = BuildRunner(cfg, nil)
	}
	if err != nil {
		return RunOutcome{}, err
	}

	result, err := runner.Run(ctx)
	if err != nil {
		return RunOutcome{}, err
	}
	st := result.TerminalState()
	log.LogRun(i, result.Steps(), st.PnL, st.Position)
	return RunOutcome{
		Run:      i,
		Terminal: st,
		FinalMid: result.TerminalMid(),
		Fills:    result.FillCount(),
	}, nil
}

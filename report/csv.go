package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"mm-sim-go/sim"
)

// WriteSeriesCSV dumps the per-tick series of one run: step, mid, bid, ask,
// reservation, spread, fills, position, cash, pnl.
func WriteSeriesCSV(path string, result *sim.Result) error {
	if result == nil || result.Steps() == 0 {
		return fmt.Errorf("no result data")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"step", "mid", "bid", "ask", "reservation", "spread", "fills", "position", "cash", "pnl"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < result.Steps(); i++ {
		record := []string{
			fmt.Sprintf("%d", result.Prices[i].Step),
			fmt.Sprintf("%.6f", result.Prices[i].Mid),
			fmt.Sprintf("%.6f", result.Quotes[i].Bid),
			fmt.Sprintf("%.6f", result.Quotes[i].Ask),
			fmt.Sprintf("%.6f", result.Quotes[i].Reservation),
			fmt.Sprintf("%.6f", result.Quotes[i].Spread),
			fmt.Sprintf("%d", len(result.Fills[i])),
			fmt.Sprintf("%.6f", result.States[i].Position),
			fmt.Sprintf("%.6f", result.States[i].Cash),
			fmt.Sprintf("%.6f", result.States[i].PnL),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatchCSV dumps per-run terminal outcomes followed by a summary row
// over the terminal PnLs.
func WriteBatchCSV(path string, batch *sim.BatchResult) error {
	if batch == nil || len(batch.Outcomes) == 0 {
		return fmt.Errorf("no batch data")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"run", "fills", "final_mid", "position", "cash", "pnl"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, o := range batch.Outcomes {
		record := []string{
			fmt.Sprintf("%d", o.Run),
			fmt.Sprintf("%d", o.Fills),
			fmt.Sprintf("%.6f", o.FinalMid),
			fmt.Sprintf("%.6f", o.Terminal.Position),
			fmt.Sprintf("%.6f", o.Terminal.Cash),
			fmt.Sprintf("%.6f", o.Terminal.PnL),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	stats := ComputeStats(batch.TerminalPnLs())
	summary := []string{
		"summary",
		fmt.Sprintf("%d", stats.Count),
		"",
		fmt.Sprintf("min=%.6f", stats.Min),
		fmt.Sprintf("max=%.6f", stats.Max),
		fmt.Sprintf("mean=%.6f std=%.6f", stats.Mean, stats.Std),
	}
	return w.Write(summary)
}

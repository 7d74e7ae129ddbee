// Package report computes summary statistics over simulation output and
// writes them to CSV for downstream analysis.
package report

import "math"

// SeriesStats summarizes one numeric series.
type SeriesStats struct {
	Count          int
	Min            float64
	Max            float64
	Mean           float64
	Std            float64
	MaxDrawdownPct float64
}

// ComputeStats summarizes a series. Drawdown is measured peak-to-trough as
// a percentage of the running peak; zero peaks are skipped.
func ComputeStats(series []float64) SeriesStats {
	if len(series) == 0 {
		return SeriesStats{}
	}
	min, max := series[0], series[0]
	sum := 0.0
	peak := series[0]
	maxDD := 0.0
	for _, v := range series {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
		if v > peak {
			peak = v
		}
		if peak != 0 {
			dd := (peak - v) / peak * 100
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	mean := sum / float64(len(series))

	variance := 0.0
	for _, v := range series {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(series))

	return SeriesStats{
		Count:          len(series),
		Min:            min,
		Max:            max,
		Mean:           mean,
		Std:            math.Sqrt(variance),
		MaxDrawdownPct: maxDD,
	}
}

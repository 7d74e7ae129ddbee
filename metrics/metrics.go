// Package metrics provides Prometheus metrics for the simulator.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Strategy metrics
	ReservationPrice = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_sim_reservation_price",
		Help: "Latest inventory-adjusted reservation price",
	})
	OptimalSpread = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_sim_optimal_spread",
		Help: "Latest closed-form optimal spread",
	})
	QuotesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mm_sim_quotes_generated_total",
		Help: "Quotes generated by side",
	}, []string{"side"})

	// Execution metrics
	FillsSimulated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mm_sim_fills_total",
		Help: "Simulated fills by side",
	}, []string{"side"})

	// Ledger metrics
	InventoryNet = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_sim_inventory_net",
		Help: "Current net inventory position",
	})
	MarkToMarketPnL = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_sim_mark_to_market_pnl",
		Help: "Current mark-to-market PnL (cash + inventory * mid)",
	})

	// Loop metrics
	MidPrice = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mm_sim_mid_price",
		Help: "Latest simulated mid price",
	})
	RunsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mm_sim_runs_completed_total",
		Help: "Simulation runs completed",
	})
)

// UpdateQuoteMetrics records the latest quote decision.
func UpdateQuoteMetrics(reservation, spread float64) {
	ReservationPrice.Set(reservation)
	OptimalSpread.Set(spread)
}

// UpdateTickMetrics records per-tick state after the ledger update.
func UpdateTickMetrics(mid, inventory, pnl float64) {
	MidPrice.Set(mid)
	InventoryNet.Set(inventory)
	MarkToMarketPnL.Set(pnl)
}

// IncrementQuotesGenerated counts a generated quote for one side.
func IncrementQuotesGenerated(side string) {
	QuotesGenerated.WithLabelValues(side).Inc()
}

// IncrementFills counts a simulated fill for one side.
func IncrementFills(side string) {
	FillsSimulated.WithLabelValues(side).Inc()
}

// IncrementRunsCompleted counts a finished simulation run.
func IncrementRunsCompleted() {
	RunsCompleted.Inc()
}

// StartMetricsServer exposes /metrics on addr in the background.
func StartMetricsServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(addr, nil)
	}()
}

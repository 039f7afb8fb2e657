package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PoolsSeenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "raydium_pools_seen_total", Help: "Raydium pool accounts observed by the watcher"},
		[]string{"quote_mint"},
	)
	PriceLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "price_lookups_total", Help: "Price oracle lookups by outcome"},
		[]string{"result"},
	)
	HoldingsEnrichedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "holdings_enriched_total", Help: "Token holdings returned by the enricher"},
	)
)

func init() {
	prometheus.MustRegister(PoolsSeenTotal, PriceLookupsTotal, HoldingsEnrichedTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}

package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_refreshes_total",
		Help: "Catalog refreshes served from the upstream feed",
	})

	refreshErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_refresh_errors_total",
		Help: "Catalog refreshes that failed against the upstream feed",
	})

	snapshotLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_snapshot_loads_total",
		Help: "Catalog refreshes served from a fresh disk snapshot",
	})

	snapshotWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_snapshot_write_errors_total",
		Help: "Background snapshot writes that failed",
	})
)

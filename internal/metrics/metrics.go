package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ErrandsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "errand_service_errands_created_total",
		Help: "Total number of errands successfully created.",
	})

	ErrandsAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "errand_service_errands_accepted_total",
		Help: "Total number of errands claimed by a runner.",
	})

	ErrandsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "errand_service_errands_completed_total",
		Help: "Total number of errands completed and settled.",
	})

	ErrandsCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "errand_service_errands_cancelled_total",
		Help: "Total number of errands cancelled.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "errand_service_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	LifecycleEventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "errand_service_lifecycle_events_dropped_total",
		Help: "Lifecycle events dropped by the best-effort emitter.",
	})

	ErrandCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "errand_service_errand_cache_items",
		Help: "Current number of items in the active-errand cache.",
	})
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Transitions counts state-machine transitions by action and result.
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agenda",
		Name:      "appointment_transitions_total",
		Help:      "Appointment state transitions executed.",
	}, []string{"action", "result"})

	// SlotComputations counts availability grids served.
	SlotComputations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "agenda",
		Name:      "slot_computations_total",
		Help:      "Availability computations served.",
	})

	// Invalidations counts realtime change signals published.
	Invalidations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "agenda",
		Name:      "realtime_invalidations_total",
		Help:      "Change notifications published to subscribers.",
	})

	// OptimisticRollbacks counts reverted optimistic mutations.
	OptimisticRollbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "agenda",
		Name:      "optimistic_rollbacks_total",
		Help:      "Optimistic mutations reverted after server rejection.",
	})
)

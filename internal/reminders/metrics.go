package reminders

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scheduledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cuppl_reminders_scheduled_total",
		Help: "Reminders successfully registered with the sink.",
	})
	cancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cuppl_reminders_cancelled_total",
		Help: "Reminder handles cancelled.",
	})
	failedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cuppl_reminders_failed_total",
		Help: "Reminder operations that failed and were swallowed.",
	}, []string{"op"})
	firedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cuppl_reminders_fired_total",
		Help: "Due reminders delivered by the dispatcher.",
	})
)

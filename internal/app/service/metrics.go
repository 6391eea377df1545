package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetracker_task_transitions_total",
			Help: "Task lifecycle transitions by kind and result",
		},
		[]string{"transition", "result"},
	)

	trackedHoursTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "timetracker_tracked_hours_total",
			Help: "Hours accumulated by pause and stop transitions",
		},
	)

	timerActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "timetracker_timer_active",
			Help: "1 while a task timer is running",
		},
	)

	worklogSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetracker_worklog_sync_total",
			Help: "Worklog sync attempts by outcome",
		},
		[]string{"outcome"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetracker_notifications_total",
			Help: "Desktop notifications by kind and result",
		},
		[]string{"kind", "result"},
	)
)

func observeTransition(transition string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	transitionsTotal.WithLabelValues(transition, result).Inc()
}

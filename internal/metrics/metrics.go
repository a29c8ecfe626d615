package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fastybox_requests_created_total",
		Help: "Total number of forward requests successfully created.",
	})

	PaymentsSucceededTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fastybox_payments_succeeded_total",
		Help: "Total number of payments reconciled as succeeded.",
	})

	PaymentsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fastybox_payments_failed_total",
		Help: "Total number of payments reconciled as failed.",
	})

	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fastybox_status_transitions_total",
		Help: "Status transitions applied, by resulting status.",
	},
		[]string{"status"},
	)

	NotificationSendErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fastybox_notification_send_errors_total",
		Help: "Notification deliveries that failed after all attempts.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fastybox_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)
)

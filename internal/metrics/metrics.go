package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymadmin_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymadmin_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckInsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymadmin_checkins_total",
			Help: "Total number of attendance check-ins",
		},
	)

	CheckOutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymadmin_checkouts_total",
			Help: "Total number of attendance check-outs",
		},
	)

	MembersInGym = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymadmin_members_in_gym",
			Help: "Number of members currently checked in",
		},
	)

	SubscriptionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymadmin_subscriptions_created_total",
			Help: "Total number of subscriptions created",
		},
		[]string{"plan"},
	)

	SubscriptionsRenewedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymadmin_subscriptions_renewed_total",
			Help: "Total number of subscription renewals",
		},
	)

	SubscriptionsCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymadmin_subscriptions_cancelled_total",
			Help: "Total number of subscription cancellations",
		},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymadmin_payments_total",
			Help: "Total number of payments recorded",
		},
		[]string{"method"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymadmin_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymadmin_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCheckIn() {
	CheckInsTotal.Inc()
	MembersInGym.Inc()
}

func RecordCheckOut() {
	CheckOutsTotal.Inc()
	MembersInGym.Dec()
}

// SetMembersInGym resyncs the gauge from the store; the counter-based
// Inc/Dec drifts across restarts.
func SetMembersInGym(n int) {
	MembersInGym.Set(float64(n))
}

func RecordSubscription(planName string) {
	SubscriptionsCreatedTotal.WithLabelValues(planName).Inc()
}

func RecordRenewal() {
	SubscriptionsRenewedTotal.Inc()
}

func RecordCancellation() {
	SubscriptionsCancelledTotal.Inc()
}

func RecordPayment(method string) {
	PaymentsTotal.WithLabelValues(method).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/members", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/members", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordCheckInAndOut(t *testing.T) {
	testCheckIns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gymadmin_checkins_total_test",
		Help: "Total number of attendance check-ins",
	})
	testCheckOuts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gymadmin_checkouts_total_test",
		Help: "Total number of attendance check-outs",
	})

	oldIns, oldOuts := CheckInsTotal, CheckOutsTotal
	CheckInsTotal, CheckOutsTotal = testCheckIns, testCheckOuts
	defer func() { CheckInsTotal, CheckOutsTotal = oldIns, oldOuts }()

	SetMembersInGym(0)

	RecordCheckIn()
	RecordCheckIn()
	RecordCheckOut()

	assert.Equal(t, float64(2), testutil.ToFloat64(testCheckIns))
	assert.Equal(t, float64(1), testutil.ToFloat64(testCheckOuts))
	assert.Equal(t, float64(1), testutil.ToFloat64(MembersInGym))
}

func TestSetMembersInGym(t *testing.T) {
	SetMembersInGym(12)
	assert.Equal(t, float64(12), testutil.ToFloat64(MembersInGym))

	SetMembersInGym(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(MembersInGym))
}

func TestRecordSubscription(t *testing.T) {
	SubscriptionsCreatedTotal.Reset()

	RecordSubscription("Monthly")
	RecordSubscription("Monthly")
	RecordSubscription("Annual")

	monthlyCount := testutil.ToFloat64(SubscriptionsCreatedTotal.WithLabelValues("Monthly"))
	annualCount := testutil.ToFloat64(SubscriptionsCreatedTotal.WithLabelValues("Annual"))

	assert.Equal(t, float64(2), monthlyCount)
	assert.Equal(t, float64(1), annualCount)
}

func TestRecordRenewal(t *testing.T) {
	testCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gymadmin_subscriptions_renewed_total_test",
		Help: "Total number of subscription renewals",
	})

	oldCounter := SubscriptionsRenewedTotal
	SubscriptionsRenewedTotal = testCounter
	defer func() { SubscriptionsRenewedTotal = oldCounter }()

	RecordRenewal()
	RecordRenewal()

	assert.Equal(t, float64(2), testutil.ToFloat64(testCounter))
}

func TestRecordPayment(t *testing.T) {
	PaymentsTotal.Reset()

	RecordPayment("cash")
	RecordPayment("cash")
	RecordPayment("card")

	cashCount := testutil.ToFloat64(PaymentsTotal.WithLabelValues("cash"))
	cardCount := testutil.ToFloat64(PaymentsTotal.WithLabelValues("card"))

	assert.Equal(t, float64(2), cashCount)
	assert.Equal(t, float64(1), cardCount)
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("welcome", "sent")
	RecordEmail("welcome", "failed")
	RecordEmail("payment_receipt", "sent")

	welcomeSent := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("welcome", "sent"))
	welcomeFailed := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("welcome", "failed"))
	receiptSent := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("payment_receipt", "sent"))

	assert.Equal(t, float64(1), welcomeSent)
	assert.Equal(t, float64(1), welcomeFailed)
	assert.Equal(t, float64(1), receiptSent)
}

func TestEmailQueueLength(t *testing.T) {
	EmailQueueLength.Set(10)
	assert.Equal(t, float64(10), testutil.ToFloat64(EmailQueueLength))

	EmailQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(EmailQueueLength))
}

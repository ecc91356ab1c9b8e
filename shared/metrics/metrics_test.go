package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(bookingRejected.WithLabelValues(ReasonOverlap))
	IncBookingRejected(ReasonOverlap)
	assert.InDelta(t, before+1, testutil.ToFloat64(bookingRejected.WithLabelValues(ReasonOverlap)), 0.0001)

	before = testutil.ToFloat64(bookingTransition.WithLabelValues("PENDING", "CONFIRMED"))
	IncBookingTransition("PENDING", "CONFIRMED")
	assert.InDelta(t, before+1, testutil.ToFloat64(bookingTransition.WithLabelValues("PENDING", "CONFIRMED")), 0.0001)

	before = testutil.ToFloat64(bookingCreated.WithLabelValues("PENDING"))
	IncBookingCreated("PENDING")
	assert.InDelta(t, before+1, testutil.ToFloat64(bookingCreated.WithLabelValues("PENDING")), 0.0001)

	before = testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/rooms/", "200"))
	ObserveHTTPRequest(http.MethodGet, "/api/rooms/", http.StatusOK, 20*time.Millisecond)
	assert.InDelta(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/rooms/", "200")), 0.0001)
}

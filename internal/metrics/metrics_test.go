package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBooking(t *testing.T) {
	before := testutil.ToFloat64(BookingsTotal.WithLabelValues("create", "ok"))
	RecordBooking("create", "ok")
	after := testutil.ToFloat64(BookingsTotal.WithLabelValues("create", "ok"))

	assert.Equal(t, before+1, after)
}

func TestRecordSlotFetch(t *testing.T) {
	before := testutil.ToFloat64(SlotFetchesTotal.WithLabelValues("degraded"))
	RecordSlotFetch("degraded")
	RecordSlotFetch("degraded")

	assert.Equal(t, before+2, testutil.ToFloat64(SlotFetchesTotal.WithLabelValues("degraded")))
}

func TestRecordAccessDecision(t *testing.T) {
	before := testutil.ToFloat64(AccessDecisionsTotal.WithLabelValues("allow"))
	RecordAccessDecision("allow")

	assert.Equal(t, before+1, testutil.ToFloat64(AccessDecisionsTotal.WithLabelValues("allow")))
}

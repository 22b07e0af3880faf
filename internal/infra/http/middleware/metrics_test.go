package middleware

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// The report counter tracks accepted jobs only; terminal outcomes live in the
// report rows themselves.
func TestRecordReportEnqueuedCountsAcceptedJobs(t *testing.T) {
	before := testutil.ToFloat64(reportsEnqueued)

	RecordReportEnqueued()
	RecordReportEnqueued()

	assert.Equal(t, before+2, testutil.ToFloat64(reportsEnqueued))
}

func TestRecordLeadCreatedLabelsBySource(t *testing.T) {
	counter := leadsCreated.WithLabelValues("WEBSITE")
	before := testutil.ToFloat64(counter)

	RecordLeadCreated("WEBSITE")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

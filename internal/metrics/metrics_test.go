package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Submission(OutcomeSent)
	m.Submission(OutcomeSent)
	m.Submission(OutcomeRejected)
	m.View("project")
	m.Relay(nil, 200*time.Millisecond)
	m.Relay(errors.New("boom"), time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ContactSubmissions.WithLabelValues(OutcomeSent)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ContactSubmissions.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ViewRenders.WithLabelValues("project")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RelayDuration))
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

package observability_test

import (
	"testing"
	"time"

	"boardsync/internal/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(observability.OperationsTotal.WithLabelValues("move_card", "conflict"))

	observability.ObserveOperation("move_card", "conflict", 3*time.Millisecond)

	after := testutil.ToFloat64(observability.OperationsTotal.WithLabelValues("move_card", "conflict"))
	assert.Equal(t, before+1, after)
}

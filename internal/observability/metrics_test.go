package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordGenerationCountsByOutcome(t *testing.T) {
	before := testutil.ToFloat64(generationRequests.WithLabelValues("meal_plan", OutcomeInvalidOutput))
	RecordGeneration("meal_plan", OutcomeInvalidOutput, 2*time.Second)
	require.Equal(t, before+1, testutil.ToFloat64(generationRequests.WithLabelValues("meal_plan", OutcomeInvalidOutput)))
}

func TestRecordEntitlementDenial(t *testing.T) {
	before := testutil.ToFloat64(entitlementDenials.WithLabelValues("meal_swap"))
	RecordEntitlementDenial("meal_swap")
	require.Equal(t, before+1, testutil.ToFloat64(entitlementDenials.WithLabelValues("meal_swap")))
}

func TestRecordHTTPRequestLabelsUnmatchedRoutes(t *testing.T) {
	RecordHTTPRequest("GET", "", 404)
	require.Equal(t, 1.0, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

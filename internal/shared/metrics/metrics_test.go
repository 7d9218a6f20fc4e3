package metrics

import (
	"strings"
	"testing"
)

func TestRenderContainsCounters(t *testing.T) {
	IncAnalysisStarted()
	IncAnalysisCompleted()
	IncAnalysisFailed()
	IncAnalysisImported()
	ObserveAnalysisDurationMs(120)

	out := Render()

	for _, want := range []string{
		"analysis_started_total",
		"analysis_completed_total",
		"analysis_failed_total",
		"analysis_imported_total",
		"analysis_duration_ms_bucket{le=\"+Inf\"}",
		"analysis_duration_ms_sum",
		"analysis_duration_ms_count",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in metrics output:\n%s", want, out)
		}
	}
}

func TestObserveNegativeClampedToZero(t *testing.T) {
	before := analysisDuration.Snapshot()
	ObserveAnalysisDurationMs(-5)
	after := analysisDuration.Snapshot()

	if after.count != before.count+1 {
		t.Fatalf("expected count to increase by 1")
	}
	if after.sum != before.sum {
		t.Fatalf("expected negative value to be clamped to zero, sum changed by %f", after.sum-before.sum)
	}
}

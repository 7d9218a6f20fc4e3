package analyses

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseReportStrictSchema(t *testing.T) {
	raw := json.RawMessage(`{
  "overallDeceptionProbability": 0.62,
  "finalRecommendation": "Medium Risk",
  "analysisSummary": "Several hedges around the timeline.",
  "allDetectedCues": ["Hedging & Qualifiers", "Hedging & Qualifiers"],
  "analyzedTranscript": [
    {"speaker": "Claimant", "lineNumber": 2, "text": "I guess it was around ten.", "suspicionScore": 0.7, "reason": "hedged time", "cuesTriggered": ["Hedging & Qualifiers"]},
    {"speaker": "Agent", "lineNumber": 1, "text": "When did it happen?", "suspicionScore": 0, "reason": "should be cleared", "cuesTriggered": ["noise"]}
  ]
}`)

	report, err := ParseReport(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if report.OverallDeceptionProbability != 0.62 {
		t.Fatalf("expected probability 0.62, got %v", report.OverallDeceptionProbability)
	}
	if report.FinalRecommendation != RecommendationMediumRisk {
		t.Fatalf("expected Medium Risk, got %q", report.FinalRecommendation)
	}
	if len(report.AllDetectedCues) != 1 {
		t.Fatalf("expected deduplicated cues, got %v", report.AllDetectedCues)
	}
	zero := report.AnalyzedTranscript[1]
	if zero.Reason != "" || len(zero.CuesTriggered) != 0 {
		t.Fatalf("expected zero-score line cleared, got reason=%q cues=%v", zero.Reason, zero.CuesTriggered)
	}
}

func TestParseReportCompactShape(t *testing.T) {
	raw := json.RawMessage(`{"probability": 0.82, "flags": ["I never said that"], "explanation": "Inconsistent timeline"}`)

	report, err := ParseReport(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if report.OverallDeceptionProbability != 0.82 {
		t.Fatalf("expected probability 0.82, got %v", report.OverallDeceptionProbability)
	}
	if report.AnalysisSummary != "Inconsistent timeline" {
		t.Fatalf("expected explanation promoted to summary, got %q", report.AnalysisSummary)
	}
	if report.FinalRecommendation != RecommendationHighRisk {
		t.Fatalf("expected derived High Risk, got %q", report.FinalRecommendation)
	}
	if len(report.Flags) != 1 || report.Flags[0] != "I never said that" {
		t.Fatalf("expected flags preserved, got %v", report.Flags)
	}
}

func TestParseReportNormalization(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		wantProb float64
		wantSum  string
	}{
		{"clamps above one", `{"overallDeceptionProbability": 1.7, "analysisSummary": "x"}`, 1, "x"},
		{"clamps below zero", `{"overallDeceptionProbability": -0.2, "analysisSummary": "x"}`, 0, "x"},
		{"percent scale", `{"overallDeceptionProbability": 82, "analysisSummary": "x"}`, 0.82, "x"},
		{"summary fallback", `{"overallDeceptionProbability": 0.5}`, 0.5, FallbackSummary},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report, err := ParseReport(json.RawMessage(tc.raw))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if report.OverallDeceptionProbability != tc.wantProb {
				t.Fatalf("expected probability %v, got %v", tc.wantProb, report.OverallDeceptionProbability)
			}
			if report.AnalysisSummary != tc.wantSum {
				t.Fatalf("expected summary %q, got %q", tc.wantSum, report.AnalysisSummary)
			}
		})
	}
}

func TestParseReportCueOrderPreserved(t *testing.T) {
	raw := json.RawMessage(`{
  "overallDeceptionProbability": 0.5,
  "allDetectedCues": ["Distancing Language", "Hedging & Qualifiers", "Distancing Language"],
  "analyzedTranscript": [
    {"lineNumber": 1, "text": "x", "suspicionScore": 0.3, "cuesTriggered": ["Absolute Denials", "Hedging & Qualifiers"]}
  ]
}`)

	report, err := ParseReport(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"Distancing Language", "Hedging & Qualifiers", "Absolute Denials"}
	if len(report.AllDetectedCues) != len(want) {
		t.Fatalf("expected %d cues, got %v", len(want), report.AllDetectedCues)
	}
	for i, cue := range want {
		if report.AllDetectedCues[i] != cue {
			t.Fatalf("expected detection order %v, got %v", want, report.AllDetectedCues)
		}
	}
}

func TestParseReportRejectsMissingProbability(t *testing.T) {
	if _, err := ParseReport(json.RawMessage(`{"analysisSummary": "no verdict"}`)); err == nil {
		t.Fatalf("expected error for payload without probability")
	}
	if _, err := ParseReport(json.RawMessage(`not json`)); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestRecommendationForProbability(t *testing.T) {
	cases := []struct {
		prob float64
		want string
	}{
		{0, RecommendationNoRedFlags},
		{0.09, RecommendationNoRedFlags},
		{0.1, RecommendationLowRisk},
		{0.39, RecommendationLowRisk},
		{0.4, RecommendationMediumRisk},
		{0.69, RecommendationMediumRisk},
		{0.7, RecommendationHighRisk},
		{1, RecommendationHighRisk},
	}
	for _, tc := range cases {
		if got := recommendationForProbability(tc.prob); got != tc.want {
			t.Fatalf("probability %v: expected %q, got %q", tc.prob, tc.want, got)
		}
	}
}

func TestSanitizeError(t *testing.T) {
	long := strings.Repeat("a", 200) + "\nline two\r" + strings.Repeat("b", 400)
	msg := sanitizeError(errors.New(long))
	if strings.ContainsAny(msg, "\n\r") {
		t.Fatalf("expected newlines stripped, got %q", msg)
	}
	if len(msg) != 500 {
		t.Fatalf("expected length 500, got %d", len(msg))
	}
}

package analyses

import (
	"encoding/json"
	"fmt"
)

// wireReport tolerates both the instructed schema and the compact shape some
// model runs fall back to. Pointers distinguish absent from zero.
type wireReport struct {
	OverallDeceptionProbability *float64       `json:"overallDeceptionProbability"`
	FinalRecommendation         string         `json:"finalRecommendation"`
	AnalysisSummary             string         `json:"analysisSummary"`
	AllDetectedCues             []string       `json:"allDetectedCues"`
	AnalyzedTranscript          []AnalyzedLine `json:"analyzedTranscript"`

	Probability *float64 `json:"probability"`
	Flags       []string `json:"flags"`
	Explanation string   `json:"explanation"`
}

// ParseReport decodes and normalizes the model's raw JSON output into a
// validated ForensicReport. Normalization clamps the probability and per-line
// scores into [0,1] (accepting a 0-100 probability scale), enforces the
// "score 0 means no reason and no cues" invariant, fills the summary fallback,
// and deduplicates the cue list. A payload carrying no probability in either
// shape is a schema mismatch.
func ParseReport(raw json.RawMessage) (ForensicReport, error) {
	var wire wireReport
	if err := json.Unmarshal(raw, &wire); err != nil {
		return ForensicReport{}, fmt.Errorf("llm output parse: %w", err)
	}

	probability, ok := pickProbability(wire)
	if !ok {
		return ForensicReport{}, fmt.Errorf("llm output invalid: no probability field")
	}

	report := ForensicReport{
		OverallDeceptionProbability: probability,
		FinalRecommendation:         wire.FinalRecommendation,
		AnalysisSummary:             wire.AnalysisSummary,
		AllDetectedCues:             wire.AllDetectedCues,
		AnalyzedTranscript:          wire.AnalyzedTranscript,
		Flags:                       wire.Flags,
	}
	if report.AnalysisSummary == "" {
		report.AnalysisSummary = wire.Explanation
	}

	normalizeReport(&report)
	return report, nil
}

func pickProbability(wire wireReport) (float64, bool) {
	switch {
	case wire.OverallDeceptionProbability != nil:
		return *wire.OverallDeceptionProbability, true
	case wire.Probability != nil:
		return *wire.Probability, true
	default:
		return 0, false
	}
}

func normalizeReport(report *ForensicReport) {
	// tolerate models (and imported files) on a 0-100 scale
	if report.OverallDeceptionProbability > 1 && report.OverallDeceptionProbability <= 100 {
		report.OverallDeceptionProbability /= 100
	}
	report.OverallDeceptionProbability = clampUnit(report.OverallDeceptionProbability)

	if !validRecommendation(report.FinalRecommendation) {
		report.FinalRecommendation = recommendationForProbability(report.OverallDeceptionProbability)
	}
	if report.AnalysisSummary == "" {
		report.AnalysisSummary = FallbackSummary
	}

	for i := range report.AnalyzedTranscript {
		line := &report.AnalyzedTranscript[i]
		line.SuspicionScore = clampUnit(line.SuspicionScore)
		if line.SuspicionScore == 0 {
			line.Reason = ""
			line.CuesTriggered = nil
		}
	}

	report.AllDetectedCues = dedupeCues(report)
}

// dedupeCues keeps cues in detection order, first appearance wins.
func dedupeCues(report *ForensicReport) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(cue string) {
		if cue == "" {
			return
		}
		if _, ok := seen[cue]; ok {
			return
		}
		seen[cue] = struct{}{}
		out = append(out, cue)
	}
	for _, cue := range report.AllDetectedCues {
		add(cue)
	}
	for _, line := range report.AnalyzedTranscript {
		for _, cue := range line.CuesTriggered {
			add(cue)
		}
	}
	return out
}

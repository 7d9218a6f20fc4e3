package analyses

// JSON schema (v1):
// {
//   "overallDeceptionProbability": "number (0-1)",
//   "finalRecommendation": "No Red Flags | Low Risk | Medium Risk | High Risk",
//   "analysisSummary": "string",
//   "allDetectedCues": ["string"],
//   "analyzedTranscript": [
//     {
//       "speaker": "string",
//       "lineNumber": "integer (1-based)",
//       "text": "string (verbatim transcript line)",
//       "suspicionScore": "number (0-1)",
//       "reason": "string ('' when score is 0)",
//       "cuesTriggered": ["string"]
//     }
//   ]
// }
//
// Some model runs collapse to a compact shape instead:
// {"probability": 0.82, "flags": ["..."], "explanation": "..."}
// Parsing accepts both; see parse.go.
type ForensicReport struct {
	OverallDeceptionProbability float64        `json:"overallDeceptionProbability"`
	FinalRecommendation         string         `json:"finalRecommendation"`
	AnalysisSummary             string         `json:"analysisSummary"`
	AllDetectedCues             []string       `json:"allDetectedCues"`
	AnalyzedTranscript          []AnalyzedLine `json:"analyzedTranscript"`
	Flags                       []string       `json:"flags,omitempty"`
}

// AnalyzedLine is the model's verdict on a single transcript line.
type AnalyzedLine struct {
	Speaker        string   `json:"speaker"`
	LineNumber     int      `json:"lineNumber"`
	Text           string   `json:"text"`
	SuspicionScore float64  `json:"suspicionScore"`
	Reason         string   `json:"reason"`
	CuesTriggered  []string `json:"cuesTriggered"`
}

// Recommendation values the model is instructed to choose from.
const (
	RecommendationNoRedFlags = "No Red Flags"
	RecommendationLowRisk    = "Low Risk"
	RecommendationMediumRisk = "Medium Risk"
	RecommendationHighRisk   = "High Risk"
)

// FallbackSummary replaces a missing or empty analysis summary.
const FallbackSummary = "explanation unavailable"

func validRecommendation(rec string) bool {
	switch rec {
	case RecommendationNoRedFlags, RecommendationLowRisk, RecommendationMediumRisk, RecommendationHighRisk:
		return true
	default:
		return false
	}
}

// recommendationForProbability derives a recommendation when the model omits
// one or returns a value outside the instructed set.
func recommendationForProbability(p float64) string {
	switch {
	case p < 0.1:
		return RecommendationNoRedFlags
	case p < 0.4:
		return RecommendationLowRisk
	case p < 0.7:
		return RecommendationMediumRisk
	default:
		return RecommendationHighRisk
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package analyses

import (
	"strings"

	"github.com/Haunschild/dolosX/internal/transcripts"
)

// HighlightedLine is one transcript line merged with the model's verdict for
// it, ready for rendering.
type HighlightedLine struct {
	Number  int      `json:"number"`
	Speaker string   `json:"speaker"`
	Text    string   `json:"text"`
	Score   float64  `json:"score"`
	Color   string   `json:"color"`
	Reason  string   `json:"reason,omitempty"`
	Cues    []string `json:"cues,omitempty"`
	Flagged bool     `json:"flagged"`
}

// Highlight merges a parsed transcript with a report's per-line findings.
// Matching runs in three stages: an analyzed line whose number and trimmed
// text both match wins, then an exact trimmed-text match anywhere, then
// substring containment in either direction. Lines the model paraphrased
// beyond recognition stay unhighlighted.
func Highlight(lines []transcripts.Line, report *ForensicReport) []HighlightedLine {
	out := make([]HighlightedLine, 0, len(lines))
	if report == nil {
		for _, line := range lines {
			out = append(out, plainLine(line))
		}
		return out
	}

	used := make([]bool, len(report.AnalyzedTranscript))
	for _, line := range lines {
		hl := plainLine(line)
		if idx, ok := matchAnalyzed(line, report.AnalyzedTranscript, used); ok {
			used[idx] = true
			found := report.AnalyzedTranscript[idx]
			hl.Score = clampUnit(found.SuspicionScore)
			hl.Color = HeatmapColor(hl.Score)
			hl.Reason = found.Reason
			hl.Cues = found.CuesTriggered
			hl.Flagged = hl.Score > 0
		}
		if !hl.Flagged && matchesFlag(line.Text, report.Flags) {
			hl.Flagged = true
			if hl.Score == 0 {
				hl.Score = 0.5
				hl.Color = HeatmapColor(hl.Score)
			}
		}
		out = append(out, hl)
	}
	return out
}

func plainLine(line transcripts.Line) HighlightedLine {
	return HighlightedLine{
		Number:  line.Number,
		Speaker: line.Speaker,
		Text:    line.Text,
		Color:   HeatmapColor(0),
	}
}

func matchAnalyzed(line transcripts.Line, analyzed []AnalyzedLine, used []bool) (int, bool) {
	want := strings.TrimSpace(line.Text)

	for i, cand := range analyzed {
		if used[i] {
			continue
		}
		if cand.LineNumber == line.Number && strings.TrimSpace(cand.Text) == want {
			return i, true
		}
	}
	for i, cand := range analyzed {
		if used[i] {
			continue
		}
		if strings.TrimSpace(cand.Text) == want {
			return i, true
		}
	}
	// containment on an empty string matches everything
	if want == "" {
		return 0, false
	}
	for i, cand := range analyzed {
		if used[i] {
			continue
		}
		got := strings.TrimSpace(cand.Text)
		if got == "" {
			continue
		}
		if strings.Contains(want, got) || strings.Contains(got, want) {
			return i, true
		}
	}
	return 0, false
}

func matchesFlag(text string, flags []string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for _, flag := range flags {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}
		if strings.Contains(text, flag) || strings.Contains(flag, text) {
			return true
		}
	}
	return false
}

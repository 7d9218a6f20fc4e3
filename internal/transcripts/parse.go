package transcripts

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyTranscript is returned when the submitted text has no content.
var ErrEmptyTranscript = errors.New("transcript is empty")

// SpeakerUnknown labels lines without a recognizable speaker prefix.
const SpeakerUnknown = "Unknown"

// maxSpeakerPrefixLen bounds how far into a line a "Name:" prefix may reach.
// Longer prefixes are treated as part of the utterance, not a speaker tag.
const maxSpeakerPrefixLen = 24

// New parses raw text into a Transcript. Blank lines are skipped for the line
// view but Raw preserves the submitted text byte for byte.
func New(raw, source, fileName string) (Transcript, error) {
	if strings.TrimSpace(raw) == "" {
		return Transcript{}, ErrEmptyTranscript
	}

	lines := ParseLines(raw)
	return Transcript{
		ID:        uuid.NewString(),
		Source:    source,
		FileName:  fileName,
		Raw:       raw,
		Lines:     lines,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ParseLines splits raw text into numbered lines with best-effort speaker
// detection. Line numbers count non-blank lines, 1-based, matching what the
// analysis prompt asks the model to produce.
func ParseLines(raw string) []Line {
	var out []Line
	number := 0
	for _, rawLine := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(strings.TrimSuffix(rawLine, "\r"))
		if trimmed == "" {
			continue
		}
		number++
		speaker, text := splitSpeaker(trimmed)
		out = append(out, Line{
			Number:  number,
			Speaker: speaker,
			Text:    text,
		})
	}
	return out
}

func splitSpeaker(line string) (string, string) {
	idx := strings.Index(line, ":")
	if idx <= 0 || idx > maxSpeakerPrefixLen {
		return SpeakerUnknown, line
	}
	candidate := strings.TrimSpace(line[:idx])
	if candidate == "" || strings.ContainsAny(candidate, ".!?") {
		return SpeakerUnknown, line
	}
	// a timestamp like "14:32" is not a speaker
	if isAllDigits(candidate) {
		return SpeakerUnknown, line
	}
	return candidate, strings.TrimSpace(line[idx+1:])
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

package analyses

import "time"

// Analysis statuses. Analyses are created synchronously, so a record is
// either completed or failed by the time a client sees it.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Analysis is one run of the forensic model over a transcript.
type Analysis struct {
	ID            string          `json:"id"`
	TranscriptID  string          `json:"transcriptId"`
	PromptVersion string          `json:"promptVersion"`
	Provider      string          `json:"provider"`
	Model         string          `json:"model"`
	Status        string          `json:"status"`
	PromptHash    string          `json:"promptHash,omitempty"`
	Report        *ForensicReport `json:"report,omitempty"`
	ErrorCode     string          `json:"errorCode,omitempty"`
	ErrorMessage  string          `json:"errorMessage,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	DurationMs    int64           `json:"durationMs"`
}

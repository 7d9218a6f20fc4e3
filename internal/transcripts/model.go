package transcripts

import "time"

// Source identifies where a transcript came from.
const (
	SourcePaste  = "paste"
	SourceUpload = "upload"
	SourceImport = "import"
)

// Line is a single utterance in a transcript.
type Line struct {
	Number  int    `json:"lineNumber"`
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Transcript is an immutable, ordered record of a call. Raw holds the exact
// submitted text; Lines is the parsed view used for display and matching.
type Transcript struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	FileName  string    `json:"fileName,omitempty"`
	Raw       string    `json:"raw"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"createdAt"`
}

package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Haunschild/dolosX/internal/shared/metrics"
	"github.com/Haunschild/dolosX/internal/shared/telemetry"
	"github.com/Haunschild/dolosX/internal/transcripts"
)

// ExportPayload is the download format for a completed analysis. Importing
// the same payload recreates the transcript and the analysis without an LLM
// call.
type ExportPayload struct {
	ExportedAt time.Time        `json:"exportedAt"`
	Transcript ExportTranscript `json:"transcript"`
	Analysis   Analysis         `json:"analysis"`
}

type ExportTranscript struct {
	ID       string `json:"id"`
	FileName string `json:"fileName,omitempty"`
	Raw      string `json:"raw"`
}

// Export builds the download payload for a completed analysis.
func (s *Service) Export(ctx context.Context, id string) (ExportPayload, error) {
	analysis, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return ExportPayload{}, err
	}
	if analysis.Status != StatusCompleted || analysis.Report == nil {
		return ExportPayload{}, fmt.Errorf("validation: analysis %s has no report to export", id)
	}
	transcript, err := s.Transcripts.GetByID(ctx, analysis.TranscriptID)
	if err != nil {
		return ExportPayload{}, err
	}
	return ExportPayload{
		ExportedAt: time.Now().UTC(),
		Transcript: ExportTranscript{ID: transcript.ID, FileName: transcript.FileName, Raw: transcript.Raw},
		Analysis:   analysis,
	}, nil
}

// Import accepts either a full export payload or a bare model report. A bare
// report applies to the current transcript; an export payload recreates its
// transcript first. No LLM call is made.
func (s *Service) Import(ctx context.Context, requestID string, data []byte) (Result, error) {
	payload, isEnvelope := decodeEnvelope(data)

	var transcript transcripts.Transcript
	var report ForensicReport
	var err error

	if isEnvelope {
		transcript, err = transcripts.New(payload.Transcript.Raw, transcripts.SourceImport, payload.Transcript.FileName)
		if err != nil {
			return Result{}, fmt.Errorf("validation: imported transcript: %w", err)
		}
		if err := s.Transcripts.Create(ctx, transcript); err != nil {
			return Result{}, err
		}
		report = *payload.Analysis.Report
		normalizeReport(&report)
	} else {
		transcript, err = s.Transcripts.Current(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("validation: import needs a current transcript: %w", err)
		}
		report, err = ParseReport(data)
		if err != nil {
			return Result{}, err
		}
	}

	now := time.Now().UTC()
	analysis := Analysis{
		ID:            uuid.NewString(),
		TranscriptID:  transcript.ID,
		PromptVersion: "imported",
		Provider:      "import",
		Model:         importedModel(payload, isEnvelope),
		Status:        StatusCompleted,
		Report:        &report,
		CreatedAt:     now,
		CompletedAt:   &now,
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Result{}, err
	}

	metrics.IncAnalysisImported()
	telemetry.Info("analysis.imported", map[string]any{
		"request_id":    requestID,
		"transcript_id": transcript.ID,
		"analysis_id":   analysis.ID,
	})

	return Result{
		Analysis:   analysis,
		Transcript: transcript,
		Lines:      Highlight(transcript.Lines, &report),
	}, nil
}

func decodeEnvelope(data []byte) (ExportPayload, bool) {
	var payload ExportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return ExportPayload{}, false
	}
	if strings.TrimSpace(payload.Transcript.Raw) == "" || payload.Analysis.Report == nil {
		return ExportPayload{}, false
	}
	return payload, true
}

func importedModel(payload ExportPayload, isEnvelope bool) string {
	if isEnvelope && payload.Analysis.Model != "" {
		return payload.Analysis.Model
	}
	return "unknown"
}

package analyses

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Haunschild/dolosX/internal/llm"
	"github.com/Haunschild/dolosX/internal/shared/metrics"
	"github.com/Haunschild/dolosX/internal/shared/telemetry"
	"github.com/Haunschild/dolosX/internal/transcripts"
)

// Service contains business logic for analyses.
type Service struct {
	Repo          Repo
	Transcripts   transcripts.Repo
	LLM           llm.Client
	Provider      string
	Model         string
	PromptVersion string
}

// Result bundles an analysis with the transcript it ran over and the
// per-line highlight view.
type Result struct {
	Analysis   Analysis               `json:"analysis"`
	Transcript transcripts.Transcript `json:"transcript"`
	Lines      []HighlightedLine      `json:"lines"`
}

// Analyze runs the forensic model over a stored transcript and blocks until
// the verdict is in. Exactly one outbound request is made; any failure is
// recorded and returned inline, and the caller is free to try again.
func (s *Service) Analyze(ctx context.Context, requestID, transcriptID string) (Result, error) {
	transcript, err := s.Transcripts.GetByID(ctx, transcriptID)
	if err != nil {
		return Result{}, err
	}

	analysis := Analysis{
		ID:            uuid.NewString(),
		TranscriptID:  transcript.ID,
		PromptVersion: s.PromptVersion,
		Provider:      normalizeProvider(s.Provider),
		Model:         s.Model,
		CreatedAt:     time.Now().UTC(),
	}

	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.started", map[string]any{
		"request_id":    requestID,
		"transcript_id": transcript.ID,
		"analysis_id":   analysis.ID,
		"provider":      analysis.Provider,
		"model":         analysis.Model,
	})

	var promptHash string
	llmCtx := llm.WithPromptHashCapture(ctx, &promptHash)
	raw, err := s.LLM.AnalyzeTranscript(llmCtx, llm.AnalyzeInput{
		TranscriptText: transcript.Raw,
		PromptVersion:  analysis.PromptVersion,
	})
	analysis.PromptHash = promptHash
	if err != nil {
		return s.failAnalysis(ctx, requestID, transcript, analysis, err)
	}

	report, err := ParseReport(raw)
	if err != nil {
		return s.failAnalysis(ctx, requestID, transcript, analysis, err)
	}

	completedAt := time.Now().UTC()
	analysis.Status = StatusCompleted
	analysis.Report = &report
	analysis.CompletedAt = &completedAt
	analysis.DurationMs = completedAt.Sub(analysis.CreatedAt).Milliseconds()
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Result{}, err
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(analysis.DurationMs))
	telemetry.Info("analysis.status", map[string]any{
		"request_id":    requestID,
		"transcript_id": transcript.ID,
		"analysis_id":   analysis.ID,
		"status":        StatusCompleted,
		"duration_ms":   analysis.DurationMs,
		"probability":   report.OverallDeceptionProbability,
	})

	return Result{
		Analysis:   analysis,
		Transcript: transcript,
		Lines:      Highlight(transcript.Lines, &report),
	}, nil
}

func (s *Service) failAnalysis(ctx context.Context, requestID string, transcript transcripts.Transcript, analysis Analysis, cause error) (Result, error) {
	completedAt := time.Now().UTC()
	analysis.Status = StatusFailed
	analysis.ErrorCode = classifyFailure(cause)
	analysis.ErrorMessage = sanitizeError(cause)
	analysis.CompletedAt = &completedAt
	analysis.DurationMs = completedAt.Sub(analysis.CreatedAt).Milliseconds()
	if err := s.Repo.Create(ctx, analysis); err != nil {
		telemetry.Error("analysis.store_failed", map[string]any{
			"request_id":  requestID,
			"analysis_id": analysis.ID,
			"error":       sanitizeError(err),
		})
	}

	metrics.IncAnalysisFailed()
	metrics.ObserveAnalysisDurationMs(float64(analysis.DurationMs))
	telemetry.Info("analysis.status", map[string]any{
		"request_id":    requestID,
		"transcript_id": transcript.ID,
		"analysis_id":   analysis.ID,
		"status":        StatusFailed,
		"error_code":    analysis.ErrorCode,
		"duration_ms":   analysis.DurationMs,
	})

	return Result{Analysis: analysis, Transcript: transcript, Lines: Highlight(transcript.Lines, nil)}, cause
}

// Get returns a stored analysis joined with its transcript view.
func (s *Service) Get(ctx context.Context, id string) (Result, error) {
	analysis, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Result{}, err
	}
	transcript, err := s.Transcripts.GetByID(ctx, analysis.TranscriptID)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Analysis:   analysis,
		Transcript: transcript,
		Lines:      Highlight(transcript.Lines, analysis.Report),
	}, nil
}

// Summary is one row in the analysis history list.
type Summary struct {
	ID             string    `json:"id"`
	TranscriptID   string    `json:"transcriptId"`
	Status         string    `json:"status"`
	Probability    float64   `json:"probability"`
	Recommendation string    `json:"recommendation"`
	ErrorCode      string    `json:"errorCode,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// List returns analysis summaries newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	records, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(records))
	for _, a := range records {
		row := Summary{
			ID:           a.ID,
			TranscriptID: a.TranscriptID,
			Status:       a.Status,
			ErrorCode:    a.ErrorCode,
			CreatedAt:    a.CreatedAt,
		}
		if a.Report != nil {
			row.Probability = a.Report.OverallDeceptionProbability
			row.Recommendation = a.Report.FinalRecommendation
		}
		out = append(out, row)
	}
	return out, nil
}

func normalizeProvider(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return "openai"
	}
	return provider
}

func classifyFailure(err error) string {
	if err == nil {
		return CodeInternal
	}
	if errors.Is(err, llm.ErrNoCredential) {
		return CodeConfigError
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeLLMTimeout
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline") {
		return CodeLLMTimeout
	}
	if strings.Contains(msg, "llm output parse") || strings.Contains(msg, "llm output invalid") || strings.Contains(msg, "schema") {
		return CodeSchemaMismatch
	}
	if strings.Contains(msg, "validation") {
		return CodeValidation
	}
	return CodeInternal
}

// HTTPStatusForCode maps a failure code to the response status for inline
// analyze errors.
func HTTPStatusForCode(code string) int {
	switch code {
	case CodeConfigError:
		return 503
	case CodeLLMTimeout:
		return 504
	case CodeSchemaMismatch:
		return 502
	case CodeValidation:
		return 400
	default:
		return 502
	}
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}

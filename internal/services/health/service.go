package health

// Service encapsulates health-related checks.
type Service struct {
	llmConfigured bool
	model         string
}

// NewService constructs a new health service.
func NewService(llmConfigured bool, model string) *Service {
	return &Service{llmConfigured: llmConfigured, model: model}
}

// Status returns the health payload. The process is healthy even without an
// LLM credential; analysis requests just fail with a config error until one
// is set.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":            true,
		"llmConfigured": s.llmConfigured,
		"model":         s.model,
	}
}

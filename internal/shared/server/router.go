package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Haunschild/dolosX/internal/analyses"
	"github.com/Haunschild/dolosX/internal/llm"
	"github.com/Haunschild/dolosX/internal/llm/openai"
	"github.com/Haunschild/dolosX/internal/services/health"
	"github.com/Haunschild/dolosX/internal/shared/config"
	"github.com/Haunschild/dolosX/internal/shared/metrics"
	"github.com/Haunschild/dolosX/internal/shared/server/middleware"
	"github.com/Haunschild/dolosX/internal/shared/server/respond"
	"github.com/Haunschild/dolosX/internal/shared/telemetry"
	"github.com/Haunschild/dolosX/internal/transcripts"
	"github.com/Haunschild/dolosX/internal/web"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	llmClient := buildLLMClient(cfg)
	transcriptRepo := transcripts.NewMemoryRepo()
	analysisRepo := analyses.NewMemoryRepo()

	transcriptHandler := transcripts.NewHandler(transcriptRepo, cfg.MaxUploadBytes)
	analysisHandler := &analyses.Handler{Service: &analyses.Service{
		Repo:          analysisRepo,
		Transcripts:   transcriptRepo,
		LLM:           llmClient,
		Provider:      cfg.LLMProvider,
		Model:         cfg.LLMModel,
		PromptVersion: cfg.PromptVersion,
	}}
	healthSvc := health.NewService(cfg.OpenAIAPIKey != "", cfg.LLMModel)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	transcriptHandler.RegisterRoutes(api)
	analysisHandler.Register(api)

	r.GET("/metrics", metrics.Handler())
	web.Register(r)

	return r
}

func buildLLMClient(cfg config.Config) llm.Client {
	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, time.Duration(cfg.LLMTimeoutSecs)*time.Second)
	if err != nil {
		telemetry.Warn("llm.client_config", map[string]any{"error": err.Error()})
		fallback, _ := openai.NewClient(cfg.OpenAIAPIKey, "gpt-4-turbo", time.Duration(cfg.LLMTimeoutSecs)*time.Second)
		return fallback
	}
	return client
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

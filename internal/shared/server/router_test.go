package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Haunschild/dolosX/internal/shared/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:           "8080",
		Env:            "test",
		LLMProvider:    "openai",
		LLMModel:       "gpt-4-turbo",
		LLMTimeoutSecs: 1,
		PromptVersion:  "v1",
		MaxUploadBytes: 1 << 20,
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := NewRouter(testConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ok"] != true {
		t.Fatalf("expected ok true, got %v", body)
	}
	if body["llmConfigured"] != false {
		t.Fatalf("expected llmConfigured false without key, got %v", body)
	}
}

func TestUIServedAtRoot(t *testing.T) {
	router := NewRouter(testConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "dolosX") {
		t.Fatalf("expected UI markup at root")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := NewRouter(testConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "analysis_started_total") {
		t.Fatalf("expected counter exposition, got %q", rec.Body.String())
	}
}

func TestAnalyzeWithoutCredentialIs503(t *testing.T) {
	router := NewRouter(testConfig())

	create := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", strings.NewReader(`{"text":"Agent: hello\nClaimant: hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(create, req)
	if create.Code != http.StatusCreated && create.Code != http.StatusOK {
		t.Fatalf("create transcript failed: %d %s", create.Code, create.Body.String())
	}
	var transcript struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(create.Body.Bytes(), &transcript); err != nil {
		t.Fatalf("decode transcript: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/transcripts/"+transcript.ID+"/analyze", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without credential, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9000":  ":9000",
		":9000": ":9000",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q): expected %q, got %q", in, want, got)
		}
	}
}

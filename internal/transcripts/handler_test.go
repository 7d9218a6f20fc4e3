package transcripts

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := NewMemoryRepo()
	handler := NewHandler(repo, 1<<20)
	r := gin.New()
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)
	return r, repo
}

func TestCreateTranscriptFromJSON(t *testing.T) {
	router, repo := setupRouter(t)

	body, _ := json.Marshal(map[string]string{"text": "Agent: Hello.\nClaimant: Hi."})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created Transcript
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(created.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(created.Lines))
	}

	current, err := repo.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.ID != created.ID {
		t.Fatalf("expected new transcript to become current")
	}
}

func TestCreateTranscriptRejectsEmpty(t *testing.T) {
	router, _ := setupRouter(t)

	body, _ := json.Marshal(map[string]string{"text": "   "})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty transcript, got %d", resp.Code)
	}
}

func TestCreateTranscriptFromUpload(t *testing.T) {
	router, _ := setupRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "call.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("Agent: Hello.\nClaimant: My car was stolen.")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created Transcript
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Source != SourceUpload {
		t.Fatalf("expected source upload, got %q", created.Source)
	}
	if created.FileName != "call.txt" {
		t.Fatalf("expected file name recorded, got %q", created.FileName)
	}
}

func TestCreateTranscriptUnsupportedUpload(t *testing.T) {
	router, _ := setupRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="pic.png"`}
	header["Content-Type"] = []string{"image/png"}
	fw, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := fw.Write([]byte{0x89, 0x50, 0x4e, 0x47}); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcripts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported upload, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "unsupported") {
		t.Fatalf("expected unsupported file type message, got %s", resp.Body.String())
	}
}

func TestGetCurrentWithoutTranscript(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/current", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when no transcript loaded, got %d", resp.Code)
	}
}

func TestGetTranscriptByID(t *testing.T) {
	router, repo := setupRouter(t)

	transcript, err := New("Agent: Hello.", SourcePaste, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := repo.Create(context.Background(), transcript); err != nil {
		t.Fatalf("create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/"+transcript.ID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/transcripts/missing-id", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", resp.Code)
	}
}

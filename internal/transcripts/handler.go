package transcripts

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Haunschild/dolosX/internal/extract"
	"github.com/Haunschild/dolosX/internal/shared/server/respond"
	"github.com/Haunschild/dolosX/internal/shared/telemetry"
	"github.com/Haunschild/dolosX/internal/shared/util"
)

// Handler wires HTTP handlers to the transcript repo.
type Handler struct {
	Repo           Repo
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &Handler{Repo: repo, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches transcript routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/transcripts", h.create)
	rg.GET("/transcripts/current", h.current)
	rg.GET("/transcripts/:id", h.get)
}

type createRequest struct {
	Text string `json:"text"`
}

func (h *Handler) create(c *gin.Context) {
	contentType := c.ContentType()

	var (
		text     string
		source   string
		fileName string
	)

	if strings.HasPrefix(contentType, "multipart/form-data") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

		fileHeader, err := c.FormFile("file")
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "file is required", nil)
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unable to read file", nil)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unable to read file", nil)
			return
		}

		text, err = extract.TextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
		if err != nil {
			if errors.Is(err, extract.ErrUnsupported) {
				respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unsupported file type", nil)
				return
			}
			respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unable to extract transcript text", nil)
			return
		}
		source = SourceUpload
		fileName, err = util.SanitizeFileName(fileHeader.Filename)
		if err != nil {
			fileName = ""
		}
	} else {
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", nil)
			return
		}
		text = req.Text
		source = SourcePaste
	}

	transcript, err := New(text, source, fileName)
	if err != nil {
		if errors.Is(err, ErrEmptyTranscript) {
			respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "transcript text is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create transcript", nil)
		return
	}

	if err := h.Repo.Create(c.Request.Context(), transcript); err != nil {
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to store transcript", nil)
		return
	}

	c.Set("transcriptId", transcript.ID)
	telemetry.Info("transcript.created", map[string]any{
		"transcript_id": transcript.ID,
		"source":        transcript.Source,
		"line_count":    len(transcript.Lines),
		"request_id":    c.GetString("requestId"),
	})

	respond.JSON(c, http.StatusCreated, transcript)
}

func (h *Handler) current(c *gin.Context) {
	transcript, err := h.Repo.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "no transcript loaded", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to fetch transcript", nil)
		return
	}
	respond.JSON(c, http.StatusOK, transcript)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respond.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "transcript id is required", nil)
		return
	}

	transcript, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "transcript not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to fetch transcript", nil)
		return
	}
	respond.JSON(c, http.StatusOK, transcript)
}

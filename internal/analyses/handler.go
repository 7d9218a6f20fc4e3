package analyses

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Haunschild/dolosX/internal/shared/server/middleware"
	"github.com/Haunschild/dolosX/internal/shared/server/respond"
	"github.com/Haunschild/dolosX/internal/transcripts"
)

const maxImportBytes = 2 << 20

// Handler wires analysis routes.
type Handler struct {
	Service *Service
}

// Register mounts the analysis routes on the given group.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.POST("/transcripts/:id/analyze", h.analyze)
	api.GET("/analyses", h.list)
	api.GET("/analyses/:id", h.get)
	api.GET("/analyses/:id/export", h.export)
	api.POST("/analyses/import", h.importAnalysis)
}

func (h *Handler) analyze(c *gin.Context) {
	transcriptID := c.Param("id")
	c.Set("transcriptId", transcriptID)

	result, err := h.Service.Analyze(c.Request.Context(), middleware.RequestIDFromContext(c), transcriptID)
	if err != nil {
		if errors.Is(err, transcripts.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "transcript not found", nil)
			return
		}
		code := result.Analysis.ErrorCode
		if code == "" {
			code = classifyFailure(err)
		}
		respond.Error(c, HTTPStatusForCode(code), code, result.Analysis.ErrorMessage, gin.H{
			"analysisId": result.Analysis.ID,
		})
		return
	}
	c.Set("analysisId", result.Analysis.ID)
	respond.OK(c, result)
}

func (h *Handler) get(c *gin.Context) {
	result, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, transcripts.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "analysis not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, CodeInternal, "failed to load analysis", nil)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) list(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)
	rows, err := h.Service.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, CodeInternal, "failed to list analyses", nil)
		return
	}
	respond.OK(c, gin.H{"analyses": rows})
}

func (h *Handler) export(c *gin.Context) {
	payload, err := h.Service.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "NOT_FOUND", "analysis not found", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, CodeValidation, sanitizeError(err), nil)
		return
	}
	name := fmt.Sprintf("analysis-%s.json", payload.Analysis.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	respond.OK(c, payload)
}

func (h *Handler) importAnalysis(c *gin.Context) {
	data, err := importBody(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, sanitizeError(err), nil)
		return
	}

	result, err := h.Service.Import(c.Request.Context(), middleware.RequestIDFromContext(c), data)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeValidation, sanitizeError(err), nil)
		return
	}
	c.Set("analysisId", result.Analysis.ID)
	respond.JSON(c, http.StatusCreated, result)
}

// importBody reads the report JSON from a multipart "file" part or the raw
// request body.
func importBody(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxImportBytes {
			return nil, errors.New("import file too large")
		}
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxImportBytes))
	}
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty import body")
	}
	return data, nil
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return fallback
	}
	return val
}

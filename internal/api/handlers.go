package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openjusticia/corrupcion-api/internal/analytics"
	"github.com/openjusticia/corrupcion-api/internal/export"
	"github.com/openjusticia/corrupcion-api/pkg/logger"
)

// Default display caps, matching what the dashboard requests.
const (
	defaultCrimeLimit      = 10
	defaultCourtLimit      = 20
	defaultProsecutorLimit = 20
	defaultJudgeLimit      = 10
	defaultDurationLimit   = 50
	defaultOutlierLimit    = 5
	defaultPersonLimit     = 20
	defaultPageSize        = 50
)

// Handler holds the dependencies for all HTTP handlers
type Handler struct {
	service *analytics.Service
	export  *export.Service
	logger  *logger.Logger
	timeout time.Duration
}

// NewHandler creates a new Handler instance
func NewHandler(service *analytics.Service, exportSvc *export.Service, log *logger.Logger, timeout time.Duration) *Handler {
	return &Handler{
		service: service,
		export:  exportSvc,
		logger:  log,
		timeout: timeout,
	}
}

// queryContext bounds one request's store queries.
func (h *Handler) queryContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// fail translates a service error into the right HTTP response.
func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, analytics.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// limitParam reads an integer query parameter, falling back to def on
// absence or garbage and clamping non-positive values to 1.
func limitParam(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if v < 1 {
		return 1
	}
	return v
}

// offsetParam reads a non-negative integer query parameter.
func offsetParam(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Health returns service health status
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"cache":     h.export.CacheStats(),
	})
}

// StatusBreakdown returns per-status case counts and percentages.
func (h *Handler) StatusBreakdown(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.StatusBreakdown(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CasesByStatus lists cases in one procedural status.
func (h *Handler) CasesByStatus(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.CasesByStatus(ctx, c.Param("estado"),
		offsetParam(c, "offset"), limitParam(c, "limit", defaultPageSize))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CasesByYear returns the per-start-year timeline.
func (h *Handler) CasesByYear(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.YearBreakdown(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// TopCrimes returns the most frequent crime types.
func (h *Handler) TopCrimes(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.CrimeBreakdown(ctx, limitParam(c, "limit", defaultCrimeLimit))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// OpenCasesByCourt ranks courts by open cases.
func (h *Handler) OpenCasesByCourt(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.OpenCasesByCourt(ctx, limitParam(c, "limit", defaultCourtLimit))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ClosedCasesByCourt ranks courts by closed cases.
func (h *Handler) ClosedCasesByCourt(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.ClosedCasesByCourt(ctx, limitParam(c, "limit", defaultCourtLimit))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CasesByForum returns counts per forum.
func (h *Handler) CasesByForum(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.ForumBreakdown(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CasesByProsecutor returns counts per prosecutor.
func (h *Handler) CasesByProsecutor(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.ProsecutorBreakdown(ctx, limitParam(c, "limit", defaultProsecutorLimit))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CasesByOffice returns counts per prosecutor's office.
func (h *Handler) CasesByOffice(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.OfficeBreakdown(ctx, limitParam(c, "limit", defaultProsecutorLimit))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// JudgeDelays ranks judges by mean case delay.
func (h *Handler) JudgeDelays(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.JudgeDelayBreakdown(ctx, limitParam(c, "limit", defaultJudgeLimit))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// InstructionDuration returns global duration statistics plus the
// longest cases.
func (h *Handler) InstructionDuration(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.DurationBreakdown(ctx, limitParam(c, "limit", defaultDurationLimit))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DurationOutliers returns the extreme-duration cases.
func (h *Handler) DurationOutliers(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.OutlierBreakdown(ctx, limitParam(c, "limit", defaultOutlierLimit))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// MostDenounced ranks accused persons.
func (h *Handler) MostDenounced(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.MostDenounced(ctx, limitParam(c, "limit", defaultPersonLimit))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// MostDenouncing ranks denouncing persons.
func (h *Handler) MostDenouncing(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.MostDenouncing(ctx, limitParam(c, "limit", defaultPersonLimit))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// LastRefresh reports when the dataset was last loaded.
func (h *Handler) LastRefresh(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	out, err := h.service.LastRefresh(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DownloadArchive serves the full-dataset ZIP.
func (h *Handler) DownloadArchive(c *gin.Context) {
	ctx, cancel := h.queryContext(c)
	defer cancel()

	data, err := h.export.Archive(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	exportDownloads.Inc()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", h.export.Filename()))
	c.Data(http.StatusOK, "application/zip", data)
}

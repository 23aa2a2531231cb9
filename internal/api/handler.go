package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/blackswanwtf/macro-indicators-service/internal/domain/dto"
	"github.com/blackswanwtf/macro-indicators-service/internal/domain/models"
	"github.com/blackswanwtf/macro-indicators-service/internal/service"
	"github.com/blackswanwtf/macro-indicators-service/internal/storage"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// AnalysisRunner is the slice of the analyzer the handlers need;
// tests substitute stubs.
type AnalysisRunner interface {
	RunCycle(ctx context.Context) (*models.AnalysisRecord, error)
}

// Handler exposes the analysis endpoints.
type Handler struct {
	runner AnalysisRunner
	repo   storage.AnalysisRepository
}

func NewHandler(runner AnalysisRunner, repo storage.AnalysisRepository) *Handler {
	return &Handler{runner: runner, repo: repo}
}

// RunAnalysis godoc
// @Summary      Trigger an analysis cycle
// @Description  Runs one full analysis cycle; rejects the request when a cycle is already in flight
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  dto.RunResponse        "Completed or skipped"
// @Failure      409  {object}  dto.ErrorResponse      "Cycle already in progress"
// @Failure      500  {object}  dto.ErrorResponse      "Cycle failed"
// @Router       /api/v1/analysis/run [post]
func (h *Handler) RunAnalysis(c *gin.Context) {
	rec, err := h.runner.RunCycle(c.Request.Context())
	switch {
	case errors.Is(err, service.ErrCycleInProgress):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("analysis cycle already in progress", nil))
	case errors.Is(err, service.ErrNoData):
		c.JSON(http.StatusOK, dto.RunResponse{Status: "skipped"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("analysis cycle failed", err))
	default:
		resp := dto.FromRecord(*rec)
		c.JSON(http.StatusOK, dto.RunResponse{Status: "completed", Analysis: &resp})
	}
}

// ListAnalyses godoc
// @Summary      List recent analyses
// @Description  Returns the most recent analysis records, newest first
// @Tags         analysis
// @Produce      json
// @Param        limit  query     int  false  "Max records (1-100, default 10)"
// @Success      200    {array}   dto.AnalysisResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/v1/analysis [get]
func (h *Handler) ListAnalyses(c *gin.Context) {
	limit := defaultListLimit
	if s := c.Query("limit"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid limit parameter", err))
			return
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	recs, err := h.repo.ListRecent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to list analyses", err))
		return
	}

	out := make([]dto.AnalysisResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, dto.FromRecord(rec))
	}
	c.JSON(http.StatusOK, out)
}

// LatestAnalysis godoc
// @Summary      Latest analysis
// @Description  Returns the most recent analysis record
// @Tags         analysis
// @Produce      json
// @Success      200  {object}  dto.AnalysisResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/analysis/latest [get]
func (h *Handler) LatestAnalysis(c *gin.Context) {
	recs, err := h.repo.ListRecent(1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to load latest analysis", err))
		return
	}
	if len(recs) == 0 {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no analyses recorded yet", nil))
		return
	}
	c.JSON(http.StatusOK, dto.FromRecord(recs[0]))
}

package http

import (
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"market-briefing/internal/briefing/dto"
	"market-briefing/internal/briefing/service"
	"market-briefing/pkg/logger"
)

// BriefingHandler handles HTTP requests that trigger briefing runs.
type BriefingHandler struct {
	briefingService service.BriefingService
	logger          *logger.Logger
	running         sync.Mutex
}

// NewBriefingHandler creates a new BriefingHandler.
func NewBriefingHandler(briefingService service.BriefingService, logger *logger.Logger) *BriefingHandler {
	return &BriefingHandler{briefingService: briefingService, logger: logger}
}

// RegisterRoutes registers the briefing routes to the Echo group.
func (h *BriefingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.RunBriefing)
	g.GET("/preview", h.PreviewBriefing)
}

// Health answers liveness probes.
func (h *BriefingHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// RunBriefing runs the pipeline and publishes the result unless the body sets publish to false.
func (h *BriefingHandler) RunBriefing(c echo.Context) error {
	var req dto.RunBriefingRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
		}
	}
	publish := req.Publish == nil || *req.Publish
	return h.run(c, publish)
}

// PreviewBriefing runs the pipeline without publishing.
func (h *BriefingHandler) PreviewBriefing(c echo.Context) error {
	return h.run(c, false)
}

func (h *BriefingHandler) run(c echo.Context, publish bool) error {
	if !h.running.TryLock() {
		return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "a briefing run is already in progress"})
	}
	defer h.running.Unlock()

	result, err := h.briefingService.Run(c.Request().Context(), publish)
	if err != nil {
		if errors.Is(err, service.ErrNoMarketData) {
			return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.ErrorContext(c.Request().Context(), "Briefing run failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, dto.BriefingResponse{
		RunID:     result.RunID,
		Briefing:  result.Briefing,
		Published: result.Published,
		Analysis:  result.Analysis,
	})
}

package api

import (
	"time"

	"github.com/labstack/echo/v4"

	models "MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	"MacroPulse/internal/services/signals"
	"MacroPulse/internal/usecase"
	xhttp "MacroPulse/pkg/http"
	xlogger "MacroPulse/pkg/logger"
)

// DashboardHandler implements the Echo-based HTTP API for the mobile
// dashboard.
type DashboardHandler struct {
	logger   *xlogger.Logger
	snapshot *usecase.SnapshotUseCase
	chart    *usecase.ChartUseCase
	trend    *usecase.TrendUseCase
	tracker  *signals.RegimeChangeTracker
	store    domrepo.HistoryStore
}

func NewDashboardHandler(
	logger *xlogger.Logger,
	snapshot *usecase.SnapshotUseCase,
	chart *usecase.ChartUseCase,
	trend *usecase.TrendUseCase,
	tracker *signals.RegimeChangeTracker,
	store domrepo.HistoryStore,
) *DashboardHandler {
	return &DashboardHandler{
		logger:   logger,
		snapshot: snapshot,
		chart:    chart,
		trend:    trend,
		tracker:  tracker,
		store:    store,
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/snapshot", h.Snapshot)
	g.GET("/regime", h.Regime)
	g.GET("/chart", h.Chart)
	g.GET("/chart/nearest", h.Nearest)
	g.GET("/trend", h.Trend)
	g.GET("/alerts/settings", h.GetAlertSettings)
	g.PUT("/alerts/settings", h.PutAlertSettings)
}

func (h *DashboardHandler) Snapshot(c echo.Context) error {
	req := &models.SnapshotRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.snapshot.GetSnapshot(c.Request().Context(), usecase.GetSnapshotParams{
		Days:   req.Days,
		Symbol: req.Symbol,
	})
	if err != nil {
		h.logger.Error("snapshot usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, res)
}

type regimeResponse struct {
	Regime               models.MarketRegime `json:"regime"`
	Description          string              `json:"description"`
	LastChangeAt         *time.Time          `json:"last_change_at,omitempty"`
	NotificationsEnabled bool                `json:"notifications_enabled"`
}

func (h *DashboardHandler) Regime(c echo.Context) error {
	ctx := c.Request().Context()

	snap, err := h.snapshot.GetSnapshot(ctx, usecase.GetSnapshotParams{})
	if err != nil {
		h.logger.Error("regime usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	state, err := h.tracker.State(ctx)
	if err != nil {
		h.logger.Error("tracker state error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	return xhttp.SuccessResponse(c, regimeResponse{
		Regime:               snap.Regime,
		Description:          snap.Regime.Description(),
		LastChangeAt:         state.LastChangeAt,
		NotificationsEnabled: state.NotificationsEnabled,
	})
}

func (h *DashboardHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.chart.GetChart(c.Request().Context(), usecase.GetChartParams{
		Indicator: models.IndicatorType(req.Indicator),
		Days:      req.Days,
		MaxPoints: req.MaxPoints,
	})
	if err != nil {
		h.logger.Error("chart usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardHandler) Nearest(c echo.Context) error {
	req := &models.NearestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	target, ok := xhttp.ParseTime(req.TS)
	if !ok {
		return xhttp.BadRequestResponse(c, xhttp.BadRequestError("ts must be RFC3339 or unix seconds"))
	}

	res, err := h.chart.GetNearest(c.Request().Context(), usecase.NearestParams{
		Indicator: models.IndicatorType(req.Indicator),
		Days:      req.Days,
		Target:    target,
	})
	if err != nil {
		h.logger.Error("nearest usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DashboardHandler) Trend(c echo.Context) error {
	req := &models.TrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.trend.GetTrend(c.Request().Context(), req.Symbol)
	if err != nil {
		h.logger.Error("trend usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

type alertSettingsResponse struct {
	Enabled bool `json:"enabled"`
}

func (h *DashboardHandler) GetAlertSettings(c echo.Context) error {
	state, err := h.tracker.State(c.Request().Context())
	if err != nil {
		h.logger.Error("tracker state error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, alertSettingsResponse{Enabled: state.NotificationsEnabled})
}

func (h *DashboardHandler) PutAlertSettings(c echo.Context) error {
	req := &models.AlertSettingsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.tracker.SetNotificationsEnabled(c.Request().Context(), *req.Enabled); err != nil {
		h.logger.Error("alert settings update error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, alertSettingsResponse{Enabled: *req.Enabled})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *DashboardHandler) Health(c echo.Context) error {
	checks := map[string]string{}
	status := "ok"

	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			checks["history_store"] = err.Error()
			status = "degraded"
		} else {
			checks["history_store"] = "ok"
		}
	}

	return xhttp.SuccessResponse(c, healthResponse{Status: status, Checks: checks})
}

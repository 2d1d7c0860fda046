package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/semearhq/semear-backend/internal/service"
)

type CycleHandler struct {
	svc service.CycleService
}

func NewCycleHandler(svc service.CycleService) *CycleHandler {
	return &CycleHandler{svc: svc}
}

func (h *CycleHandler) Status(c echo.Context) error {
	cfg, err := h.svc.Status(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to load cycle state"))
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *CycleHandler) ForceCycleReset(c echo.Context) error {
	result, err := h.svc.ForceCycleReset(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "cycle reset failed"))
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CycleHandler) ForceSeasonReset(c echo.Context) error {
	result, err := h.svc.ForceSeasonReset(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "season reset failed"))
	}
	return c.JSON(http.StatusOK, result)
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

func (h *CycleHandler) SetPaused(c echo.Context) error {
	var req pauseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.svc.SetPaused(c.Request().Context(), req.Paused); err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to update paused flag"))
	}
	return c.JSON(http.StatusOK, map[string]bool{"paused": req.Paused})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/semearhq/semear-backend/internal/service"
)

type SettlementHandler struct {
	svc service.SettlementService
}

func NewSettlementHandler(svc service.SettlementService) *SettlementHandler {
	return &SettlementHandler{svc: svc}
}

type settleRequest struct {
	FundID *uint64 `json:"fundId"`
}

func (h *SettlementHandler) Settle(c echo.Context) error {
	var req settleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}

	var (
		result *service.Result
		err    error
	)
	if req.FundID != nil {
		result, err = h.svc.Settle(c.Request().Context(), *req.FundID)
	} else {
		result, err = h.svc.SettleOldestDue(c.Request().Context())
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFundNotFound), errors.Is(err, service.ErrNoPendingFund):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", err.Error()))
		case errors.Is(err, service.ErrFundLocked):
			return c.JSON(http.StatusConflict, NewErrorResponse("fund_locked", err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "settlement failed"))
		}
	}
	return c.JSON(http.StatusOK, result)
}

type previewRequest struct {
	FundID uint64 `json:"fundId"`
}

func (h *SettlementHandler) Preview(c echo.Context) error {
	var req previewRequest
	if err := c.Bind(&req); err != nil || req.FundID == 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "fundId is required"))
	}
	preview, err := h.svc.Preview(c.Request().Context(), req.FundID)
	if err != nil {
		if errors.Is(err, service.ErrFundNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "fund not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "preview failed"))
	}
	return c.JSON(http.StatusOK, preview)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/semearhq/semear-backend/internal/service"
)

type AuditHandler struct {
	svc service.AuditService
}

func NewAuditHandler(svc service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

type reconcileRequest struct {
	FundID uint64 `json:"fundId"`
}

func (h *AuditHandler) Reconcile(c echo.Context) error {
	var req reconcileRequest
	if err := c.Bind(&req); err != nil || req.FundID == 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "fundId is required"))
	}
	report, err := h.svc.VerifyBooks(c.Request().Context(), req.FundID)
	if err != nil {
		if errors.Is(err, service.ErrFundNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "fund not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "reconcile failed"))
	}
	return c.JSON(http.StatusOK, report)
}

func (h *AuditHandler) CorrectDuplicates(c echo.Context) error {
	report, err := h.svc.CorrectDuplicates(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "duplicate correction failed"))
	}
	return c.JSON(http.StatusOK, report)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/semearhq/semear-backend/internal/service"
)

type PartnerHandler struct {
	svc service.PartnerService
}

func NewPartnerHandler(svc service.PartnerService) *PartnerHandler {
	return &PartnerHandler{svc: svc}
}

type saleRequest struct {
	UserID      uint64 `json:"userId"`
	AmountCents int64  `json:"amountCents"`
}

func (h *PartnerHandler) RecordSale(c echo.Context) error {
	partnerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid partner id"))
	}
	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.UserID == 0 || req.AmountCents <= 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "userId and a positive amountCents are required"))
	}
	result, err := h.svc.RecordSale(c.Request().Context(), partnerID, req.UserID, req.AmountCents)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "partner or user not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "sale failed"))
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *PartnerHandler) ReleaseCashback(c echo.Context) error {
	purchaseID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid purchase id"))
	}
	result, err := h.svc.ReleaseCashback(c.Request().Context(), purchaseID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "purchase not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "cashback release failed"))
	}
	return c.JSON(http.StatusOK, result)
}

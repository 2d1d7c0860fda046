package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/semearhq/semear-backend/internal/service"
)

type DonationHandler struct {
	svc service.DonationService
}

func NewDonationHandler(svc service.DonationService) *DonationHandler {
	return &DonationHandler{svc: svc}
}

type donateRequest struct {
	DonorID uint64 `json:"donorId"`
	Seeds   int64  `json:"seeds"`
}

func (h *DonationHandler) Donate(c echo.Context) error {
	creatorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid creator id"))
	}
	var req donateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.DonorID == 0 || req.Seeds <= 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "donorId and a positive seeds amount are required"))
	}
	donation, err := h.svc.Donate(c.Request().Context(), req.DonorID, creatorID, req.Seeds)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "creator not found"))
		case errors.Is(err, service.ErrInsufficientSeeds):
			return c.JSON(http.StatusBadRequest, NewErrorResponse("insufficient_seeds", err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "donation failed"))
		}
	}
	return c.JSON(http.StatusCreated, donation)
}

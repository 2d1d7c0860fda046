package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/semearhq/semear-backend/internal/service"
)

type RankingHandler struct {
	svc service.RankingService
}

func NewRankingHandler(svc service.RankingService) *RankingHandler {
	return &RankingHandler{svc: svc}
}

func (h *RankingHandler) Get(c echo.Context) error {
	entries, err := h.svc.Ranking(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to compute ranking"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ranking": entries,
		"total":   len(entries),
	})
}

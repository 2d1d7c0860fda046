package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/semearhq/semear-backend/internal/config"
	"github.com/semearhq/semear-backend/internal/handler"
	appmw "github.com/semearhq/semear-backend/internal/middleware"
	"github.com/semearhq/semear-backend/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(cfg *config.Config, db *gorm.DB) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Authorization", "X-Admin-Key"},
	}))

	locks := service.NewFundLocks()
	settlementSvc := service.NewSettlementService(db, cfg.CreatorShareBps, locks)
	auditSvc := service.NewAuditService(db, locks)
	cycleSvc := service.NewCycleService(db, cfg.CycleLengthDays, cfg.CyclesPerSeason)
	rankingSvc := service.NewRankingService(db)
	donationSvc := service.NewDonationService(db)
	partnerSvc := service.NewPartnerService(db)

	settlementHandler := handler.NewSettlementHandler(settlementSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)
	cycleHandler := handler.NewCycleHandler(cycleSvc)
	rankingHandler := handler.NewRankingHandler(rankingSvc)
	donationHandler := handler.NewDonationHandler(donationSvc)
	partnerHandler := handler.NewPartnerHandler(partnerSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")
	api.GET("/ranking", rankingHandler.Get)
	api.POST("/creators/:id/donations", donationHandler.Donate)
	api.POST("/partners/:id/sales", partnerHandler.RecordSale)

	admin := api.Group("/admin", appmw.RequireAdminKey(cfg.AdminAPIKey))
	admin.POST("/settlements", settlementHandler.Settle)
	admin.POST("/settlements/preview", settlementHandler.Preview)
	admin.POST("/purchases/:id/cashback", partnerHandler.ReleaseCashback)
	admin.POST("/reconcile", auditHandler.Reconcile)
	admin.POST("/reconcile/duplicates", auditHandler.CorrectDuplicates)
	admin.GET("/cycle", cycleHandler.Status)
	admin.POST("/cycle-reset", cycleHandler.ForceCycleReset)
	admin.POST("/season-reset", cycleHandler.ForceSeasonReset)
	admin.POST("/cycle/pause", cycleHandler.SetPaused)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

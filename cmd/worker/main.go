// The worker is the periodic batch trigger: on each tick it settles every
// pending fund whose window has closed, then advances the cycle/season
// clock. Settlement and reset are rare whole-system operations, so a cron
// schedule (hourly by default) is plenty.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/semearhq/semear-backend/internal/config"
	"github.com/semearhq/semear-backend/internal/db"
	"github.com/semearhq/semear-backend/internal/model"
	"github.com/semearhq/semear-backend/internal/repository"
	"github.com/semearhq/semear-backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := model.Migrate(conn); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	locks := service.NewFundLocks()
	settlementSvc := service.NewSettlementService(conn, cfg.CreatorShareBps, locks)
	cycleSvc := service.NewCycleService(conn, cfg.CycleLengthDays, cfg.CyclesPerSeason)
	fundRepo := repository.NewFundRepository(conn)

	c := cron.New()
	_, err = c.AddFunc(cfg.WorkerCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		runOnce(ctx, cycleSvc, settlementSvc, fundRepo)
	})
	if err != nil {
		log.Fatalf("invalid WORKER_CRON %q: %v", cfg.WorkerCron, err)
	}

	log.Printf("worker started, schedule %q", cfg.WorkerCron)
	c.Run()
}

// runOnce settles due funds before ticking the cycle clock. A cycle reset
// clears the eligibility signals (content, purchases' competitive context),
// so ticking first would settle the coinciding fund against empty cohorts.
func runOnce(ctx context.Context, cycleSvc service.CycleService, settlementSvc service.SettlementService, fundRepo repository.FundRepository) {
	due, err := fundRepo.ListPendingDue(ctx, time.Now())
	if err != nil {
		log.Printf("worker: listing due funds failed: %v", err)
	} else {
		for _, fund := range due {
			if _, err := settlementSvc.Settle(ctx, fund.ID); err != nil {
				log.Printf("worker: settling fund %d failed: %v", fund.ID, err)
			}
		}
	}

	if tick, err := cycleSvc.Tick(ctx, time.Now()); err != nil {
		log.Printf("worker: cycle tick failed: %v", err)
	} else if tick.Transitioned {
		log.Printf("worker: period transition to season %d cycle %d",
			tick.Reset.SeasonNumber, tick.Reset.CycleNumber)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/pgdesk/room-service/internal/config"
	"github.com/pgdesk/room-service/internal/repository"
	"github.com/pgdesk/room-service/internal/service"
)

func main() {
	log.Println("Starting reminder scheduler...")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	roomRepo := repository.NewRoomRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	proposals := repository.NewProposalStore(redisClient, cfg.GetProposalTTL())

	roomService := service.NewRoomService(roomRepo, activityRepo, redisClient, cfg)
	paymentService := service.NewPaymentService(roomRepo, paymentRepo, activityRepo, proposals, roomService)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// Monthly rent reminder pass, on the 5th at 09:00 by default.
	_, err = c.AddFunc(cfg.Scheduler.ReminderCron, func() {
		log.Println("Running monthly rent reminder job...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		result, err := paymentService.SendMonthlyReminders(ctx)
		if err != nil {
			log.Printf("Reminder job failed: %v", err)
			return
		}
		log.Printf("Reminder job done: %d sent, %d failed", result.Sent, result.Failed)
	})
	if err != nil {
		log.Fatalf("Error scheduling reminder job: %v", err)
	}

	c.Start()
	log.Println("Scheduler started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	ctx := c.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/pgdesk/room-service/internal/config"
	"github.com/pgdesk/room-service/internal/handler"
	"github.com/pgdesk/room-service/internal/middleware"
	"github.com/pgdesk/room-service/internal/repository"
	"github.com/pgdesk/room-service/internal/service"
	"github.com/pgdesk/room-service/pkg/response"
)

func main() {
	// Load .env if present, environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	roomRepo := repository.NewRoomRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	proposals := repository.NewProposalStore(redisClient, cfg.GetProposalTTL())

	// Initialize services
	roomService := service.NewRoomService(roomRepo, activityRepo, redisClient, cfg)
	paymentService := service.NewPaymentService(roomRepo, paymentRepo, activityRepo, proposals, roomService)

	roomHandler := handler.NewRoomHandler(roomService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	router := setupRoutes(cfg, roomHandler, paymentHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.GetConnMaxLifetime())

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(cfg *config.Config, roomHandler *handler.RoomHandler, paymentHandler *handler.PaymentHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware)
	router.Use(response.LoggingMiddleware)

	// Health checks stay outside authentication
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTAuth(cfg.Auth.JWTSecret))

	admin := middleware.RequireRole("admin", "super_admin")

	// Rooms. The statistics route is registered before the roomNumber
	// pattern so it is not captured as a room number.
	api.HandleFunc("/rooms/statistics", roomHandler.Statistics).Methods("GET")
	api.HandleFunc("/rooms", roomHandler.ListRooms).Methods("GET")
	api.Handle("/rooms", admin(http.HandlerFunc(roomHandler.CreateRoom))).Methods("POST")
	api.HandleFunc("/rooms/{roomNumber}", roomHandler.GetRoom).Methods("GET")
	api.Handle("/rooms/{roomNumber}", admin(http.HandlerFunc(roomHandler.UpdateRoom))).Methods("PUT")
	api.Handle("/rooms/{roomNumber}", admin(http.HandlerFunc(roomHandler.DeleteRoom))).Methods("DELETE")

	// Guests
	api.HandleFunc("/rooms/{roomNumber}/guests", roomHandler.ListGuests).Methods("GET")
	api.Handle("/rooms/{roomNumber}/guests", admin(http.HandlerFunc(roomHandler.AddGuest))).Methods("POST")
	api.Handle("/rooms/{roomNumber}/guests/{userID}", admin(http.HandlerFunc(roomHandler.UpdateGuest))).Methods("PUT")
	api.Handle("/rooms/{roomNumber}/guests/{userID}", admin(http.HandlerFunc(roomHandler.RemoveGuest))).Methods("DELETE")

	// Payments
	api.Handle("/rooms/{roomNumber}/guests/{userID}/payments", admin(http.HandlerFunc(paymentHandler.AddPayment))).Methods("POST")
	api.Handle("/payments/confirmations/{token}", admin(http.HandlerFunc(paymentHandler.ConfirmPayment))).Methods("POST")
	api.Handle("/payments/confirmations/{token}", admin(http.HandlerFunc(paymentHandler.CancelPayment))).Methods("DELETE")

	// Reports
	api.HandleFunc("/payments/details", paymentHandler.PaymentDetails).Methods("GET")
	api.HandleFunc("/payments/overdue", paymentHandler.OverduePayments).Methods("GET")
	api.HandleFunc("/payments/analytics", paymentHandler.PaymentAnalytics).Methods("GET")
	api.HandleFunc("/payments/monthly-pending", paymentHandler.PendingMonthly).Methods("GET")
	api.HandleFunc("/payments/export/csv", paymentHandler.ExportCSV).Methods("GET")
	api.Handle("/payments/send-monthly-reminders", admin(http.HandlerFunc(paymentHandler.SendReminders))).Methods("POST")

	// Activity feed
	api.HandleFunc("/activities/recent", paymentHandler.RecentActivities).Methods("GET")

	return router
}

package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"jvracle/config"
	"jvracle/jobs"
	"jvracle/routes"
	"jvracle/services"
	"jvracle/services/logger"
	"jvracle/services/notification"
	"jvracle/storage"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	appLogger := logger.NewDefaultLogger(logger.InfoLevel)

	var store storage.Store
	if os.Getenv("STORAGE") == "memory" {
		store = storage.NewMemoryStore()
	} else {
		gormStore := storage.NewGormStore(config.DB)
		if err := gormStore.Migrate(); err != nil {
			log.Fatalf("Failed to migrate tables: %v", err)
		}
		store = gormStore
	}

	clock := services.SystemClock{}
	ledger := services.NewLedgerService(store, clock, appLogger)
	registry := services.NewRoomRegistry(store, clock, appLogger)
	guestService := services.NewGuestService(store, appLogger)

	reservationService := services.NewReservationService(services.ReservationServiceOptions{
		Registry:  registry,
		Ledger:    ledger,
		Store:     store,
		Clock:     clock,
		Logger:    appLogger,
		Notifier:  notification.NewMelodyService(m),
		NoShowFee: config.GetEnvInt64("NO_SHOW_FEE", 0),
	})

	// Binding một chiều: chỉ state machine được đụng occupancy,
	// và ledger tra trạng thái reservation qua resolver
	registry.Bind(reservationService)
	ledger.BindResolver(reservationService)

	coordinator := services.NewFolioCoordinator(ledger, reservationService, appLogger)

	boardCache := services.NewBoardCache(config.RedisClient, registry, 5*time.Minute, appLogger)
	registry.SetOnChange(boardCache.Invalidate)

	// Nạp lại trạng thái từ store: phòng trước, rồi folio, rồi
	// reservation (cần registry để dựng lại bảng gán phòng)
	if err := registry.Restore(); err != nil {
		log.Fatalf("Failed to restore rooms: %v", err)
	}
	if err := ledger.Restore(); err != nil {
		log.Fatalf("Failed to restore folios: %v", err)
	}
	if err := reservationService.Restore(); err != nil {
		log.Fatalf("Failed to restore reservations: %v", err)
	}
	if err := guestService.Restore(); err != nil {
		log.Fatalf("Failed to restore guests: %v", err)
	}

	nightAudit := services.NewNightAuditService(services.NightAuditOptions{
		Reservations: reservationService,
		Ledger:       ledger,
		Coordinator:  coordinator,
		Clock:        clock,
		Logger:       appLogger,
		TaxRate:      config.GetEnvFloat("TAX_RATE", 0.125),
	})
	jobs.SetAuditRunner(nightAudit)

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, reservationService, coordinator, ledger, registry, boardCache, guestService)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := config.GetEnv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

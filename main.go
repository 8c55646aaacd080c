package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fixitlab/buyback-api/app/handlers"
	"github.com/fixitlab/buyback-api/app/router"
	"github.com/fixitlab/buyback-api/app/services"
	businessflow "github.com/fixitlab/buyback-api/business_flow"
	"github.com/fixitlab/buyback-api/config"
	"github.com/fixitlab/buyback-api/inventory"
	"github.com/fixitlab/buyback-api/models"
	"github.com/fixitlab/buyback-api/pricing"
	"github.com/fixitlab/buyback-api/repository"
	"github.com/fixitlab/buyback-api/utils"
)

func main() {
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	db, err := setupDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis is unreachable, inventory snapshot cache degraded: %v", err)
	}
	pingCancel()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	go monitorRedis(monitorCtx, redisClient)

	pricingRepo := repository.NewPricingRecordRepository(db)
	syncLogRepo := repository.NewSyncLogRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	inventoryRepo := repository.NewInventoryItemRepository(db)
	txManager := repository.NewGormTxManager(db)

	tokenService := services.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	sheetClient := services.NewHTTPSheetClient(cfg.Pricing.FetchTimeout, cfg.Pricing.SheetBaseURL)
	inventoryCache := services.NewRedisInventoryCache(redisClient, cfg.Cache.SnapshotTTL)

	syncFlow := businessflow.NewPricingSyncFlow(
		sheetClient, pricingRepo, syncLogRepo, txManager,
		pricing.DefaultRules(), pricing.DefaultMarginPolicy(),
		businessflow.PricingSyncConfig{
			SheetID:   cfg.Pricing.SheetID,
			SheetName: cfg.Pricing.SheetName,
			BatchSize: cfg.Pricing.BatchSize,
		},
	)
	adminFlow := businessflow.NewPricingAdminFlow(pricingRepo, syncLogRepo, txManager, pricing.DefaultMarginPolicy())
	quoteFlow := businessflow.NewQuoteFlow(pricingRepo)
	inventoryFlow := businessflow.NewInventoryRefreshFlow(inventoryRepo, syncLogRepo, txManager, inventoryCache, inventory.DefaultDetector())
	loginFlow := businessflow.NewLoginAdminFlow(adminRepo, tokenService)

	if err := bootstrapAdmin(adminRepo, cfg.Admin); err != nil {
		log.Fatalf("failed to bootstrap admin account: %v", err)
	}

	app := router.New(router.Handlers{
		Auth:      handlers.NewAuthAdminHandler(loginFlow),
		Pricing:   handlers.NewPricingAdminHandler(syncFlow, adminFlow),
		Quote:     handlers.NewQuoteHandler(quoteFlow),
		Inventory: handlers.NewInventoryHandler(inventoryFlow),
	}, tokenService, router.Config{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		EnableMetrics:  cfg.Metrics.Enabled,
	})

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("buyback-api listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("failed to close redis client: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// monitorRedis logs when the cache connection drops or recovers.
func monitorRedis(ctx context.Context, client *redis.Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := client.Ping(pingCtx).Err()
			cancel()
			if err != nil && healthy {
				healthy = false
				log.Printf("redis health check failed: %v", err)
			} else if err == nil && !healthy {
				healthy = true
				log.Println("redis connection recovered")
			}
		}
	}
}

func setupLogging(cfg config.LoggingConfig) {
	log.SetFlags(log.LstdFlags | log.LUTC)
	if cfg.Output == "file" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}
}

func setupDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.AutoMigrate(
		&models.PricingRecord{},
		&models.SyncLog{},
		&models.Admin{},
		&models.InventoryItem{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// bootstrapAdmin seeds the configured admin account when it does not exist yet.
func bootstrapAdmin(adminRepo repository.AdminRepository, cfg config.AdminBootstrapConfig) error {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := adminRepo.ByUsername(ctx, cfg.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := utils.UTCNow()
	return adminRepo.Save(ctx, &models.Admin{
		Username:     cfg.Username,
		PasswordHash: string(hash),
		IsActive:     utils.ToPtr(true),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

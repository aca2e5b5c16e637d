package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/memstore"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/logging"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/security"
	ucBarber "github.com/BruksfildServices01/barbershop-booking/internal/usecase/barber"
	ucCatalog "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ======================================================
	// STORAGE
	// ======================================================
	stores, db, err := openStores(cfg, log)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	var redisClient *redis.Client
	var catalogCache ucCatalog.Cache = cache.Nop{}
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Warnf("catalog cache disabled: %v", err)
		} else {
			catalogCache = cache.NewCatalogCache(redisClient, cfg.CatalogCacheTTL)
			log.Info("redis connected")
		}
	}

	var photos ucBarber.PhotoStorage
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3Store(storage.Config(cfg.S3))
		if err != nil {
			log.Fatalf("object storage: %v", err)
		}
		photos = s3Store
	} else {
		log.Info("S3 not configured, photo uploads disabled")
	}

	dispatcher := audit.NewDispatcher(audit.New(stores.Audit), log)

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:  cfg,
		Log:     log,
		Stores:  stores,
		Audit:   dispatcher,
		Hasher:  security.NewBcryptHasher(cfg.BcryptCost),
		Catalog: catalogCache,
		Photos:  photos,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr(),
			"env":     cfg.AppEnv,
			"storage": cfg.StorageDriver,
		}).Info("server running")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// ======================================================
	// SHUTDOWN
	// ======================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}

	dispatcher.Close()

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		if err := dbpkg.Close(db); err != nil {
			log.Errorf("closing database: %v", err)
		}
	}

	log.Info("server shutdown complete")
}

func openStores(cfg *config.Config, log *logrus.Logger) (routes.Stores, *gorm.DB, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		s := memstore.New()
		return routes.Stores{
			Appointments: s,
			Barbers:      s,
			Clients:      s,
			Services:     s,
			Messages:     s,
			Audit:        s,
		}, nil, nil

	case config.StorageDriverPostgres:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return routes.Stores{}, nil, err
		}
		log.Info("database connected")
		return routes.Stores{
			Appointments: infraRepo.NewAppointmentGormRepository(db),
			Barbers:      infraRepo.NewBarberGormRepository(db),
			Clients:      infraRepo.NewClientGormRepository(db),
			Services:     infraRepo.NewServiceGormRepository(db),
			Messages:     infraRepo.NewMessageGormRepository(db),
			Audit:        infraRepo.NewAuditGormRepository(db),
		}, db, nil

	default:
		return routes.Stores{}, nil, errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}
}

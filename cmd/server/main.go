package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-reservation/internal/config"
	"github.com/iliyamo/train-seat-reservation/internal/database"
	"github.com/iliyamo/train-seat-reservation/internal/handler"
	"github.com/iliyamo/train-seat-reservation/internal/inventory"
	"github.com/iliyamo/train-seat-reservation/internal/queue"
	"github.com/iliyamo/train-seat-reservation/internal/repository"
	"github.com/iliyamo/train-seat-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	var store inventory.Store
	switch cfg.StoreDriver {
	case config.DriverMemory:
		mem := repository.NewMemorySeatStore()
		if err := mem.Initialize(context.Background()); err != nil {
			log.Fatalf("initialize memory store: %v", err)
		}
		store = mem
		log.Printf("using in-memory seat store")
	default:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := database.EnsureSchema(ctx, db); err != nil {
			cancel()
			log.Fatalf("ensure schema: %v", err)
		}
		cancel()
		store = repository.NewSeatRepo(db)
	}

	engine := inventory.NewEngine(store)
	admin := inventory.NewAdmin(store)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	publishEvents := cfg.Env != "test"
	h := handler.NewBookingHandler(engine, admin, store, cacheCfg, rdb, publishEvents)

	if publishEvents {
		go func() {
			if err := queue.StartReservationConsumer(); err != nil {
				log.Printf("reservation consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	router.RegisterRoutes(e, h, cacheCfg, rlCfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.StoreDriver)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

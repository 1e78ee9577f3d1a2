package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/redis/go-redis/v9"

	"smart_eujian_backend/internals/configs"
	database "smart_eujian_backend/internals/databases"
	scheduler "smart_eujian_backend/internals/features/users/auth/scheduler"
	helper "smart_eujian_backend/internals/helpers"
	middlewares "smart_eujian_backend/internals/middlewares"
	routes "smart_eujian_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromFiberError(c, err)
		},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + migrate + warm-up
	database.ConnectDB()
	database.TunePool()
	if configs.GetEnv("AUTO_MIGRATE", "true") == "true" {
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("❌ migrate: %v", err)
		}
	}
	database.WarmUpQueries()

	// 🧠 Redis opsional untuk cache katalog ujian
	var rdb *redis.Client
	if configs.RedisURL != "" {
		opt, err := redis.ParseURL(configs.RedisURL)
		if err != nil {
			log.Printf("[WARN] REDIS_URL tidak valid, cache dimatikan: %v", err)
		} else {
			rdb = redis.NewClient(opt)
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := rdb.Ping(pingCtx).Err(); err != nil {
				log.Printf("[WARN] Redis tidak bisa dihubungi, cache dimatikan: %v", err)
				_ = rdb.Close()
				rdb = nil
			}
			cancel()
		}
	}

	// ⏱ scheduler setelah DB siap
	cronJob, err := scheduler.StartBlacklistCleanupScheduler(database.DB, configs.TokenCleanupCron)
	if err != nil {
		log.Printf("[WARN] scheduler blacklist tidak jalan: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, rdb)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if cronJob != nil {
		<-cronJob.Stop().Done()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

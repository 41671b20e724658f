// file: main.go
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

	"sekolahku_backend/internals/configs"
	database "sekolahku_backend/internals/databases"
	announcementService "sekolahku_backend/internals/features/school/announcements/service"
	"sekolahku_backend/internals/middlewares"
	"sekolahku_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	if configs.GetEnv("DB_AUTO_MIGRATE", "false") == "true" {
		database.AutoMigrate()
	}

	app := fiber.New(fiber.Config{
		AppName:     "sekolahku-backend",
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		ReadTimeout: 15 * time.Second,
	})

	middlewares.SetupMiddlewares(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	route.SetupRoutes(app, database.DB)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	announcementService.StartSweeper(sweepCtx, database.DB, 10*time.Minute)

	// graceful shutdown
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("🛑 Shutting down...")
		stopSweeper()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown err: %v", err)
		}
	}()

	port := configs.GetEnv("PORT", "3000")
	log.Printf("🚀 Listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}

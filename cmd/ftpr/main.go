package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/rentcourt/ftpr/app/controllers"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/cache"
	"github.com/rentcourt/ftpr/internal/pkg/database"
	"github.com/rentcourt/ftpr/internal/pkg/docstore"
	"github.com/rentcourt/ftpr/internal/pkg/env"
	"github.com/rentcourt/ftpr/internal/pkg/jobqueue"
	"github.com/rentcourt/ftpr/internal/pkg/pricing"
	"github.com/rentcourt/ftpr/internal/pkg/router"
)

func main() {
	app := NewApplication()

	jobs := jobqueue.GetManager()
	jobs.Start()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("[Server] Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("[Server] Shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000"))
	if err := app.Listen(addr); err != nil {
		log.Errorf("[Server] %v", err)
	}
	jobs.Stop()
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	if path := env.GetEnv("PRICING_FILE", ""); path != "" {
		if err := pricing.Global().LoadOverlay(path); err != nil {
			log.Fatalf("[Pricing] Failed to load %s: %v", path, err)
		}
	}
	if err := docstore.Setup(context.Background()); err != nil {
		log.Fatalf("[Docstore] %v", err)
	}

	services, err := controllers.NewServices(
		repository.GetGlobalRepositories(),
		jobqueue.GetManager().GetQueue(),
		env.GetEnv("APP_SECRET", ""),
		env.GetEnv("PAYMENT_WEBHOOK_SECRET", ""),
	)
	if err != nil {
		log.Fatalf("[Server] %v", err)
	}
	controllers.InitializeServices(services)

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/ftpr to project root
		"../../../", // Fallback
	}

	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "views"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	app := fiber.New(fiber.Config{
		Views:     html.New(basePath+"views", ".html"),
		BodyLimit: 4 * 1024 * 1024,
	})

	app.Use(favicon.New())

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "change-me"),
		},
	}), monitor.New(monitor.Config{Title: "FTPR Portal Metrics"}))

	// static files
	app.Static("/", basePath+"public/assets", fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
		Title:    "FTPR Portal API",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	return app
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-dashboard/modules/api"
	"github.com/example/task-dashboard/modules/auth"
	"github.com/example/task-dashboard/modules/cache"
	"github.com/example/task-dashboard/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Dashboard ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// The Redis list cache is optional; without REDIS_ADDR the task
	// module reads straight through its repository.
	var cacheModule *cache.CacheModule
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cacheModule = cache.NewModule(redisAddr)
		app.Register(cacheModule)
	}

	taskModule := task.NewModule()

	// Independent modules first; the api module depends on auth and task.
	app.Register(auth.NewModule())
	app.Register(taskModule)
	app.Register(api.NewModule())

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// The cache module exposes its client only after Start.
	if cacheModule != nil {
		taskModule.SetCache(cacheModule.Cache())
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register  - Register a new user")
	log.Println("  POST   /api/v1/auth/login     - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh   - Refresh access token")
	log.Println("  GET    /health                - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/profile        - Get current user profile")
	log.Println("  GET    /api/v1/tasks          - List your tasks")
	log.Println("  POST   /api/v1/tasks          - Create a task")
	log.Println("  PUT    /api/v1/tasks/:id      - Update one of your tasks")
	log.Println("  DELETE /api/v1/tasks/:id      - Delete one of your tasks")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

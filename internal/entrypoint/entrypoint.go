package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ehonlab/ehon-server/internal/auth"
	"github.com/ehonlab/ehon-server/internal/config"
	"github.com/ehonlab/ehon-server/internal/database"
	"github.com/ehonlab/ehon-server/internal/database/activities"
	"github.com/ehonlab/ehon-server/internal/database/books"
	"github.com/ehonlab/ehon-server/internal/database/children"
	"github.com/ehonlab/ehon-server/internal/database/favorites"
	"github.com/ehonlab/ehon-server/internal/database/progress"
	"github.com/ehonlab/ehon-server/internal/database/reviews"
	"github.com/ehonlab/ehon-server/internal/database/themes"
	"github.com/ehonlab/ehon-server/internal/database/users"
	http_controllers "github.com/ehonlab/ehon-server/internal/http"
	"github.com/ehonlab/ehon-server/internal/scheduler"
	"github.com/ehonlab/ehon-server/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then drain within the shutdown timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background workers before the HTTP listener
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting ehon-server v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	usersRepo := users.NewRepository(db.DB)
	childrenRepo := children.NewRepository(db.DB)
	themesRepo := themes.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	reviewsRepo := reviews.NewRepository(db.DB)
	favoritesRepo := favorites.NewRepository(db.DB)
	progressRepo := progress.NewRepository(db.DB)
	activitiesRepo := activities.NewRepository(db.DB)

	tokenManager := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenExpiry)
	authService := auth.NewService(usersRepo, tokenManager, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService)

	// Task queue and maintenance scheduler
	var taskClient *tasks.Client
	var maintenanceScheduler *scheduler.MaintenanceScheduler
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCleanupActivitiesQueue(activitiesRepo),
			tasks.NewRecomputePopularityQueue(booksRepo),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		maintenanceScheduler = scheduler.NewMaintenanceScheduler(taskClient, scheduler.Config{
			ActivityCleanupSchedule: cfg.Activities.Schedule,
			ActivityRetentionDays:   cfg.Activities.RetentionDays,
			PopularitySchedule:      cfg.Popularity.Schedule,
		})
		if err := maintenanceScheduler.Start(taskCtx); err != nil {
			log.Fatalf("Failed to start maintenance scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Version:        version,
		Database:       db,
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		UserStore:      usersRepo,
		ChildStore:     childrenRepo,
		ThemeStore:     themesRepo,
		BookStore:      booksRepo,
		ReviewStore:    reviewsRepo,
		SummaryStore:   reviewsRepo,
		FavoriteStore:  favoritesRepo,
		ProgressStore:  progressRepo,
		ActivityStore:  activitiesRepo,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maintenanceScheduler != nil {
			maintenanceScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

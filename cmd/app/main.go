package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskflow-api/internal/config"
	"github.com/BuzzLyutic/taskflow-api/internal/handler"
	"github.com/BuzzLyutic/taskflow-api/internal/notifier"
	"github.com/BuzzLyutic/taskflow-api/internal/repo"
	"github.com/BuzzLyutic/taskflow-api/internal/service"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем БД
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to Database.") // Fatal потому что дальнейшая работа теряет смысл
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	taskRepo := repo.NewTaskRepo(pool)
	userRepo := repo.NewUserRepo(pool)
	projectRepo := repo.NewProjectRepo(pool)
	badgeRepo := repo.NewBadgeRepo(pool)

	// Заливаем справочник бейджей, без него геймификация молча не награждает
	if err := badgeRepo.Seed(context.Background()); err != nil {
		logger.Fatal("Failed to seed badges", zap.Error(err))
	}

	notifierPool := notifier.NewPool(logger, cfg.NotifyWorkers, cfg.NotifyQueueSize, cfg.WebhookTimeout)
	notifierPool.Start(context.Background())

	gamification := service.NewGamificationService(taskRepo, userRepo, badgeRepo, logger)
	taskService := service.NewTaskService(taskRepo, userRepo, projectRepo, gamification, notifierPool, logger)
	projectService := service.NewProjectService(projectRepo, userRepo)

	taskHandler := handler.NewTaskHandler(taskService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	userHandler := handler.NewUserHandler(gamification, logger)

	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", taskHandler.Create)
		r.Get("/", taskHandler.List)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	r.Route("/api/projects", func(r chi.Router) {
		r.Post("/", projectHandler.Create)
		r.Get("/{id}", projectHandler.Get)
		r.Put("/{id}/notifications", projectHandler.UpdateNotificationSettings)
		r.Post("/{id}/members", projectHandler.AddMembers)
	})

	r.Get("/api/users/{id}/badges", userHandler.Badges)

	srv := http.Server{ // Создаем сервер
		Addr: ":" + cfg.Port,
		Handler: r,
		ReadTimeout: 10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func ()  { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}

	notifierPool.Stop() // Доливаем оставшиеся вебхуки перед выходом

	logger.Info("Server stopped succsessfully!")
}

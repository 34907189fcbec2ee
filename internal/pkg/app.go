package pkg

import (
	"context"
	"fmt"

	"amc-crm/internal/app/config"
	"amc-crm/internal/app/dsn"
	"amc-crm/internal/app/handler"
	"amc-crm/internal/app/mailer"
	"amc-crm/internal/app/middleware"
	"amc-crm/internal/app/redis"
	"amc-crm/internal/app/repository"
	"amc-crm/internal/app/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Application struct {
	Config      *config.Config
	Router      *gin.Engine
	Handler     *handler.APIHandler
	RedisClient *redis.Client
}

// NewApp собирает все зависимости приложения: БД, Redis, MinIO,
// почтовый шлюз, обработчики и маршруты
func NewApp(ctx context.Context) (*Application, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		return nil, fmt.Errorf("repository error: %w", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg.Minio)
	if err != nil {
		return nil, fmt.Errorf("minio error: %w", err)
	}

	mailerClient := mailer.New(cfg.Mailer)

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, redisClient, minioClient, mailerClient, cfg, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	apiHandler.RegisterAPIRoutes(router, authMiddleware)

	return &Application{
		Config:      cfg,
		Router:      router,
		Handler:     apiHandler,
		RedisClient: redisClient,
	}, nil
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}

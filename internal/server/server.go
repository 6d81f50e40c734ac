package server

import (
	"time"

	"github.com/ChrisCalderwood/outdoor-run-tracker/internal/auth"
	"github.com/ChrisCalderwood/outdoor-run-tracker/internal/config"
	"github.com/ChrisCalderwood/outdoor-run-tracker/internal/location"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authMiddleware := auth.Middleware(auth.NewJWTVerifier(s.Cfg.JWTSecret))
	cacheTTL := time.Duration(s.Cfg.RunsCacheTTLSeconds) * time.Second

	location.RegisterRoutes(s.App, location.NewService(s.DB, s.Redis, cacheTTL), authMiddleware)
}

package server

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

type AppConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// AccessLog adds the request logging middleware.
	AccessLog bool
}

// NewApp builds the fiber app with middleware, health probes and the
// session routes.
func NewApp(s *Server, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		AppName:      "wallsketch planserve",
	})

	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready", "sessions": s.Len()})
	})

	s.Register(app)
	return app
}

// Register mounts the session routes on r.
func (s *Server) Register(r fiber.Router) {
	g := r.Group("/sessions")
	g.Post("/", s.CreateSession)
	g.Get("/:id", s.GetSession)
	g.Delete("/:id", s.DeleteSession)
	g.Post("/:id/events", s.PostEvent)
	g.Put("/:id/settings", s.PutSettings)
	g.Post("/:id/undo", s.Undo)
	g.Post("/:id/redo", s.Redo)
	g.Put("/:id/plan", s.PutPlan)
	g.Get("/:id/png", s.GetPNG)
	g.Get("/:id/revisions", s.GetRevisions)
}

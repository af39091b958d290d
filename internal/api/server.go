package api

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/upi-statement-parser/internal/logger"
)

// multipartOverhead leaves room for form boundaries and the optional
// extractedText field on top of the PDF itself.
const multipartOverhead = 1 << 20

// ServerOptions are the fiber settings taken from configuration.
type ServerOptions struct {
	MaxUploadBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	// RateLimitPerSecond of zero disables rate limiting of the parse routes.
	RateLimitPerSecond int
	RateLimitBurst     int
}

// NewServer builds the fiber app with every route registered.
func NewServer(h *Handler, opts ServerOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "upi-statement-parser",
		BodyLimit:             opts.MaxUploadBytes + multipartOverhead,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	h.RateLimitPerSecond = opts.RateLimitPerSecond
	h.RateLimitBurst = opts.RateLimitBurst
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up middleware and routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	if h.Logger != nil {
		app.Use(logger.Middleware(h.Logger))
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type," + logger.RequestIDHeader,
	}))

	api := app.Group("/api")
	api.Get("/health", h.HandleHealth)
	api.Get("/taxonomy", h.HandleTaxonomy)

	if h.RateLimitPerSecond > 0 {
		limit := RateLimit(h.RateLimitPerSecond, h.RateLimitBurst)
		api.Post("/upload", limit, h.HandleUpload)
		api.Post("/parse", limit, h.HandleParse)
	} else {
		api.Post("/upload", h.HandleUpload)
		api.Post("/parse", h.HandleParse)
	}

	if h.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(h.Metrics.Handler()))
	}

	// Serve the dashboard build, falling back to index.html for client routes.
	if h.StaticDir != "" {
		app.Static("/", h.StaticDir)
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return fiber.ErrNotFound
			}
			index := filepath.Join(h.StaticDir, "index.html")
			if _, err := os.Stat(index); err != nil {
				return fiber.ErrNotFound
			}
			return c.SendFile(index)
		})
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Internal server error."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		msg = fe.Message
	}
	return writeError(c, status, msg)
}

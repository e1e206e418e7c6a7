// Package server exposes prismal rendering over HTTP.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"

	"github.com/gogpu/prismal"
	"github.com/gogpu/prismal/internal/config"
	"github.com/gogpu/prismal/surface"
)

// Limits bound the work a single request may ask for.
type Limits struct {
	MaxDimension int
	MaxLayers    int

	// MaxPoints caps the estimated number of polygon corners in a drawing,
	// see EstimatePoints.
	MaxPoints int64
}

// DefaultLimits returns the limits used by New.
func DefaultLimits() Limits {
	return Limits{MaxDimension: 4096, MaxLayers: 256, MaxPoints: 250_000}
}

// circlePoints is the corner count charged for a circle.
const circlePoints = 32

// EstimatePoints returns the number of polygon corners p draws before
// culling. Layer i holds structure*i polygons, layer 0 holds one.
func EstimatePoints(p config.Preset) int64 {
	layers := int64(p.Layers)
	polygons := 1 + int64(p.StructureVertices)*layers*(layers-1)/2
	vertices := int64(p.PolygonVertices)
	if slices.Contains(p.Options, "replace-with-circles") {
		vertices = circlePoints
	}
	return polygons * vertices
}

// Response headers.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderPolygons  = "X-Prismal-Polygons"
	HeaderLayers    = "X-Prismal-Layers"
)

// Server is the render service.
type Server struct {
	app    *fiber.App
	cfg    config.ServerConfig
	base   config.Preset
	limits Limits
	logger *slog.Logger
}

// New creates a server that renders base overlaid with request parameters.
// A nil logger uses slog.Default.
func New(cfg config.ServerConfig, base config.Preset, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		base:   base,
		limits: DefaultLimits(),
		logger: log.With(slog.String("component", "server")),
	}

	s.app = fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "prismal " + prismal.Version,
	})

	s.app.Use(recover.New())
	s.app.Use(requestID)
	s.app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${respHeader:" + HeaderRequestID + "}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	s.app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	s.app.Get("/formats", s.formats)
	s.app.Get("/render/:format", s.renderQuery)
	s.app.Post("/render/:format", s.renderPreset)
}

// SetLimits replaces the request limits.
func (s *Server) SetLimits(l Limits) {
	s.limits = l
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.logger.Info("listening", "addr", s.cfg.Addr, "formats", surface.Formats())
	return s.app.Listen(s.cfg.Addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func requestID(c fiber.Ctx) error {
	id := c.Get(HeaderRequestID)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Set(HeaderRequestID, id)
	return c.Next()
}

func (s *Server) formats(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"formats":  surface.Formats(),
		"backends": surface.List(),
	})
}

func (s *Server) renderQuery(c fiber.Ctx) error {
	p, err := PresetFromQuery(s.base, func(key string) string { return c.Query(key) })
	if err != nil {
		return badRequest(c, err)
	}
	return s.render(c, p)
}

func (s *Server) renderPreset(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return badRequest(c, errors.New("body required"))
	}
	p, err := config.Parse(c.Body())
	if err != nil {
		return badRequest(c, err)
	}
	return s.render(c, p)
}

func (s *Server) render(c fiber.Ctx, p config.Preset) error {
	if err := s.checkLimits(p); err != nil {
		return badRequest(c, err)
	}
	cfg, err := p.RenderConfig()
	if err != nil {
		return badRequest(c, err)
	}

	format := c.Params("format")
	target, err := surface.NewByFormat(format, surface.DefaultOptions(p.Width, p.Height))
	if err != nil {
		var fns *surface.FormatNotSupportedError
		if errors.As(err, &fns) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return badRequest(c, err)
	}

	renderer := prismal.NewRenderer(append(p.RendererOptions(), prismal.WithLogger(s.logger))...)
	var buf bytes.Buffer
	stats, err := surface.Draw(&buf, target, cfg, renderer)
	if err != nil {
		s.logger.Error("encode failed", "format", format, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.logger.Debug("rendered",
		"format", format,
		"request_id", c.GetRespHeader(HeaderRequestID),
		"layers", stats.LayersDrawn,
		"polygons", stats.PolygonsDrawn,
		"bytes", buf.Len())

	c.Set(fiber.HeaderContentType, target.ContentType())
	c.Set(HeaderPolygons, strconv.Itoa(stats.PolygonsDrawn))
	c.Set(HeaderLayers, strconv.Itoa(stats.LayersDrawn))
	return c.Send(buf.Bytes())
}

func (s *Server) checkLimits(p config.Preset) error {
	if p.Width > s.limits.MaxDimension || p.Height > s.limits.MaxDimension {
		return errors.New("image too large: max dimension " + strconv.Itoa(s.limits.MaxDimension))
	}
	if p.Layers > s.limits.MaxLayers {
		return errors.New("too many layers: max " + strconv.Itoa(s.limits.MaxLayers))
	}
	if s.limits.MaxPoints > 0 {
		if n := EstimatePoints(p); n > s.limits.MaxPoints {
			return fmt.Errorf("drawing too complex: %d points, max %d", n, s.limits.MaxPoints)
		}
	}
	return nil
}

func badRequest(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

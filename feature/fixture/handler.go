package fixture

import (
	"errors"

	"osv-diff/core/logger"
	"osv-diff/feature/compare"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// emptyResult is what the OSV server answers when nothing matches.
var emptyResult = []byte("[]")

// Handler serves recordings on the OSV server routes.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the same routes as the OSV server.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
	app.Get("/ids/:id", h.lookup(compare.ModeID, "id"))
	app.Get("/:type/ids/:id", h.lookup(compare.ModeID, "id"))
	app.Get("/pkgs/:name", h.lookup(compare.ModePackage, "name"))
	app.Get("/:type/pkgs/:name", h.lookup(compare.ModePackage, "name"))
}

// HandleHealth answers liveness probes.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

func (h *Handler) lookup(mode compare.Mode, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(h.service.logger, c)

		// The type segment is literal here, "all" included.
		category := c.Params("type")
		key := c.Params(param)
		path := compare.BuildPath(mode, compare.CategoryAll, key)
		if category != "" {
			path = category + "/" + path
		}
		l.Debug("Params", zap.String("key", key), zap.String("type", category))

		body, found, err := h.service.Lookup(path)
		if err != nil {
			l.Error("Failed to load recording", zap.String("path", path), zap.Error(err))
			status := fiber.StatusInternalServerError
			if errors.Is(err, ErrOutsideRoot) {
				status = fiber.StatusBadRequest
			}
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		if !found {
			body = emptyResult
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}
}

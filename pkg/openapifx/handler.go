package openapifx

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Handler serves the OpenAPI documentation UI of a swag spec.
type Handler struct {
	spec   *swag.Spec
	config Config

	logger *zap.Logger
}

func New(spec *swag.Spec, config Config, logger *zap.Logger) *Handler {
	return &Handler{
		spec:   spec,
		config: config,

		logger: logger,
	}
}

// Register mounts the documentation UI on r. It does nothing when the
// documentation is disabled.
func (h *Handler) Register(r fiber.Router) {
	if !h.config.Enabled {
		return
	}

	if h.config.PublicHost != "" {
		h.spec.Host = h.config.PublicHost
	}
	if h.config.PublicPath != "" {
		h.spec.BasePath = h.config.PublicPath
	}

	r.Get("/*", swagger.New(swagger.Config{ //nolint:exhaustruct //defaults
		InstanceName: h.spec.InstanceName(),
	}))

	h.logger.Info("openapi documentation enabled", zap.String("base_path", h.spec.BasePath))
}

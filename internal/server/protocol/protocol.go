package protocol

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Header carries the gateway protocol version of a request.
const Header = "Git-Protocol-Version"

type Config struct {
	// Version is the only protocol version accepted.
	Version string
}

// New returns a middleware rejecting requests without the expected protocol
// version.
func New(config Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get(Header)
		if version == "" {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("missing %s header", Header))
		}
		if version != config.Version {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unsupported %s: %s", Header, version))
		}

		return c.Next()
	}
}

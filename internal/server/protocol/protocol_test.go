package protocol_test

import (
	"net/http/httptest"
	"testing"

	"github.com/apiarycd/gitgate/internal/server/protocol"
	"github.com/gofiber/fiber/v2"
)

func TestNew(t *testing.T) {
	app := fiber.New()
	app.Use(protocol.New(protocol.Config{Version: "1"}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	tests := []struct {
		name    string
		version string
		want    int
	}{
		{name: "missing", version: "", want: fiber.StatusBadRequest},
		{name: "unsupported", version: "2", want: fiber.StatusBadRequest},
		{name: "supported", version: "1", want: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			if tt.version != "" {
				req.Header.Set(protocol.Header, tt.version)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

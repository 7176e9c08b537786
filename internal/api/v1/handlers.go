package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rentcourt/ftpr/app/controllers"
)

// Pong is the ping response body.
type Pong struct {
	Ping string `json:"ping"`
}

// APIServer serves the v1 JSON API. Handlers delegate to the controllers
// so pages and API share one implementation.
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	return controllers.OK(c, Pong{Ping: "pong"})
}

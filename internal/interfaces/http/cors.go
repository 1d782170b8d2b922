package http

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// NewCORS lista blanca de orígenes con credenciales. Con "*" se desactivan las
// credenciales (fiber no admite ambas cosas).
func NewCORS(origins []string) fiber.Handler {
	wildcard := slices.Contains(origins, "*")
	allow := strings.Join(origins, ",")
	if wildcard {
		allow = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     allow,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: !wildcard,
	})
}

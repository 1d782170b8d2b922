package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/goagent-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Signup        SignupService
	Auth          AuthService
	Leads         LeadService
	SignupLimiter SignupLimiter // opcional
	JWTSecret     string
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Registro (público, limitado por IP)
	signupHandler := NewSignupHandler(deps.Signup)
	api.Post("/signup", SignupRateLimit(deps.SignupLimiter, deps.Logger), signupHandler.Signup)

	// Auth (público)
	authHandler := NewAuthHandler(deps.Auth)
	api.Post("/auth/login", authHandler.Login)

	// Leads y llamadas del sitio (público)
	tixiea := api.Group("/tixiea")
	leadHandler := NewLeadHandler(deps.Leads, deps.Logger)
	tixiea.Post("/save-lead", leadHandler.SaveLead)
	tixiea.Post("/call", leadHandler.Call)

	// Cuenta propia (requiere Bearer Token)
	api.Get("/account", AuthMiddleware(deps.JWTSecret), authHandler.Account)
}

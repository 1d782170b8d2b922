package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/goagent-api/internal/application/dto"
	"github.com/jhoicas/goagent-api/internal/application/signup"
	"github.com/jhoicas/goagent-api/internal/domain"
)

// SignupHandler traduce el Outcome del orquestador a la respuesta HTTP.
type SignupHandler struct {
	svc SignupService
}

// NewSignupHandler construye el handler de registro.
func NewSignupHandler(svc SignupService) *SignupHandler {
	return &SignupHandler{svc: svc}
}

// Signup godoc
// @Summary      Registrar cuenta
// @Description  Crea la identidad y aprovisiona agente, organización y cliente en la plataforma de voz.
// @Tags         signup
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "name, email, password, businessType"
// @Success      201   {object}  dto.SignupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/signup [post]
func (h *SignupHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "All fields are required"})
	}

	out := h.svc.Signup(c.UserContext(), in)

	switch out.Kind {
	case signup.OutcomeSuccess:
		return c.Status(fiber.StatusCreated).JSON(successResponse(out))
	case signup.OutcomeConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "User already exists"})
	default:
		if errors.Is(out.Err, domain.ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "All fields are required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error creating user account",
			Error:   authErrorMessage(out.Err),
			Code:    domain.AuthCode(out.Err),
		})
	}
}

func successResponse(out signup.Outcome) dto.SignupResponse {
	resp := dto.SignupResponse{Message: "User created successfully", UserID: out.IdentityID}
	if rec := out.Record; rec != nil {
		resp.UserData = dto.SignupUserData{
			Name:         rec.Name,
			Email:        rec.Email,
			BusinessType: string(rec.BusinessType),
			Plan:         rec.Plan,
		}
	}
	return resp
}

// authErrorMessage mensaje orientado al operador para los códigos de configuración.
func authErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	switch domain.AuthCode(err) {
	case domain.AuthCodeOperationNotAllowed:
		return "Email/password sign-up is not enabled in the identity provider."
	case domain.AuthCodeInvalidCredential:
		return "Identity provider authentication failed. Check the API key and project configuration."
	}
	var ae *domain.AuthError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return err.Error()
}

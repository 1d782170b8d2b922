package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/goagent-api/internal/application/dto"
	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/pkg/logger"
)

// LeadHandler leads del sitio y llamadas de demo.
type LeadHandler struct {
	svc LeadService
	log *logger.Logger
}

// NewLeadHandler construye el handler.
func NewLeadHandler(svc LeadService, log *logger.Logger) *LeadHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &LeadHandler{svc: svc, log: log}
}

// SaveLead godoc
// @Summary      Guardar lead
// @Description  Guarda el payload completo. newsletter exige email; voice-assistant exige fullName, email y phoneNumber.
// @Tags         tixiea
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "payload libre con source"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.FailureResponse
// @Failure      500   {object}  dto.FailureResponse
// @Router       /api/tixiea/save-lead [post]
func (h *LeadHandler) SaveLead(c *fiber.Ctx) error {
	var payload map[string]any
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailureResponse{Error: "Invalid request body"})
	}

	lead, err := h.svc.SaveLead(c.UserContext(), payload)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FailureResponse{Error: verr.Msg})
		}
		h.log.Error().Err(err).Msg("leads: no se pudo guardar el lead")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.FailureResponse{Error: "Failed to save lead data", Details: err.Error()})
	}

	h.log.Info().Str("lead_id", lead.ID).Str("source", lead.Source).Msg("leads: lead guardado")
	return c.Status(fiber.StatusCreated).JSON(dto.LeadResponse{
		Success: true,
		Message: "Lead data saved successfully",
		ID:      lead.ID,
	})
}

// Call godoc
// @Summary      Iniciar llamada de demo
// @Tags         tixiea
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CallRequest  true  "phoneNumber"
// @Success      200   {object}  object
// @Failure      400   {object}  dto.FailureResponse
// @Failure      500   {object}  dto.FailureResponse
// @Router       /api/tixiea/call [post]
func (h *LeadHandler) Call(c *fiber.Ctx) error {
	var in dto.CallRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailureResponse{Error: "Invalid request body"})
	}

	raw, err := h.svc.StartCall(c.UserContext(), in.PhoneNumber)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FailureResponse{Error: verr.Msg})
		}
		h.log.Error().Err(err).Msg("calls: no se pudo iniciar la llamada")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.FailureResponse{Error: "Failed to initiate call", Details: failureDetails(err)})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(raw)
}

// failureDetails cuerpo de la plataforma si lo hay; si no, el mensaje del error.
func failureDetails(err error) any {
	var up *domain.UpstreamError
	if errors.As(err, &up) && len(up.Body) > 0 {
		return up.Body
	}
	return err.Error()
}

package voiceplatform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type callRequest struct {
	To      string `json:"to"`
	AgentID string `json:"agentId"`
}

// StartCall POST /v3/calls con el agente configurado. Devuelve la respuesta de la
// plataforma tal cual. Un solo intento.
func (c *Client) StartCall(ctx context.Context, phoneNumber string) (json.RawMessage, error) {
	payload := callRequest{To: phoneNumber, AgentID: c.callAgentID}

	status, raw, err := c.do(ctx, http.MethodPost, c.agentsURL+"/v3/calls", payload)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("voiceplatform: iniciar llamada: %w", upstreamError("calls", status, raw))
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("voiceplatform: iniciar llamada: respuesta no es JSON válido")
	}
	return json.RawMessage(raw), nil
}

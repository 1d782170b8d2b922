package voiceplatform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
)

type exportResponse struct {
	AgentTemplate json.RawMessage `json:"agentTemplate"`
}

type importRequest struct {
	AgentTemplate json.RawMessage `json:"agentTemplate"`
	AgentName     string          `json:"agentName"`
	FromAgentID   string          `json:"fromAgentId"`
}

// ExportTemplate GET /v3/agents/{id}/export-template. Sin agentTemplate en la
// respuesta devuelve domain.ErrTemplateUnavailable.
func (c *Client) ExportTemplate(ctx context.Context, templateID string) (*entity.TemplateExport, error) {
	endpoint := fmt.Sprintf("%s/v3/agents/%s/export-template", c.agentsURL, url.PathEscape(templateID))
	status, raw, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTemplateUnavailable, err)
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("%w: %w", domain.ErrTemplateUnavailable, upstreamError("export-template", status, raw))
	}

	var resp exportResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: respuesta no es JSON válido: %w", domain.ErrTemplateUnavailable, err)
	}
	if isEmptyJSON(resp.AgentTemplate) {
		return nil, fmt.Errorf("%w: %w", domain.ErrTemplateUnavailable, upstreamError("export-template", status, raw))
	}
	return &entity.TemplateExport{SourceTemplateID: templateID, RawTemplatePayload: resp.AgentTemplate}, nil
}

// ImportTemplate POST /v3/agents/import-template. Acepta {agent:{ID}} y
// {agentCreated:{ID}}; con otra forma busca cualquier "ID" en el cuerpo antes de
// devolver domain.ErrTemplateImportFailed.
func (c *Client) ImportTemplate(ctx context.Context, export *entity.TemplateExport, bt entity.BusinessType, sourceTemplateID string) (*entity.ClonedAgent, error) {
	if export == nil || isEmptyJSON(export.RawTemplatePayload) {
		return nil, fmt.Errorf("%w: plantilla vacía", domain.ErrTemplateImportFailed)
	}
	name := bt.AgentDisplayName()
	payload := importRequest{
		AgentTemplate: export.RawTemplatePayload,
		AgentName:     name,
		FromAgentID:   sourceTemplateID,
	}

	status, raw, err := c.do(ctx, http.MethodPost, c.agentsURL+"/v3/agents/import-template", payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTemplateImportFailed, err)
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("%w: %w", domain.ErrTemplateImportFailed, upstreamError("import-template", status, raw))
	}

	body, err := decodeGeneric(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: respuesta no es JSON válido: %w", domain.ErrTemplateImportFailed, err)
	}
	id, ok := pathID(body, "agent", "ID")
	if !ok {
		id, ok = pathID(body, "agentCreated", "ID")
	}
	if !ok {
		id, ok = FindID(body, maxIDScanDepth)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %w", domain.ErrTemplateImportFailed, upstreamError("import-template", status, raw))
	}
	return &entity.ClonedAgent{ID: id, Name: name, SourceTemplateID: sourceTemplateID}, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null")) || bytes.Equal(t, []byte(`""`))
}

package voiceplatform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
)

type orgRequest struct {
	Name              string   `json:"name"`
	PreferredLanguage string   `json:"preferredLanguage"`
	WidgetIDs         []string `json:"widgetIDs"`
	CanSelfEdit       bool     `json:"canSelfEdit"`
	DisallowAnyTags   bool     `json:"disallowAnyTags"`
	DashboardLayout   string   `json:"dashboardLayout"`
}

// CreateOrganization PUT /v2/orgs con el widget recibido (o el de por defecto).
// El ID se toma de data.ID, ID o cualquier "ID" anidado. Si la plataforma solo
// responde success:true se devuelve la organización sin ID.
func (c *Client) CreateOrganization(ctx context.Context, name, widgetID string) (*entity.Organization, error) {
	if widgetID == "" {
		widgetID = c.defaultWidgetID
	}
	payload := orgRequest{
		Name:              name,
		PreferredLanguage: "eng",
		WidgetIDs:         []string{widgetID},
		CanSelfEdit:       true,
		DisallowAnyTags:   false,
		DashboardLayout:   "horizontal",
	}

	status, raw, err := c.do(ctx, http.MethodPut, c.orgsURL+"/v2/orgs", payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrOrgProvisioningFailed, err)
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("%w: %w", domain.ErrOrgProvisioningFailed, upstreamError("orgs", status, raw))
	}

	body, err := decodeGeneric(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: respuesta no es JSON válido: %w", domain.ErrOrgProvisioningFailed, err)
	}
	org := &entity.Organization{Name: name, WidgetIDs: []string{widgetID}}

	id, ok := pathID(body, "data", "ID")
	if !ok {
		id, ok = pathID(body, "ID")
	}
	if !ok {
		id, ok = FindID(body, maxIDScanDepth)
	}
	if ok {
		org.ID = id
		return org, nil
	}
	if success, _ := boolField(body, "success"); success {
		return org, nil
	}
	return nil, fmt.Errorf("%w: %w", domain.ErrOrgProvisioningFailed, upstreamError("orgs", status, raw))
}

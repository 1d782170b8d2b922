package voiceplatform

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
)

type clientRequest struct {
	OrgID             string   `json:"orgId"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	DashboardPassword string   `json:"dashboardPassword"`
	CanAccess         []string `json:"canAccess"`
	IsOrgAdmin        bool     `json:"isOrgAdmin"`
}

// CreateClient PUT /v2/clients. Falla por transporte, status no 2xx o success:false
// explícito; cualquier otra respuesta es un ack.
func (c *Client) CreateClient(ctx context.Context, orgID, name, email, password string) (*entity.Client, error) {
	client := entity.NewClient(orgID, name, email, password)
	payload := clientRequest{
		OrgID:             client.OrgID,
		Name:              client.Name,
		Email:             client.Email,
		DashboardPassword: client.DashboardPassword,
		CanAccess:         client.AccessPaths,
		IsOrgAdmin:        client.IsOrgAdmin,
	}

	status, raw, err := c.do(ctx, http.MethodPut, c.orgsURL+"/v2/clients", payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrClientProvisioningFailed, err)
	}
	if !isSuccess(status) {
		return nil, fmt.Errorf("%w: %w", domain.ErrClientProvisioningFailed, upstreamError("clients", status, raw))
	}

	body, err := decodeGeneric(raw)
	if err != nil {
		// 2xx sin JSON: se toma como ack.
		return client, nil
	}
	if success, present := boolField(body, "success"); present && !success {
		return nil, fmt.Errorf("%w: %w", domain.ErrClientProvisioningFailed, upstreamError("clients", status, raw))
	}
	if id, ok := FindID(body, maxIDScanDepth); ok {
		client.ID = id
	}
	return client, nil
}

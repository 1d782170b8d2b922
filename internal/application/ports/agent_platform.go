package ports

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/goagent-api/internal/domain/entity"
)

// TemplateService exporta e importa plantillas de agente en la plataforma de voz.
type TemplateService interface {
	// ExportTemplate falla con domain.ErrTemplateUnavailable si la respuesta no trae agentTemplate.
	ExportTemplate(ctx context.Context, templateID string) (*entity.TemplateExport, error)
	// ImportTemplate clona la plantilla y extrae el ID del agente creado aunque la
	// respuesta no tenga la forma esperada. Falla con domain.ErrTemplateImportFailed.
	ImportTemplate(ctx context.Context, export *entity.TemplateExport, businessType entity.BusinessType, sourceTemplateID string) (*entity.ClonedAgent, error)
}

// OrganizationProvisioner crea organizaciones ligadas a un widget.
type OrganizationProvisioner interface {
	// CreateOrganization puede devolver una organización sin ID cuando la plataforma
	// solo confirma success:true. Falla con domain.ErrOrgProvisioningFailed.
	CreateOrganization(ctx context.Context, name, widgetID string) (*entity.Organization, error)
}

// ClientProvisioner crea el cliente (usuario del dashboard) de una organización.
type ClientProvisioner interface {
	// CreateClient falla con domain.ErrClientProvisioningFailed.
	CreateClient(ctx context.Context, orgID, name, email, password string) (*entity.Client, error)
}

// CallDialer inicia una llamada saliente con el agente configurado (sin reintentos).
type CallDialer interface {
	StartCall(ctx context.Context, phoneNumber string) (json.RawMessage, error)
}

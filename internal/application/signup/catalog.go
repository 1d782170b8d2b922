package signup

import "github.com/jhoicas/goagent-api/internal/domain/entity"

// TemplateCatalog IDs de plantilla por tipo de negocio y widget por defecto.
// Los valores vienen de configuración.
type TemplateCatalog struct {
	Templates       map[entity.BusinessType]string
	DefaultWidgetID string
}

// TemplateFor devuelve la plantilla del tipo de negocio o la de "other" si no hay una específica.
func (c TemplateCatalog) TemplateFor(bt entity.BusinessType) string {
	if id, ok := c.Templates[bt]; ok && id != "" {
		return id
	}
	return c.Templates[entity.BusinessOther]
}

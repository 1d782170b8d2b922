package entity

// BusinessType categoría de negocio que elige la plantilla de agente a clonar.
type BusinessType string

// Tipos de negocio soportados.
const (
	BusinessDropshipper BusinessType = "dropshipper"
	BusinessThemePage   BusinessType = "themePage"
	BusinessInfluencer  BusinessType = "influencer"
	BusinessOther       BusinessType = "other"
)

// ParseBusinessType normaliza el valor recibido. Vacío o desconocido -> other.
func ParseBusinessType(s string) BusinessType {
	switch BusinessType(s) {
	case BusinessDropshipper, BusinessThemePage, BusinessInfluencer, BusinessOther:
		return BusinessType(s)
	default:
		return BusinessOther
	}
}

// AgentDisplayName nombre visible del agente clonado para el tipo de negocio.
func (b BusinessType) AgentDisplayName() string {
	switch b {
	case BusinessDropshipper:
		return "Dropshipper"
	case BusinessThemePage:
		return "Theme Page"
	case BusinessInfluencer:
		return "Influencer"
	default:
		return "Custom Agent"
	}
}

package entity

import "time"

// Fuentes de lead con validación específica.
const (
	LeadSourceNewsletter     = "newsletter"
	LeadSourceVoiceAssistant = "voice-assistant"
)

// Lead contacto capturado desde la web; el payload se guarda completo.
type Lead struct {
	ID        string
	Source    string
	Payload   map[string]any
	CreatedAt time.Time
}

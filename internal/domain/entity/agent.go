package entity

import "encoding/json"

// TemplateExport plantilla exportada; efímera, nunca se persiste.
type TemplateExport struct {
	SourceTemplateID string
	// RawTemplatePayload es el campo agentTemplate tal cual lo devolvió la plataforma.
	RawTemplatePayload json.RawMessage
}

// ClonedAgent agente creado a partir de una plantilla; su ID es el widget de la organización.
type ClonedAgent struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	SourceTemplateID string `json:"sourceTemplateId"`
}

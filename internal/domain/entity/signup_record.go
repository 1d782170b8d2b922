package entity

import "time"

// PlanFree único plan asignado en el registro.
const PlanFree = "free"

// SignupRecord resumen durable de un registro. Existe siempre que la identidad se
// haya creado; los snapshots nil indican el paso de aprovisionamiento que falló.
type SignupRecord struct {
	IdentityID   string
	Name         string
	Email        string
	BusinessType BusinessType
	Plan         string
	Organization *Organization
	Client       *Client
	ClonedAgent  *ClonedAgent
	CreatedAt    time.Time // asignado por el servidor de base de datos
}

package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// AccountResponse SignupRecord del usuario autenticado.
type AccountResponse struct {
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	BusinessType string    `json:"businessType"`
	Plan         string    `json:"plan"`
	OrgID        string    `json:"orgId,omitempty"`
	AgentID      string    `json:"agentId,omitempty"`
	HasClient    bool      `json:"hasClient"`
	CreatedAt    time.Time `json:"createdAt"`
}

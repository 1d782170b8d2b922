package dto

// SignupRequest body para POST /api/signup. businessType es opcional (default other).
type SignupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	BusinessType string `json:"businessType,omitempty"`
}

// SignupUserData datos públicos del registro.
type SignupUserData struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessType string `json:"businessType"`
	Plan         string `json:"plan"`
}

// SignupResponse respuesta 201 del registro.
type SignupResponse struct {
	Message  string         `json:"message"`
	UserID   string         `json:"userId"`
	UserData SignupUserData `json:"userData"`
}

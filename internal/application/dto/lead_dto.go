package dto

// CallRequest body para POST /api/tixiea/call.
type CallRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// LeadResponse respuesta 201 al guardar un lead.
type LeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// FailureResponse error de las rutas de leads y llamadas ({error, details}).
type FailureResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

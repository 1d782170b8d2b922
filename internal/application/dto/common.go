package dto

// ErrorResponse cuerpo de error HTTP. Error y Code solo aparecen en fallos internos.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")

	// Fatales para el registro.
	ErrMissingFields     = errors.New("name, email y password son requeridos")
	ErrDuplicateIdentity = errors.New("la identidad ya existe")
	ErrAuthProvider      = errors.New("error del proveedor de identidad")

	// No fatales: se registran y quedan como ausencia en el SignupRecord.
	ErrTemplateUnavailable      = errors.New("plantilla de agente no disponible")
	ErrTemplateImportFailed     = errors.New("importación de plantilla fallida")
	ErrOrgProvisioningFailed    = errors.New("creación de organización fallida")
	ErrClientProvisioningFailed = errors.New("creación de cliente fallida")
	ErrRecordPersistFailed      = errors.New("persistencia del registro fallida")
)

// Códigos normalizados del proveedor de identidad. Cualquier código propio del
// proveedor se traduce a uno de estos antes de salir del adaptador.
const (
	AuthCodeEmailInUse          = "auth/email-already-in-use"
	AuthCodeOperationNotAllowed = "auth/operation-not-allowed"
	AuthCodeInvalidCredential   = "auth/invalid-credential"
	AuthCodeWeakPassword        = "auth/weak-password"
	AuthCodeInvalidEmail        = "auth/invalid-email"
	AuthCodeNetwork             = "auth/network-request-failed"
	AuthCodeInternal            = "auth/internal-error"
)

// AuthError error normalizado del proveedor de identidad.
type AuthError struct {
	Code    string
	Message string
	Err     error
}

// NewAuthError construye un AuthError; cause puede ser nil.
func NewAuthError(code, message string, cause error) *AuthError {
	return &AuthError{Code: code, Message: message, Err: cause}
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap expone la causa y el sentinel correspondiente al código.
func (e *AuthError) Unwrap() []error {
	sentinel := ErrAuthProvider
	if e.Code == AuthCodeEmailInUse {
		sentinel = ErrDuplicateIdentity
	}
	if e.Err != nil {
		return []error{sentinel, e.Err}
	}
	return []error{sentinel}
}

// AuthCode extrae el código normalizado de err, o AuthCodeInternal si no es un AuthError.
func AuthCode(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return AuthCodeInternal
}

// maxUpstreamBody bytes del cuerpo que se incluyen en el mensaje de error.
const maxUpstreamBody = 512

// UpstreamError respuesta no exitosa de un servicio externo. Body es JSON válido
// (el cuerpo recibido, o el texto plano serializado como string).
type UpstreamError struct {
	Service string
	Status  int
	Body    json.RawMessage
}

func (e *UpstreamError) Error() string {
	body := truncate(string(e.Body), maxUpstreamBody)
	return fmt.Sprintf("%s: HTTP %d: %s", e.Service, e.Status, body)
}

// ValidationError entrada rechazada con un mensaje apto para el cliente.
// errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Msg string
}

// NewValidationError construye un ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// truncate corta s a lo sumo limit bytes sin partir un rune y agrega "...".
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

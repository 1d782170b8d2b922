package entity

import "time"

// Identity registro durable de autenticación de un usuario registrado.
type Identity struct {
	ID           string
	Email        string
	DisplayName  string
	Verified     bool
	CreatedAt    time.Time
	LastSignInAt time.Time
	// AlreadyExists es true cuando la identidad no se creó en esta llamada sino que
	// se reutilizó tras re-autenticar con las credenciales recibidas.
	AlreadyExists bool
}

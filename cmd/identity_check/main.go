// identity_check verifica que el proveedor de identidad configurado permite el
// registro con email y contraseña: crea una identidad desechable y vuelve a
// autenticarla.
//
// Uso: go run ./cmd/identity_check
// Lee la misma configuración que cmd/api (IDENTITY_PROVIDER, FIREBASE_*, DB_*).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/internal/domain/repository"
	"github.com/jhoicas/goagent-api/internal/infrastructure/firebase"
	"github.com/jhoicas/goagent-api/internal/infrastructure/postgres"
	"github.com/jhoicas/goagent-api/pkg/config"
)

const testPassword = "Test123456!"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeFn, err := identityStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Proveedor de identidad: %v\n", err)
		os.Exit(1)
	}
	defer closeFn()

	fmt.Printf("Proveedor: %s\n", cfg.Identity.Provider)
	if cfg.Identity.Provider == config.IdentityProviderFirebase {
		fmt.Printf("API key: %s\n", maskKey(cfg.Identity.FirebaseAPIKey))
		fmt.Printf("Proyecto: %s\n", cfg.Identity.FirebaseProjectID)
	}

	email := fmt.Sprintf("test%d@example.com", time.Now().UnixMilli())
	fmt.Printf("Creando identidad de prueba (%s)...\n", email)
	identity, err := store.Create(ctx, email, testPassword, "Identity Check")
	if err != nil {
		fail(err)
	}
	fmt.Printf("OK: identidad creada (%s)\n", identity.ID)

	fmt.Println("Autenticando con la identidad nueva...")
	if _, err := store.Authenticate(ctx, email, testPassword); err != nil {
		fail(err)
	}
	fmt.Println("OK: autenticación correcta")
	fmt.Println("\nEl proveedor acepta registro con email y contraseña. La identidad de prueba no se borra.")
}

func identityStore(ctx context.Context, cfg *config.Config) (repository.IdentityStore, func(), error) {
	if cfg.Identity.Provider == config.IdentityProviderFirebase {
		return firebase.NewIdentityToolkit(firebase.Config{
			APIKey:       cfg.Identity.FirebaseAPIKey,
			EmulatorHost: cfg.Identity.FirebaseEmulatorHost,
			HTTPTimeout:  cfg.Platform.StepTimeout,
		}), func() {}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.RunMigrations(pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return postgres.NewIdentityStore(pool, 0), pool.Close, nil
}

// fail imprime el diagnóstico del código normalizado y termina.
func fail(err error) {
	code := domain.AuthCode(err)
	fmt.Fprintf(os.Stderr, "ERROR: %s: %v\n", code, err)
	switch code {
	case domain.AuthCodeOperationNotAllowed:
		fmt.Fprintln(os.Stderr, "\nEl registro con email y contraseña no está habilitado en el proveedor.")
		fmt.Fprintln(os.Stderr, "Habilitarlo en la consola (Authentication > Sign-in method) y repetir.")
	case domain.AuthCodeInvalidCredential:
		fmt.Fprintln(os.Stderr, "\nLa API key no es válida o fue restringida. Revisar FIREBASE_API_KEY.")
	case domain.AuthCodeEmailInUse:
		fmt.Fprintln(os.Stderr, "\nEl email de prueba ya existe: la API key es válida y el registro funciona.")
	case domain.AuthCodeNetwork:
		fmt.Fprintln(os.Stderr, "\nNo se pudo contactar al proveedor. Revisar red o FIREBASE_AUTH_EMULATOR_HOST.")
	}
	if errors.Is(err, domain.ErrDuplicateIdentity) {
		os.Exit(0)
	}
	os.Exit(1)
}

// maskKey deja visibles solo los extremos de la clave.
func maskKey(key string) string {
	if len(key) <= 8 {
		return key[:min(len(key), 4)] + "..."
	}
	return key[:4] + "..." + key[len(key)-4:]
}

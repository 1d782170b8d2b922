package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/goagent-api/internal/domain"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
	"github.com/jhoicas/goagent-api/internal/domain/repository"
)

var _ repository.IdentityStore = (*IdentityToolkit)(nil)

const (
	productionBaseURL = "https://identitytoolkit.googleapis.com/v1"
	maxBodyBytes      = 64 * 1024
)

// Config acceso a Firebase Authentication vía REST.
type Config struct {
	APIKey       string
	EmulatorHost string // host:port de FIREBASE_AUTH_EMULATOR_HOST; vacío = producción
	HTTPTimeout  time.Duration
}

// IdentityToolkit IdentityStore sobre la API REST de Identity Toolkit (Firebase Auth).
// Los códigos de error del proveedor se normalizan a los de domain.
type IdentityToolkit struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewIdentityToolkit construye el adaptador. Con EmulatorHost apunta al emulador local.
func NewIdentityToolkit(cfg Config) *IdentityToolkit {
	base := productionBaseURL
	if host := strings.TrimSpace(cfg.EmulatorHost); host != "" {
		base = "http://" + strings.TrimPrefix(host, "http://") + "/identitytoolkit.googleapis.com/v1"
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &IdentityToolkit{apiKey: cfg.APIKey, baseURL: base, httpClient: &http.Client{Timeout: timeout}}
}

type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type accountResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Registered  bool   `json:"registered"`
}

// Exists usa accounts:createAuthUri. Con protección de enumeración activa el
// proveedor omite "registered" y el resultado es false; la verificación real es Create.
func (s *IdentityToolkit) Exists(ctx context.Context, email string) (bool, error) {
	var resp struct {
		Registered bool `json:"registered"`
	}
	payload := map[string]any{"identifier": email, "continueUri": "http://localhost"}
	if err := s.call(ctx, "accounts:createAuthUri", payload, &resp); err != nil {
		return false, err
	}
	return resp.Registered, nil
}

// Create usa accounts:signUp. Con EMAIL_EXISTS re-autentica: éxito -> AlreadyExists=true;
// cualquier fallo -> AuthError email-already-in-use.
func (s *IdentityToolkit) Create(ctx context.Context, email, password, displayName string) (*entity.Identity, error) {
	var resp accountResponse
	payload := map[string]any{
		"email":             email,
		"password":          password,
		"displayName":       displayName,
		"returnSecureToken": true,
	}
	err := s.call(ctx, "accounts:signUp", payload, &resp)
	if err == nil {
		now := time.Now().UTC()
		return &entity.Identity{
			ID:           resp.LocalID,
			Email:        firstNonEmpty(resp.Email, email),
			DisplayName:  firstNonEmpty(resp.DisplayName, displayName),
			CreatedAt:    now,
			LastSignInAt: now,
		}, nil
	}
	if domain.AuthCode(err) != domain.AuthCodeEmailInUse {
		return nil, err
	}

	// El proveedor ya confirmó que el email existe: cualquier fallo de la
	// re-autenticación se reporta como duplicado, con el fallo como causa.
	existing, authErr := s.Authenticate(ctx, email, password)
	if authErr != nil {
		return nil, domain.NewAuthError(domain.AuthCodeEmailInUse, "EMAIL_EXISTS", authErr)
	}
	existing.AlreadyExists = true
	return existing, nil
}

// Authenticate usa accounts:signInWithPassword.
func (s *IdentityToolkit) Authenticate(ctx context.Context, email, password string) (*entity.Identity, error) {
	var resp accountResponse
	payload := map[string]any{"email": email, "password": password, "returnSecureToken": true}
	if err := s.call(ctx, "accounts:signInWithPassword", payload, &resp); err != nil {
		return nil, err
	}
	return &entity.Identity{
		ID:           resp.LocalID,
		Email:        firstNonEmpty(resp.Email, email),
		DisplayName:  resp.DisplayName,
		LastSignInAt: time.Now().UTC(),
	}, nil
}

// call hace POST {base}/{method}?key=... y decodifica out. Todo error sale como *domain.AuthError.
func (s *IdentityToolkit) call(ctx context.Context, method string, payload, out any) error {
	if s.apiKey == "" {
		return domain.NewAuthError(domain.AuthCodeInvalidCredential, "FIREBASE_API_KEY no configurado", nil)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.NewAuthError(domain.AuthCodeInternal, "serializar request", err)
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", s.baseURL, method, url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.NewAuthError(domain.AuthCodeInternal, "crear HTTP request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.NewAuthError(domain.AuthCodeNetwork, "timeout o cancelación", ctx.Err())
		}
		return domain.NewAuthError(domain.AuthCodeNetwork, "llamada HTTP fallida", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.NewAuthError(domain.AuthCodeNetwork, "leer respuesta", err)
	}

	if resp.StatusCode != http.StatusOK {
		var perr providerError
		if jsonErr := json.Unmarshal(raw, &perr); jsonErr == nil && perr.Error.Message != "" {
			return domain.NewAuthError(normalizeCode(perr.Error.Message), perr.Error.Message, nil)
		}
		return domain.NewAuthError(domain.AuthCodeInternal, fmt.Sprintf("HTTP %d", resp.StatusCode), nil)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.NewAuthError(domain.AuthCodeInternal, "deserializar respuesta", err)
	}
	return nil
}

// normalizeCode traduce el mensaje del proveedor ("WEAK_PASSWORD : ...") a un código de domain.
func normalizeCode(message string) string {
	if strings.HasPrefix(message, "API key not valid") {
		return domain.AuthCodeInvalidCredential
	}
	code, _, _ := strings.Cut(message, " ")
	switch strings.TrimSpace(code) {
	case "EMAIL_EXISTS":
		return domain.AuthCodeEmailInUse
	case "OPERATION_NOT_ALLOWED", "ADMIN_ONLY_OPERATION", "PASSWORD_LOGIN_DISABLED":
		return domain.AuthCodeOperationNotAllowed
	case "INVALID_LOGIN_CREDENTIALS", "INVALID_PASSWORD", "EMAIL_NOT_FOUND", "USER_DISABLED", "INVALID_API_KEY":
		return domain.AuthCodeInvalidCredential
	case "WEAK_PASSWORD", "MISSING_PASSWORD":
		return domain.AuthCodeWeakPassword
	case "INVALID_EMAIL", "MISSING_EMAIL":
		return domain.AuthCodeInvalidEmail
	default:
		return domain.AuthCodeInternal
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

package voiceplatform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/goagent-api/internal/application/ports"
	"github.com/jhoicas/goagent-api/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa los puertos de la plataforma.
var (
	_ ports.TemplateService         = (*Client)(nil)
	_ ports.OrganizationProvisioner = (*Client)(nil)
	_ ports.ClientProvisioner       = (*Client)(nil)
	_ ports.CallDialer              = (*Client)(nil)
)

// maxBodyBytes límite de lectura de respuestas; las plantillas exportadas pueden ser grandes.
const maxBodyBytes = 2 << 20

// Config parámetros de conexión a la plataforma de agentes de voz.
type Config struct {
	APIKey          string // bearer para todas las llamadas
	AgentsURL       string // base de /v3/agents y /v3/calls
	OrgsURL         string // base de /v2/orgs y /v2/clients
	CallAgentID     string // agente que atiende las llamadas salientes
	DefaultWidgetID string // widget usado cuando no llega uno
	HTTPTimeout     time.Duration
}

// Client adaptador HTTP de la plataforma. Cada método corresponde a un puerto de
// application/ports; los timeouts por paso los pone el caller con el ctx.
type Client struct {
	apiKey          string
	agentsURL       string
	orgsURL         string
	callAgentID     string
	defaultWidgetID string
	httpClient      *http.Client
}

// NewClient construye el adaptador. HTTPTimeout 0 = 30 s de tope de red.
func NewClient(cfg Config) *Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:          cfg.APIKey,
		agentsURL:       strings.TrimRight(cfg.AgentsURL, "/"),
		orgsURL:         strings.TrimRight(cfg.OrgsURL, "/"),
		callAgentID:     cfg.CallAgentID,
		defaultWidgetID: cfg.DefaultWidgetID,
		httpClient:      &http.Client{Timeout: timeout},
	}
}

// do envía payload (si no es nil) como JSON y devuelve status y cuerpo crudo.
// Solo falla por errores de transporte; el status lo interpreta cada operación.
func (c *Client) do(ctx context.Context, method, url string, payload any) (int, []byte, error) {
	if c.apiKey == "" {
		return 0, nil, fmt.Errorf("voiceplatform: API_KEY no configurado")
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("voiceplatform: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, fmt.Errorf("voiceplatform: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("voiceplatform: timeout o cancelación: %w", ctx.Err())
		}
		return 0, nil, fmt.Errorf("voiceplatform: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("voiceplatform: leer respuesta: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// upstreamError arma el error con el cuerpo recibido; si no es JSON se guarda como string.
func upstreamError(service string, status int, raw []byte) *domain.UpstreamError {
	body := json.RawMessage(raw)
	if len(bytes.TrimSpace(raw)) == 0 || !json.Valid(raw) {
		body, _ = json.Marshal(string(raw))
	}
	return &domain.UpstreamError{Service: service, Status: status, Body: body}
}

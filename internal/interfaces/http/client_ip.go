package http

import "github.com/gofiber/fiber/v2"

// WithProxyHeader configura c.IP() para leer la IP del cliente de header (detrás
// de un balanceador). Con trusted no vacío la cabecera solo se acepta si la
// conexión viene de esas IPs/CIDRs. header vacío deja cfg sin cambios.
func WithProxyHeader(cfg fiber.Config, header string, trusted []string) fiber.Config {
	if header == "" {
		return cfg
	}
	cfg.ProxyHeader = header
	// X-Forwarded-For trae "cliente, proxy1, ...": la validación toma la primera IP válida.
	cfg.EnableIPValidation = true
	if len(trusted) > 0 {
		cfg.EnableTrustedProxyCheck = true
		cfg.TrustedProxies = trusted
	}
	return cfg
}

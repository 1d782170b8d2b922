package entity

// ClientAccessPaths rutas del dashboard habilitadas para todo cliente nuevo (orden fijo).
var ClientAccessPaths = []string{
	"/home",
	"/prompt",
	"/overview",
	"/voice",
	"/billing",
	"/convos",
	"/analytics",
	"/channels",
	"/leads",
	"/kb",
	"/settings",
	"/metrics",
	"/campaigns",
}

// Client usuario del dashboard ligado a una organización.
type Client struct {
	ID                string   `json:"id,omitempty"`
	OrgID             string   `json:"orgId"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	DashboardPassword string   `json:"-"` // nunca se serializa en el snapshot
	AccessPaths       []string `json:"accessPaths"`
	IsOrgAdmin        bool     `json:"isOrgAdmin"`
}

// NewClient arma un cliente con el set fijo de rutas y permisos de administrador.
func NewClient(orgID, name, email, password string) *Client {
	paths := make([]string, len(ClientAccessPaths))
	copy(paths, ClientAccessPaths)
	return &Client{
		OrgID:             orgID,
		Name:              name,
		Email:             email,
		DashboardPassword: password,
		AccessPaths:       paths,
		IsOrgAdmin:        true,
	}
}

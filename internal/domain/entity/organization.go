package entity

// Organization tenant creado en la plataforma de agentes.
type Organization struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	WidgetIDs []string `json:"widgetIds"`
}

// HasID indica si la plataforma devolvió un ID utilizable.
func (o *Organization) HasID() bool {
	return o != nil && o.ID != ""
}

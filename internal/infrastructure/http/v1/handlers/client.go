package handlers

import (
	"tripdesk/internal/domain/catalogs/client"
	"tripdesk/internal/infrastructure/http/v1/dto"
)

// Type alias keeps the handler signatures readable.
type ClientHTTPHandler = CatalogHandler[
	*client.Client,
	dto.CreateClientRequest,
	dto.UpdateClientRequest,
]

// NewClientHandler wires the generic catalog handler for clients.
func NewClientHandler(base *BaseHandler, service *client.Service) *ClientHTTPHandler {
	config := CatalogHandlerConfig[
		*client.Client,
		dto.CreateClientRequest,
		dto.UpdateClientRequest,
	]{
		Service:    service,
		EntityName: "client",

		MapCreateDTO: func(req dto.CreateClientRequest) (*client.Client, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdateClientRequest, existing *client.Client) error {
			req.ApplyTo(existing)
			return nil
		},

		MapToDTO: func(c *client.Client) any {
			return dto.FromClient(c)
		},
	}

	return NewCatalogHandler(base, config)
}

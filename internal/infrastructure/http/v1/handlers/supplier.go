package handlers

import (
	"tripdesk/internal/domain/catalogs/supplier"
	"tripdesk/internal/infrastructure/http/v1/dto"
)

type SupplierHTTPHandler = CatalogHandler[
	*supplier.Supplier,
	dto.CreateSupplierRequest,
	dto.UpdateSupplierRequest,
]

// NewSupplierHandler wires the generic catalog handler for suppliers.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *SupplierHTTPHandler {
	config := CatalogHandlerConfig[
		*supplier.Supplier,
		dto.CreateSupplierRequest,
		dto.UpdateSupplierRequest,
	]{
		Service:    service,
		EntityName: "supplier",

		MapCreateDTO: func(req dto.CreateSupplierRequest) (*supplier.Supplier, error) {
			return req.ToEntity(), nil
		},

		MapUpdateDTO: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) error {
			req.ApplyTo(existing)
			return nil
		},

		MapToDTO: func(s *supplier.Supplier) any {
			return dto.FromSupplier(s)
		},
	}

	return NewCatalogHandler(base, config)
}

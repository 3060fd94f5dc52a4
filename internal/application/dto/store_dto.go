package dto

import "github.com/jhoicas/visitas-api/internal/domain/entity"

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SupplierRequest alta idempotente de proveedor.
type SupplierRequest struct {
	Name string `json:"name" validate:"required"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ToStoreResponses mapea tiendas a su salida.
func ToStoreResponses(stores []*entity.Store) []StoreResponse {
	out := make([]StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, StoreResponse{ID: s.ID, Name: s.Name})
	}
	return out
}

// ToSupplierResponses mapea proveedores a su salida.
func ToSupplierResponses(suppliers []*entity.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, SupplierResponse{ID: s.ID, Name: s.Name})
	}
	return out
}

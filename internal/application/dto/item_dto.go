package dto

import (
	"time"

	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
)

// ItemResponse representación HTTP de un ítem del catálogo (libro o paquete).
type ItemResponse struct {
	ID         string    `json:"id"`
	SKU        string    `json:"sku"`
	Title      string    `json:"title"`
	IsBundle   bool      `json:"is_bundle"`
	Components []string  `json:"components,omitempty"` // solo paquetes
	CreatedAt  time.Time `json:"created_at"`
}

// ItemListResponse listado paginado de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ToItemResponse mapea la entidad a su representación HTTP.
func ToItemResponse(it *entity.Item) *ItemResponse {
	if it == nil {
		return nil
	}
	return &ItemResponse{
		ID:         it.ID,
		SKU:        it.SKU,
		Title:      it.Title,
		IsBundle:   it.IsBundle,
		Components: it.Components(),
		CreatedAt:  it.CreatedAt,
	}
}

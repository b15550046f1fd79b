package usecase

import (
	"fmt"

	"github.com/editorialarcadia/almacen-api/internal/application/dto"
	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
)

// ItemUseCase consultas del catálogo. El catálogo lo administra el servicio
// editorial; este motor solo lo lee.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// GetByID obtiene un ítem por ID; nil si no existe.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.ToItemResponse(item), nil
}

// List lista ítems del catálogo con paginación.
func (uc *ItemUseCase) List(limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar ítems: %w", err)
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *dto.ToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

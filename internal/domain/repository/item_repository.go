package repository

import "github.com/editorialarcadia/almacen-api/internal/domain/entity"

// ItemRepository define el puerto de lectura del catálogo (libros y paquetes).
// El catálogo es un colaborador externo; aquí solo se consulta.
type ItemRepository interface {
	GetByID(id string) (*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
}

package repository

import "github.com/editorialarcadia/almacen-api/internal/domain/entity"

// MovementFilter filtros del listado de movimientos. Kind vacío = todas las
// clases; WarehouseID filtra por origen o destino.
type MovementFilter struct {
	Kind        string
	WarehouseID string
	Limit       int
	Offset      int
}

// MovementRepository define el puerto de persistencia para movimientos.
// Los movimientos son hechos de auditoría: solo inserción y lectura.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// List devuelve movimientos del más reciente al más antiguo.
	List(filter MovementFilter) ([]*entity.Movement, error)
	// NextConsecutive devuelve el siguiente número de movimiento mediante un
	// incremento atómico del contador; nunca read-then-increment.
	NextConsecutive() (int64, error)
}

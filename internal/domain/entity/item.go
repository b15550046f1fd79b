package entity

import "time"

// Item es la vista de catálogo que necesita el libro de inventario: un libro
// físico o un paquete (producto virtual compuesto por libros físicos).
// El stock de un paquete se deriva de sus componentes; nunca se almacena
// una fila de stock con el ID del paquete.
type Item struct {
	ID           string
	SKU          string
	Title        string
	IsBundle     bool
	ComponentIDs []string // solo para paquetes: IDs de libros físicos, no vacío, sin repetidos
	CreatedAt    time.Time
}

// Components devuelve los componentes si el ítem es un paquete; para un ítem
// físico devuelve nil. Centraliza la distinción físico/paquete para que el
// resto del código no re-verifique el flag.
func (i *Item) Components() []string {
	if !i.IsBundle {
		return nil
	}
	return i.ComponentIDs
}

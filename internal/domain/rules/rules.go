// Package rules implementa el motor de reglas de movimientos: un validador
// puro, indexado por clase de movimiento, que acepta o rechaza la combinación
// (clase, tipo de bodega origen, tipo de bodega destino) y determina qué lados
// del libro de stock participan. No hace I/O ni tiene efectos secundarios; es
// la primera compuerta y corre antes de cualquier mutación de stock o registro
// financiero.
package rules

import (
	"github.com/editorialarcadia/almacen-api/internal/domain"
	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
)

// Decision indica qué lados del libro de stock aplica el movimiento.
type Decision struct {
	DebitSource bool // descontar en bodega origen
	CreditDest  bool // acreditar en bodega destino
}

// rule describe los extremos requeridos y las restricciones de tipo de bodega
// para una clase de movimiento. Un campo mustBe/mustNotBe vacío significa sin
// restricción. Un extremo no requerido se ignora si viene informado.
type rule struct {
	requiresSource  bool
	requiresDest    bool
	sourceMustBe    string
	sourceMustNotBe string
	destMustBe      string
	destMustNotBe   string
	decision        Decision
}

// Tabla de reglas de negocio de la editorial:
//
//	INGRESO:     entrada a bodega; el destino no puede ser punto de venta.
//	REMISION:    envío en consignación; origen no punto de venta, destino sí.
//	DEVOLUCION:  retorno de consignación; origen punto de venta, destino no.
//	LIQUIDACION: baja definitiva desde cualquier bodega.
var table = map[string]rule{
	entity.MovementKindIngreso: {
		requiresDest:  true,
		destMustNotBe: entity.WarehouseTypePuntoVenta,
		decision:      Decision{CreditDest: true},
	},
	entity.MovementKindRemision: {
		requiresSource:  true,
		requiresDest:    true,
		sourceMustNotBe: entity.WarehouseTypePuntoVenta,
		destMustBe:      entity.WarehouseTypePuntoVenta,
		decision:        Decision{DebitSource: true, CreditDest: true},
	},
	entity.MovementKindDevolucion: {
		requiresSource: true,
		requiresDest:   true,
		sourceMustBe:   entity.WarehouseTypePuntoVenta,
		destMustNotBe:  entity.WarehouseTypePuntoVenta,
		decision:       Decision{DebitSource: true, CreditDest: true},
	},
	entity.MovementKindLiquidacion: {
		requiresSource: true,
		decision:       Decision{DebitSource: true},
	},
}

// Validate acepta o rechaza la combinación (clase, bodega origen, bodega
// destino). Devuelve la decisión de aplicación o un *domain.RuleViolationError
// con el motivo concreto (clase desconocida, extremo faltante o tipo de bodega
// no permitido).
func Validate(kind string, source, dest *entity.Warehouse) (Decision, error) {
	r, ok := table[kind]
	if !ok {
		return Decision{}, &domain.RuleViolationError{Kind: kind, Reason: "clase de movimiento desconocida"}
	}
	if r.requiresSource && source == nil {
		return Decision{}, &domain.RuleViolationError{Kind: kind, Reason: "requiere bodega origen"}
	}
	if r.requiresDest && dest == nil {
		return Decision{}, &domain.RuleViolationError{Kind: kind, Reason: "requiere bodega destino"}
	}
	if source != nil {
		if r.sourceMustBe != "" && source.Type != r.sourceMustBe {
			return Decision{}, &domain.RuleViolationError{Kind: kind, Reason: "la bodega origen debe ser " + r.sourceMustBe}
		}
		if r.sourceMustNotBe != "" && source.Type == r.sourceMustNotBe {
			return Decision{}, &domain.RuleViolationError{Kind: kind, Reason: "la bodega origen no puede ser " + r.sourceMustNotBe}
		}
	}
	if dest != nil {
		if r.destMustBe != "" && dest.Type != r.destMustBe {
			return Decision{}, &domain.RuleViolationError{Kind: kind, Reason: "la bodega destino debe ser " + r.destMustBe}
		}
		if r.destMustNotBe != "" && dest.Type == r.destMustNotBe {
			return Decision{}, &domain.RuleViolationError{Kind: kind, Reason: "la bodega destino no puede ser " + r.destMustNotBe}
		}
	}
	return r.decision, nil
}

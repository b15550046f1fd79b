package rules_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editorialarcadia/almacen-api/internal/domain"
	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
	"github.com/editorialarcadia/almacen-api/internal/domain/rules"
)

func bodega(tipo string) *entity.Warehouse {
	return &entity.Warehouse{ID: "wh-" + tipo, Name: "Bodega " + tipo, Type: tipo, Status: entity.WarehouseStatusActiva}
}

var allTypes = []string{
	entity.WarehouseTypeEditorial,
	entity.WarehouseTypePuntoVenta,
	entity.WarehouseTypeGeneral,
}

var allKinds = []string{
	entity.MovementKindIngreso,
	entity.MovementKindRemision,
	entity.MovementKindDevolucion,
	entity.MovementKindLiquidacion,
}

// expectedAccept reproduce la tabla de negocio de forma independiente:
// acepta exactamente las combinaciones permitidas cuando ambos extremos
// vienen informados.
func expectedAccept(kind, sourceType, destType string) bool {
	switch kind {
	case entity.MovementKindIngreso:
		return destType != entity.WarehouseTypePuntoVenta
	case entity.MovementKindRemision:
		return sourceType != entity.WarehouseTypePuntoVenta && destType == entity.WarehouseTypePuntoVenta
	case entity.MovementKindDevolucion:
		return sourceType == entity.WarehouseTypePuntoVenta && destType != entity.WarehouseTypePuntoVenta
	case entity.MovementKindLiquidacion:
		return true
	}
	return false
}

// Enumeración exhaustiva de las 3x3x4 combinaciones con ambos extremos presentes.
func TestValidate_TablaExhaustiva(t *testing.T) {
	for _, kind := range allKinds {
		for _, st := range allTypes {
			for _, dt := range allTypes {
				name := fmt.Sprintf("%s_%s_a_%s", kind, st, dt)
				t.Run(name, func(t *testing.T) {
					_, err := rules.Validate(kind, bodega(st), bodega(dt))
					if expectedAccept(kind, st, dt) {
						assert.NoError(t, err, "la combinación debe aceptarse")
					} else {
						require.Error(t, err, "la combinación debe rechazarse")
						assert.True(t, errors.Is(err, domain.ErrRuleViolation))
					}
				})
			}
		}
	}
}

func TestValidate_ClaseDesconocida(t *testing.T) {
	_, err := rules.Validate("TRASLADO", bodega(entity.WarehouseTypeGeneral), bodega(entity.WarehouseTypeGeneral))
	require.Error(t, err)
	var rv *domain.RuleViolationError
	require.ErrorAs(t, err, &rv)
	assert.Equal(t, "TRASLADO", rv.Kind)
	assert.Contains(t, rv.Reason, "desconocida")
}

func TestValidate_ExtremosRequeridos(t *testing.T) {
	cases := []struct {
		name   string
		kind   string
		source *entity.Warehouse
		dest   *entity.Warehouse
		motivo string
	}{
		{"ingreso sin destino", entity.MovementKindIngreso, nil, nil, "destino"},
		{"remision sin origen", entity.MovementKindRemision, nil, bodega(entity.WarehouseTypePuntoVenta), "origen"},
		{"remision sin destino", entity.MovementKindRemision, bodega(entity.WarehouseTypeEditorial), nil, "destino"},
		{"devolucion sin origen", entity.MovementKindDevolucion, nil, bodega(entity.WarehouseTypeGeneral), "origen"},
		{"liquidacion sin origen", entity.MovementKindLiquidacion, nil, nil, "origen"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rules.Validate(tc.kind, tc.source, tc.dest)
			var rv *domain.RuleViolationError
			require.ErrorAs(t, err, &rv)
			assert.Contains(t, rv.Reason, tc.motivo)
		})
	}
}

// Los extremos no requeridos no invalidan el movimiento: un INGRESO puede
// informar una bodega origen (referencial) y una LIQUIDACION un destino;
// la decisión de aplicación los ignora.
func TestValidate_ExtremosOpcionalesIgnorados(t *testing.T) {
	d, err := rules.Validate(entity.MovementKindIngreso, bodega(entity.WarehouseTypePuntoVenta), bodega(entity.WarehouseTypeEditorial))
	require.NoError(t, err)
	assert.False(t, d.DebitSource)
	assert.True(t, d.CreditDest)

	d, err = rules.Validate(entity.MovementKindLiquidacion, bodega(entity.WarehouseTypeGeneral), bodega(entity.WarehouseTypePuntoVenta))
	require.NoError(t, err)
	assert.True(t, d.DebitSource)
	assert.False(t, d.CreditDest)
}

func TestValidate_Decision(t *testing.T) {
	d, err := rules.Validate(entity.MovementKindRemision, bodega(entity.WarehouseTypeEditorial), bodega(entity.WarehouseTypePuntoVenta))
	require.NoError(t, err)
	assert.Equal(t, rules.Decision{DebitSource: true, CreditDest: true}, d)

	d, err = rules.Validate(entity.MovementKindIngreso, nil, bodega(entity.WarehouseTypeGeneral))
	require.NoError(t, err)
	assert.Equal(t, rules.Decision{CreditDest: true}, d)
}

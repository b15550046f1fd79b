package finanzas

import (
	"context"
	"fmt"

	"github.com/editorialarcadia/almacen-api/internal/application/movements"
	"github.com/editorialarcadia/almacen-api/internal/domain"
)

var _ movements.FinancialLedger = Disabled{}

// Disabled es el puente financiero sin configurar: rechaza cualquier intento
// de crear registros. Un ingreso por compra con payload inline falla explícito
// en lugar de aplicarse sin registro financiero.
type Disabled struct{}

// CreateRecord siempre falla con ErrFinancialBridge.
func (Disabled) CreateRecord(ctx context.Context, in movements.FinancialRecordInput) (string, error) {
	return "", fmt.Errorf("%w: servicio de finanzas no configurado", domain.ErrFinancialBridge)
}

// VoidRecord no tiene nada que anular.
func (Disabled) VoidRecord(ctx context.Context, reference string) error {
	return nil
}

package movements

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén de datos,
// pasando repositorios atados a esa transacción. Todas las líneas de un
// movimiento se aplican bajo la misma transacción: o entran todas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// FinancialRecordInput datos para crear el registro financiero externo de un
// ingreso por compra.
type FinancialRecordInput struct {
	Amount      decimal.Decimal
	Currency    string
	Date        time.Time
	Counterpart string // proveedor o tercero
	Concept     string
	InvoiceRef  string
}

// FinancialLedger define el puerto de salida hacia el libro financiero
// externo. La implementación concreta usa HTTP; para tests se inyecta un fake.
type FinancialLedger interface {
	// CreateRecord crea el registro financiero y devuelve su identificador
	// opaco. Un fallo aquí es fatal para todo el movimiento.
	CreateRecord(ctx context.Context, in FinancialRecordInput) (string, error)
	// VoidRecord anula un registro creado por CreateRecord. Se usa como
	// compensación de mejor esfuerzo cuando la transacción de stock falla
	// después de crear el registro.
	VoidRecord(ctx context.Context, reference string) error
}

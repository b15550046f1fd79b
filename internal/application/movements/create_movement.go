package movements

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/editorialarcadia/almacen-api/internal/domain"
	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
	"github.com/editorialarcadia/almacen-api/internal/domain/rules"
	"github.com/editorialarcadia/almacen-api/pkg/logger"
)

// maxTxAttempts reintentos acotados ante conflictos de concurrencia
// (serialization failure / deadlock) antes de devolver ErrConflict al caller.
const maxTxAttempts = 3

// CreateMovementUseCase orquesta la creación de un movimiento de inventario:
// reglas de negocio → expansión de paquetes → verificación de disponibilidad →
// puente financiero (condicional) → aplicación de stock y registro del
// movimiento en una sola transacción.
type CreateMovementUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository
	resolver      *Resolver
	financial     FinancialLedger
	log           *logger.Logger
}

// NewCreateMovementUseCase construye el caso de uso.
func NewCreateMovementUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
	resolver *Resolver,
	financial FinancialLedger,
	log *logger.Logger,
) *CreateMovementUseCase {
	return &CreateMovementUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		resolver:      resolver,
		financial:     financial,
		log:           log,
	}
}

// CreateMovementInput entrada para crear un movimiento.
type CreateMovementInput struct {
	Kind               string
	SubKind            string
	FromWarehouseID    string
	ToWarehouseID      string
	Lines              []entity.MovementLine
	Date               time.Time // cero = ahora
	InvoiceRef         string
	FinancialReference string                // referencia pre-creada: omite el puente
	Financial          *FinancialRecordInput // payload inline: invoca el puente
	Observations       string
	CreatedBy          string
}

// Execute crea el movimiento. Devuelve el movimiento persistido (con
// consecutivo asignado y referencia financiera si aplica) o un error tipado;
// ante cualquier error reportado el libro de stock queda sin cambios.
func (uc *CreateMovementUseCase) Execute(ctx context.Context, input CreateMovementInput) (*entity.Movement, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	source, err := uc.resolveWarehouse(input.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	dest, err := uc.resolveWarehouse(input.ToWarehouseID)
	if err != nil {
		return nil, err
	}

	decision, err := rules.Validate(input.Kind, source, dest)
	if err != nil {
		return nil, err
	}
	if decision.DebitSource && !source.IsActive() {
		return nil, &domain.RuleViolationError{Kind: input.Kind, Reason: "la bodega origen está inactiva"}
	}
	if decision.CreditDest && !dest.IsActive() {
		return nil, &domain.RuleViolationError{Kind: input.Kind, Reason: "la bodega destino está inactiva"}
	}

	expanded, err := uc.resolver.Expand(input.Lines)
	if err != nil {
		return nil, err
	}

	// Verificación de disponibilidad previa al puente financiero: un movimiento
	// condenado no debe dejar registros financieros huérfanos. La verificación
	// autoritativa corre después, bajo bloqueo de fila dentro de la transacción.
	if decision.DebitSource {
		if err := uc.checkAvailability(source.ID, expanded); err != nil {
			return nil, err
		}
	}

	finRef, bridged, err := uc.resolveFinancialReference(ctx, input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	mov := &entity.Movement{
		ID:                 uuid.New().String(),
		Kind:               input.Kind,
		SubKind:            input.SubKind,
		Date:               date,
		Lines:              input.Lines,
		FinancialReference: finRef,
		InvoiceRef:         input.InvoiceRef,
		TotalAmount:        financialAmount(input.Financial),
		Observations:       input.Observations,
		CreatedBy:          input.CreatedBy,
		CreatedAt:          now,
	}
	if decision.DebitSource {
		mov.FromWarehouseID = source.ID
	}
	if decision.CreditDest {
		mov.ToWarehouseID = dest.ID
	}

	if err := uc.applyWithRetry(ctx, mov, decision, expanded, now); err != nil {
		if bridged {
			uc.compensateFinancial(ctx, finRef, err)
		}
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", mov.ID).
		Int64("consecutive", mov.Consecutive).
		Str("kind", mov.Kind).
		Msg("movimiento registrado")
	return mov, nil
}

func (uc *CreateMovementUseCase) validateInput(input CreateMovementInput) error {
	if input.CreatedBy == "" {
		return &domain.ValidationError{Field: "created_by", Reason: "es requerido"}
	}
	if len(input.Lines) == 0 {
		return &domain.ValidationError{Field: "lines", Reason: "debe incluir al menos una línea"}
	}
	for i, line := range input.Lines {
		if line.ItemID == "" {
			return &domain.ValidationError{Field: fmt.Sprintf("lines[%d].item_id", i), Reason: "es requerido"}
		}
		if line.Quantity <= 0 {
			return &domain.ValidationError{Field: fmt.Sprintf("lines[%d].quantity", i), Reason: "debe ser mayor que cero"}
		}
	}
	if input.SubKind == entity.MovementSubKindCompra && input.Kind != entity.MovementKindIngreso {
		return &domain.ValidationError{Field: "sub_kind", Reason: "COMPRA solo aplica a movimientos INGRESO"}
	}
	if input.Financial != nil && !isPurchase(input) {
		return &domain.ValidationError{Field: "financial", Reason: "el payload financiero solo aplica a ingresos por compra"}
	}
	if input.Financial != nil && input.FinancialReference != "" {
		return &domain.ValidationError{Field: "financial", Reason: "payload y referencia financiera son excluyentes"}
	}
	return nil
}

// resolveWarehouse devuelve la bodega o nil si el ID viene vacío.
func (uc *CreateMovementUseCase) resolveWarehouse(id string) (*entity.Warehouse, error) {
	if id == "" {
		return nil, nil
	}
	wh, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrWarehouseNotFound, id)
	}
	return wh, nil
}

// checkAvailability verifica contra las filas actuales que cada libro físico
// tenga existencia suficiente, acumulando lo requerido por ítem (un paquete y
// una línea suelta pueden demandar el mismo componente).
func (uc *CreateMovementUseCase) checkAvailability(warehouseID string, expanded []ExpandedLine) error {
	required := make(map[string]int64, len(expanded))
	order := make([]string, 0, len(expanded))
	for _, line := range expanded {
		if _, seen := required[line.ItemID]; !seen {
			order = append(order, line.ItemID)
		}
		required[line.ItemID] += line.Quantity
	}
	for _, itemID := range order {
		entry, err := uc.stockRepo.Get(warehouseID, itemID)
		if err != nil {
			return err
		}
		if entry.Quantity < required[itemID] {
			return &domain.InsufficientStockError{
				ItemID:      itemID,
				WarehouseID: warehouseID,
				Requested:   required[itemID],
				Available:   entry.Quantity,
			}
		}
	}
	return nil
}

func isPurchase(input CreateMovementInput) bool {
	return input.Kind == entity.MovementKindIngreso && input.SubKind == entity.MovementSubKindCompra
}

// resolveFinancialReference devuelve la referencia financiera a registrar en
// el movimiento. Si el caller trae una referencia pre-creada se usa tal cual;
// si trae payload inline se invoca el puente financiero antes de tocar el
// stock, porque es el paso con más probabilidad de fallo.
func (uc *CreateMovementUseCase) resolveFinancialReference(ctx context.Context, input CreateMovementInput) (ref string, bridged bool, err error) {
	if input.FinancialReference != "" {
		return input.FinancialReference, false, nil
	}
	if !isPurchase(input) || input.Financial == nil {
		return "", false, nil
	}
	payload := *input.Financial
	if payload.InvoiceRef == "" {
		payload.InvoiceRef = input.InvoiceRef
	}
	ref, err = uc.financial.CreateRecord(ctx, payload)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", domain.ErrFinancialBridge, err)
	}
	return ref, true, nil
}

func financialAmount(in *FinancialRecordInput) decimal.Decimal {
	if in == nil {
		return decimal.Zero
	}
	return in.Amount
}

// applyWithRetry aplica el movimiento en una transacción; ante un conflicto de
// concurrencia reintenta hasta maxTxAttempts veces y luego devuelve el error.
func (uc *CreateMovementUseCase) applyWithRetry(ctx context.Context, mov *entity.Movement, decision rules.Decision, expanded []ExpandedLine, now time.Time) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
			return uc.apply(mov, decision, expanded, now, movRepo, stockRepo)
		})
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			return err
		}
		uc.log.Warn().Int("attempt", attempt).Msg("conflicto de concurrencia al aplicar movimiento; reintentando")
	}
	return err
}

// apply ejecuta débito/crédito de cada línea expandida y persiste el
// movimiento, todo dentro de la transacción que pasa el TxRunner. Los débitos
// releen la fila bajo bloqueo, de modo que la verificación y la aplicación ven
// el mismo snapshot y la cantidad nunca baja de cero.
func (uc *CreateMovementUseCase) apply(mov *entity.Movement, decision rules.Decision, expanded []ExpandedLine, now time.Time, movRepo repository.MovementRepository, stockRepo repository.StockRepository) error {
	// Orden determinista de bloqueo entre transacciones concurrentes.
	lines := make([]ExpandedLine, len(expanded))
	copy(lines, expanded)
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })

	if decision.DebitSource {
		for _, line := range lines {
			entry, err := stockRepo.GetForUpdate(mov.FromWarehouseID, line.ItemID)
			if err != nil {
				return err
			}
			if entry.Quantity < line.Quantity {
				return &domain.InsufficientStockError{
					ItemID:      line.ItemID,
					WarehouseID: mov.FromWarehouseID,
					Requested:   line.Quantity,
					Available:   entry.Quantity,
				}
			}
			entry.Quantity -= line.Quantity
			entry.UpdatedAt = now
			if err := stockRepo.Upsert(entry); err != nil {
				return err
			}
		}
	}
	if decision.CreditDest {
		for _, line := range lines {
			entry, err := stockRepo.GetForUpdate(mov.ToWarehouseID, line.ItemID)
			if err != nil {
				return err
			}
			entry.Quantity += line.Quantity
			entry.UpdatedAt = now
			if err := stockRepo.Upsert(entry); err != nil {
				return err
			}
		}
	}

	consecutive, err := movRepo.NextConsecutive()
	if err != nil {
		return err
	}
	mov.Consecutive = consecutive
	return movRepo.Create(mov)
}

// compensateFinancial anula, con mejor esfuerzo, el registro financiero creado
// por este movimiento cuando la transacción de stock falló después del puente.
func (uc *CreateMovementUseCase) compensateFinancial(ctx context.Context, ref string, cause error) {
	if err := uc.financial.VoidRecord(ctx, ref); err != nil {
		uc.log.Error().
			Str("financial_reference", ref).
			AnErr("void_error", err).
			AnErr("cause", cause).
			Msg("no se pudo anular el registro financiero; requiere compensación manual")
		return
	}
	uc.log.Warn().
		Str("financial_reference", ref).
		AnErr("cause", cause).
		Msg("registro financiero anulado tras fallo del movimiento")
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
)

// MovementLineRequest línea de un movimiento. ItemID puede ser un paquete.
type MovementLineRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

// FinancialPayload datos para crear el registro financiero de un ingreso por
// compra. Excluyente con FinancialReference.
type FinancialPayload struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Currency    string          `json:"currency" validate:"required,len=3"`
	Date        *time.Time      `json:"date,omitempty"`
	Counterpart string          `json:"counterpart,omitempty"`
	Concept     string          `json:"concept,omitempty"`
}

// CreateMovementRequest body para POST /api/movimientos.
type CreateMovementRequest struct {
	Kind               string                `json:"kind" validate:"required"`
	SubKind            string                `json:"sub_kind,omitempty"`
	FromWarehouseID    string                `json:"from_warehouse_id,omitempty"`
	ToWarehouseID      string                `json:"to_warehouse_id,omitempty"`
	Lines              []MovementLineRequest `json:"lines" validate:"required,min=1,dive"`
	Date               *time.Time            `json:"date,omitempty"`
	InvoiceRef         string                `json:"invoice_ref,omitempty"`
	FinancialReference string                `json:"financial_reference,omitempty"`
	Financial          *FinancialPayload     `json:"financial,omitempty"`
	Observations       string                `json:"observations,omitempty"`
}

// MovementLineResponse línea persistida.
type MovementLineResponse struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// MovementResponse representación HTTP de un movimiento registrado.
type MovementResponse struct {
	ID                 string                 `json:"id"`
	Consecutive        int64                  `json:"consecutive"`
	Kind               string                 `json:"kind"`
	SubKind            string                 `json:"sub_kind,omitempty"`
	Date               time.Time              `json:"date"`
	FromWarehouseID    string                 `json:"from_warehouse_id,omitempty"`
	ToWarehouseID      string                 `json:"to_warehouse_id,omitempty"`
	Lines              []MovementLineResponse `json:"lines"`
	FinancialReference string                 `json:"financial_reference,omitempty"`
	InvoiceRef         string                 `json:"invoice_ref,omitempty"`
	TotalAmount        decimal.Decimal        `json:"total_amount"`
	Observations       string                 `json:"observations,omitempty"`
	CreatedBy          string                 `json:"created_by"`
	CreatedAt          time.Time              `json:"created_at"`
}

// MovementListResponse listado paginado de movimientos (más recientes primero).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToMovementResponse mapea la entidad a su representación HTTP.
func ToMovementResponse(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	lines := make([]MovementLineResponse, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, MovementLineResponse{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return &MovementResponse{
		ID:                 m.ID,
		Consecutive:        m.Consecutive,
		Kind:               m.Kind,
		SubKind:            m.SubKind,
		Date:               m.Date,
		FromWarehouseID:    m.FromWarehouseID,
		ToWarehouseID:      m.ToWarehouseID,
		Lines:              lines,
		FinancialReference: m.FinancialReference,
		InvoiceRef:         m.InvoiceRef,
		TotalAmount:        m.TotalAmount,
		Observations:       m.Observations,
		CreatedBy:          m.CreatedBy,
		CreatedAt:          m.CreatedAt,
	}
}

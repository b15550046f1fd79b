package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/editorialarcadia/almacen-api/internal/application/dto"
	"github.com/editorialarcadia/almacen-api/internal/application/movements"
	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP de movimientos (protegido).
type MovementHandler struct {
	createUC *movements.CreateMovementUseCase
	queryUC  *movements.QueryUseCase
	validate *validator.Validate
}

// NewMovementHandler construye el handler.
func NewMovementHandler(createUC *movements.CreateMovementUseCase, queryUC *movements.QueryUseCase) *MovementHandler {
	return &MovementHandler{
		createUC: createUC,
		queryUC:  queryUC,
		validate: validator.New(),
	}
}

// Create godoc
// @Summary      Registrar movimiento de inventario
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/movimientos [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id requerido"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	input := toCreateMovementInput(in, userID)
	mov, err := h.createUC.Execute(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	mov, err := h.queryUC.GetMovement(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(mov))
}

// List godoc
// @Summary      Listar movimientos (más recientes primero)
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        kind          query  string  false  "Clase de movimiento"
// @Param        warehouse_id  query  string  false  "Bodega (origen o destino)"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	filter := repository.MovementFilter{
		Kind:        c.Query("kind"),
		WarehouseID: c.Query("warehouse_id"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	list, err := h.queryUC.ListMovements(filter)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *dto.ToMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

func toCreateMovementInput(in dto.CreateMovementRequest, userID string) movements.CreateMovementInput {
	lines := make([]entity.MovementLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.MovementLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	input := movements.CreateMovementInput{
		Kind:               in.Kind,
		SubKind:            in.SubKind,
		FromWarehouseID:    in.FromWarehouseID,
		ToWarehouseID:      in.ToWarehouseID,
		Lines:              lines,
		InvoiceRef:         in.InvoiceRef,
		FinancialReference: in.FinancialReference,
		Observations:       in.Observations,
		CreatedBy:          userID,
	}
	if in.Date != nil {
		input.Date = *in.Date
	}
	if in.Financial != nil {
		fin := movements.FinancialRecordInput{
			Amount:      in.Financial.Amount,
			Currency:    in.Financial.Currency,
			Counterpart: in.Financial.Counterpart,
			Concept:     in.Financial.Concept,
			InvoiceRef:  in.InvoiceRef,
		}
		if in.Financial.Date != nil {
			fin.Date = *in.Financial.Date
		} else if in.Date != nil {
			fin.Date = *in.Date
		}
		input.Financial = &fin
	}
	return input
}

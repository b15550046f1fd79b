package finanzas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/editorialarcadia/almacen-api/internal/application/movements"
	"github.com/editorialarcadia/almacen-api/internal/domain"
	"github.com/editorialarcadia/almacen-api/pkg/config"
)

var _ movements.FinancialLedger = (*Client)(nil)

// Client implementa FinancialLedger contra el servicio de finanzas de la
// editorial (JSON sobre HTTP). Usa net/http de la stdlib; no requiere
// librerías de terceros.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient construye el cliente de finanzas a partir de la configuración.
func NewClient(cfg config.FinanzasConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type createRecordRequest struct {
	Monto      string `json:"monto"`
	Moneda     string `json:"moneda"`
	Fecha      string `json:"fecha"` // YYYY-MM-DD
	Tercero    string `json:"tercero"`
	Concepto   string `json:"concepto"`
	FacturaRef string `json:"factura_ref,omitempty"`
}

type createRecordResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// CreateRecord crea el registro financiero y devuelve su ID opaco. Cualquier
// fallo (red, 4xx/5xx, respuesta sin ID) se envuelve en
// domain.ErrFinancialBridge: el movimiento no debe aplicarse sin registro.
func (c *Client) CreateRecord(ctx context.Context, in movements.FinancialRecordInput) (string, error) {
	payload := createRecordRequest{
		Monto:      in.Amount.String(),
		Moneda:     in.Currency,
		Fecha:      in.Date.Format("2006-01-02"),
		Tercero:    in.Counterpart,
		Concepto:   in.Concept,
		FacturaRef: in.InvoiceRef,
	}
	var resp createRecordResponse
	if err := c.do(ctx, http.MethodPost, "/api/registros", payload, &resp); err != nil {
		return "", fmt.Errorf("%w: crear registro: %v", domain.ErrFinancialBridge, err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("%w: el servicio no devolvió ID de registro", domain.ErrFinancialBridge)
	}
	return resp.ID, nil
}

// VoidRecord anula un registro previamente creado (compensación).
func (c *Client) VoidRecord(ctx context.Context, reference string) error {
	path := fmt.Sprintf("/api/registros/%s/anular", reference)
	if err := c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("%w: anular registro %s: %v", domain.ErrFinancialBridge, reference, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar petición: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("construir petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("llamar servicio de finanzas: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decodificar respuesta: %w", err)
		}
	}
	return nil
}

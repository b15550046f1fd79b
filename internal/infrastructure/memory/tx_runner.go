package memory

import (
	"context"

	"github.com/editorialarcadia/almacen-api/internal/application/movements"
	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
)

var _ movements.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el callback bajo el mutex del store, con snapshot previo y
// restauración ante error: misma garantía todo-o-nada que la transacción de
// PostgreSQL, con bloqueo pesimista global en lugar de por fila.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run serializa la transacción, ejecuta fn con repos atados y revierte el
// estado si fn devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sn := r.s.takeSnapshot()
	movRepo := &MovementRepo{s: r.s, inTx: true}
	stockRepo := &StockRepo{s: r.s, inTx: true}
	if err := fn(movRepo, stockRepo); err != nil {
		r.s.restore(sn)
		return err
	}
	return nil
}

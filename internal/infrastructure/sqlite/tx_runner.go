package sqlite

import (
	"context"
	"database/sql"

	"github.com/jhoicas/visitas-api/internal/application/usecase"
	"github.com/jhoicas/visitas-api/internal/application/visits"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
)

var _ visits.TxRunner = (*TxRunner)(nil)
var _ usecase.SeedTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner con la base abierta por Open.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn con repos de visitas atados a la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	visitRepo repository.VisitRepository,
	supplierRepo repository.SupplierRepository,
	storeRepo repository.StoreRepository,
) error) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return fn(NewVisitRepository(tx), NewSupplierRepository(tx), NewStoreRepository(tx))
	})
}

// RunDirectory ejecuta fn con repos de tiendas y usuarios atados a la transacción.
func (r *TxRunner) RunDirectory(ctx context.Context, fn func(
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return fn(NewStoreRepository(tx), NewUserRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapError("commit transaction", err)
	}
	return nil
}

// Package storage elige el adaptador de persistencia según STORAGE_DRIVER y
// entrega los repositorios ya conectados.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/visitas-api/internal/application/usecase"
	"github.com/jhoicas/visitas-api/internal/application/visits"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
	"github.com/jhoicas/visitas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/visitas-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/visitas-api/pkg/config"
)

// TxRunner une los runners transaccionales que implementan ambos adaptadores.
type TxRunner interface {
	visits.TxRunner
	usecase.SeedTxRunner
}

// Storage repositorios fuera de transacción más el runner transaccional.
type Storage struct {
	Driver    string
	TxRunner  TxRunner
	Stores    repository.StoreRepository
	Suppliers repository.SupplierRepository
	Users     repository.UserRepository
	Visits    repository.VisitRepository
	close     func()
}

// Open conecta con el driver configurado y deja el esquema al día.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Str("driver", cfg.Storage.Driver).Msg("almacenamiento listo")
		return &Storage{
			Driver:    cfg.Storage.Driver,
			TxRunner:  postgres.NewTxRunner(pool),
			Stores:    postgres.NewStoreRepository(pool),
			Suppliers: postgres.NewSupplierRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Visits:    postgres.NewVisitRepository(pool),
			close:     pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Storage.Driver).Str("path", cfg.Storage.SQLitePath).Msg("almacenamiento listo")
		return &Storage{
			Driver:    cfg.Storage.Driver,
			TxRunner:  sqlite.NewTxRunner(db),
			Stores:    sqlite.NewStoreRepository(db),
			Suppliers: sqlite.NewSupplierRepository(db),
			Users:     sqlite.NewUserRepository(db),
			Visits:    sqlite.NewVisitRepository(db),
			close:     func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento %q no soportado", cfg.Storage.Driver)
}

// Close libera el pool o la base abierta.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

package usecase

import (
	"context"

	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
)

// StoreUseCase consulta de tiendas.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// List lista todas las tiendas por nombre.
func (uc *StoreUseCase) List(ctx context.Context) ([]*entity.Store, error) {
	return uc.repo.List(ctx)
}

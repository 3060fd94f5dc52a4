package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/visitas-api/internal/application/usecase"
	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/infrastructure/sqlite"
)

var comercial = entity.Actor{UserID: 1, Role: entity.RoleComercial}

func newSupplierUC(t *testing.T) *usecase.SupplierUseCase {
	t.Helper()
	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return usecase.NewSupplierUseCase(sqlite.NewSupplierRepository(db))
}

func TestSupplierUpsert_MismoIDParaNombreNormalizado(t *testing.T) {
	uc := newSupplierUC(t)
	ctx := context.Background()

	a, err := uc.Upsert(ctx, comercial, "Acme")
	require.NoError(t, err)
	b, err := uc.Upsert(ctx, comercial, " acme ")
	require.NoError(t, err)
	c, err := uc.Upsert(ctx, comercial, "ACME")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].Name)
}

func TestSupplierUpsert_NombreVacio(t *testing.T) {
	uc := newSupplierUC(t)
	_, err := uc.Upsert(context.Background(), comercial, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplierUpsert_UsuarioTienda_Prohibido(t *testing.T) {
	uc := newSupplierUC(t)
	store := int64(1)
	_, err := uc.Upsert(context.Background(), entity.Actor{UserID: 2, Role: entity.RoleLoja, StoreID: &store}, "Acme")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

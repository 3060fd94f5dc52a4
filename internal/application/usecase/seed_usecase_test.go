package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/visitas-api/internal/application/usecase"
	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/infrastructure/sqlite"
)

func TestStoreEmail_QuitaAcentosYUsaPuntos(t *testing.T) {
	assert.Equal(t, "loja.jardim.atlantico@quitandaria.com", usecase.StoreEmail("JARDIM ATLÂNTICO", "quitandaria.com"))
	assert.Equal(t, "loja.hipodromo.cafeteria@x.com", usecase.StoreEmail("HIPODROMO  CAFETERIA", "x.com"))
}

func TestSeed_CargaTiendasYUsuarios(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	seed := usecase.NewSeedUseCase(sqlite.NewTxRunner(db), usecase.SeedConfig{
		DefaultPassword: "secret123",
		EmailDomain:     "quitandaria.com",
	}, zerolog.Nop())

	res, err := seed.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(usecase.DefaultStores), res.StoresCreated)
	assert.Equal(t, len(usecase.DefaultStores)+1, res.UsersCreated)
	assert.False(t, res.Skipped)

	users := sqlite.NewUserRepository(db)
	com, err := users.GetByEmail(ctx, "comercial@quitandaria.com")
	require.NoError(t, err)
	require.NotNil(t, com)
	assert.Equal(t, entity.RoleComercial, com.Role)
	assert.Nil(t, com.StoreID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(com.PasswordHash), []byte("secret123")))

	loja, err := users.GetByEmail(ctx, "loja.jardim.atlantico@quitandaria.com")
	require.NoError(t, err)
	require.NotNil(t, loja)
	assert.Equal(t, entity.RoleLoja, loja.Role)
	require.NotNil(t, loja.StoreID)

	store, err := sqlite.NewStoreRepository(db).GetByID(ctx, *loja.StoreID)
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, "JARDIM ATLÂNTICO", store.Name)
}

func TestSeed_SegundaEjecucionNoDuplica(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	seed := usecase.NewSeedUseCase(sqlite.NewTxRunner(db), usecase.SeedConfig{
		DefaultPassword: "secret123",
		EmailDomain:     "test.local",
		Stores:          []string{"FAROL", "BEIRA MAR"},
	}, zerolog.Nop())

	_, err = seed.Run(ctx)
	require.NoError(t, err)
	res, err := seed.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.StoresCreated)
	assert.Equal(t, 0, res.UsersCreated)
	assert.True(t, res.Skipped)

	n, err := sqlite.NewUserRepository(db).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	stores, err := sqlite.NewStoreRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 2)
}

func TestSeed_SinPassword_ErrorValidacion(t *testing.T) {
	seed := usecase.NewSeedUseCase(nil, usecase.SeedConfig{EmailDomain: "x.com"}, zerolog.Nop())
	_, err := seed.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

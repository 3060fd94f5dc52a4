package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
	"github.com/jhoicas/visitas-api/internal/domain/schedule"
	"github.com/jhoicas/visitas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/visitas-api/pkg/config"
)

type refs struct {
	storeID, supplierID, userID int64
	suffix                      string
}

// openTx abre una transacción contra DATABASE_URL que se descarta al terminar el test.
// Sin DATABASE_URL el test se omite.
func openTx(t *testing.T) (pgx.Tx, refs) {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	suffix := uuid.NewString()[:8]
	store := &entity.Store{Name: "FAROL " + suffix}
	require.NoError(t, postgres.NewStoreRepository(tx).Create(ctx, store))
	supplierID, err := postgres.NewSupplierRepository(tx).Upsert(ctx, "Acme "+suffix, "acme "+suffix)
	require.NoError(t, err)
	user := &entity.User{Email: "comercial." + suffix + "@test.local", Name: "Comercial", Role: entity.RoleComercial, PasswordHash: "x"}
	require.NoError(t, postgres.NewUserRepository(tx).Create(ctx, user))
	return tx, refs{storeID: store.ID, supplierID: supplierID, userID: user.ID, suffix: suffix}
}

func newVisit(t *testing.T, r refs, date string) *entity.Visit {
	t.Helper()
	d, err := schedule.ParseDate(date)
	require.NoError(t, err)
	return &entity.Visit{
		StoreID:    r.storeID,
		VisitDate:  d,
		Weekday:    schedule.WeekdayLabel(d),
		Kind:       entity.VisitKindVisit,
		Buyer:      "Maria",
		SupplierID: r.supplierID,
		Segment:    "BEBIDAS",
		Status:     entity.VisitStatusPending,
		CreatedBy:  r.userID,
		CreatedAt:  time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

// ─── Tiendas y proveedores ──────────────────────────────────────────────────

func TestStoreRepo_NombreDuplicado_NoAbortaTx(t *testing.T) {
	tx, r := openTx(t)
	ctx := context.Background()
	stores := postgres.NewStoreRepository(tx)

	err := stores.Create(ctx, &entity.Store{Name: "FAROL " + r.suffix})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// La transacción sigue usable después del duplicado.
	s, err := stores.GetByID(ctx, r.storeID)
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestSupplierRepo_UpsertDevuelveMismoID(t *testing.T) {
	tx, r := openTx(t)
	id, err := postgres.NewSupplierRepository(tx).Upsert(context.Background(), "ACME "+r.suffix, "acme "+r.suffix)
	require.NoError(t, err)
	assert.Equal(t, r.supplierID, id)
}

// ─── Usuarios ───────────────────────────────────────────────────────────────

func TestUserRepo_EmailUnicoSinDistinguirMayusculas(t *testing.T) {
	tx, r := openTx(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(tx)

	u, err := users.GetByEmail(ctx, "COMERCIAL."+r.suffix+"@TEST.LOCAL")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, r.userID, u.ID)

	err = users.Create(ctx, &entity.User{
		Email: "Comercial." + r.suffix + "@test.local", Name: "Otro", Role: entity.RoleComercial, PasswordHash: "x",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ─── Visitas ────────────────────────────────────────────────────────────────

func TestVisitRepo_CreateYGetForUpdate(t *testing.T) {
	tx, r := openTx(t)
	ctx := context.Background()
	repo := postgres.NewVisitRepository(tx)

	v := newVisit(t, r, "2024-01-08")
	require.NoError(t, repo.Create(ctx, v))
	require.NotZero(t, v.ID)

	got, err := repo.GetByIDForUpdate(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-01-08", schedule.FormatDate(got.VisitDate))
	assert.Equal(t, "Segunda-feira", got.Weekday)

	comment := "ok"
	require.NoError(t, got.Complete(r.userID, &comment, time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.UpdateLifecycle(ctx, got))

	vv, err := repo.GetView(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, vv)
	assert.Equal(t, entity.VisitStatusCompleted, vv.Status)
	assert.Equal(t, "Comercial", vv.CompletedByName)
	require.NotNil(t, vv.ManagerComment)
	assert.Equal(t, "ok", *vv.ManagerComment)
}

func TestVisitRepo_ListFiltrosYOrden(t *testing.T) {
	tx, r := openTx(t)
	ctx := context.Background()
	repo := postgres.NewVisitRepository(tx)
	for _, d := range []string{"2024-01-15", "2024-01-08", "2024-01-22"} {
		require.NoError(t, repo.Create(ctx, newVisit(t, r, d)))
	}

	all, err := repo.List(ctx, repository.VisitFilter{StoreID: &r.storeID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-01-08", schedule.FormatDate(all[0].VisitDate))
	assert.Equal(t, "2024-01-22", schedule.FormatDate(all[2].VisitDate))

	start, end := all[0].VisitDate, all[1].VisitDate
	ranged, err := repo.List(ctx, repository.VisitFilter{StoreID: &r.storeID, DateStart: &start, DateEnd: &end})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	pending, err := repo.List(ctx, repository.VisitFilter{
		StoreID:  &r.storeID,
		Statuses: []string{entity.VisitStatusPending, entity.VisitStatusNoShow},
	})
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	done, err := repo.List(ctx, repository.VisitFilter{StoreID: &r.storeID, Statuses: []string{entity.VisitStatusCompleted}})
	require.NoError(t, err)
	assert.Empty(t, done)

	exists, err := repo.ExistsByKey(ctx, repository.VisitKey{
		StoreID: r.storeID, VisitDate: start, Buyer: "Maria", SupplierID: r.supplierID, Segment: "BEBIDAS",
	})
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestVisitRepo_DeleteInexistente(t *testing.T) {
	tx, _ := openTx(t)
	err := postgres.NewVisitRepository(tx).Delete(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

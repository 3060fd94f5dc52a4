package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/visitas-api/internal/application/auth"
	"github.com/jhoicas/visitas-api/internal/application/dto"
	"github.com/jhoicas/visitas-api/internal/application/usecase"
	"github.com/jhoicas/visitas-api/internal/application/visits"
	"github.com/jhoicas/visitas-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/visitas-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: API completa sobre SQLite en memoria
// ──────────────────────────────────────────────────────────────────────────────

const seedPassword = "secret123"

func zerologNop() zerolog.Logger { return zerolog.Nop() }

func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	txRunner := sqlite.NewTxRunner(db)
	_, err = usecase.NewSeedUseCase(txRunner, usecase.SeedConfig{
		DefaultPassword: seedPassword,
		EmailDomain:     "test.local",
		Stores:          []string{"HIPODROMO", "RIO DOCE"},
	}, zerologNop()).Run(ctx)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerologNop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(sqlite.NewUserRepository(db), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		StoreUC:    usecase.NewStoreUseCase(sqlite.NewStoreRepository(db)),
		SupplierUC: usecase.NewSupplierUseCase(sqlite.NewSupplierRepository(db)),
		VisitsUC:   visits.NewUseCase(txRunner, sqlite.NewVisitRepository(db), visits.Config{}, zerologNop()),
		JWTSecret:  testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App, email string) dto.LoginResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: seedPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.LoginResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	app := buildAPI(t)
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "comercial@test.local", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@test.local", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVisitas_FlujoCompleto(t *testing.T) {
	app := buildAPI(t)
	com := login(t, app, "comercial@test.local")
	loja := login(t, app, "loja.hipodromo@test.local")
	require.NotNil(t, loja.User.StoreID)
	store := *loja.User.StoreID

	resp := call(t, app, http.MethodGet, "/api/stores", com.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.StoreResponse](t, resp), 2)

	resp = call(t, app, http.MethodPost, "/api/visits", com.Token, dto.ScheduleVisitRequest{
		StoreIDs:     []int64{store},
		Date:         "2024-01-08",
		Buyer:        "Maria",
		Supplier:     "Acme",
		Segment:      "BEBIDAS",
		RepeatWeekly: true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ScheduleVisitResponse](t, resp)
	require.Len(t, created.IDs, 4)

	resp = call(t, app, http.MethodGet, "/api/visits?from=2024-01-08&to=2024-01-15", loja.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.VisitResponse](t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-01-08", list[0].Date)
	assert.Equal(t, "Segunda-feira", list[0].Weekday)
	assert.Equal(t, "HIPODROMO", list[0].StoreName)

	id := created.IDs[0]
	path := "/api/visits/" + itoa(id)
	resp = call(t, app, http.MethodPost, path+"/complete", loja.Token, dto.CloseVisitRequest{Comment: strPtr("veio")})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodPost, path+"/complete", loja.Token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodGet, "/api/visits?status=Conclu%C3%ADda", com.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	done := decode[[]dto.VisitResponse](t, resp)
	require.Len(t, done, 1)
	assert.Equal(t, id, done[0].ID)
	require.NotNil(t, done[0].ManagerComment)
	assert.Equal(t, "veio", *done[0].ManagerComment)

	resp = call(t, app, http.MethodPost, path+"/reopen", com.Token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, path, loja.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decode[dto.VisitResponse](t, resp)
	assert.Equal(t, "Pendente", v.Status)
	assert.Nil(t, v.CompletedAt)
	assert.NotNil(t, v.ReopenedAt)
}

func TestVisitas_UsuarioTiendaNoPuedeProgramar(t *testing.T) {
	app := buildAPI(t)
	loja := login(t, app, "loja.hipodromo@test.local")

	resp := call(t, app, http.MethodPost, "/api/visits", loja.Token, dto.ScheduleVisitRequest{
		StoreIDs: []int64{*loja.User.StoreID},
		Date:     "2024-01-08",
		Supplier: "Acme",
		Segment:  "BEBIDAS",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestVisitas_UsuarioDeOtraTienda_Retorna403(t *testing.T) {
	app := buildAPI(t)
	com := login(t, app, "comercial@test.local")
	hipodromo := login(t, app, "loja.hipodromo@test.local")
	rioDoce := login(t, app, "loja.rio.doce@test.local")

	resp := call(t, app, http.MethodPost, "/api/visits", com.Token, dto.ScheduleVisitRequest{
		StoreIDs: []int64{*hipodromo.User.StoreID},
		Date:     "2024-01-08",
		Supplier: "Acme",
		Segment:  "BEBIDAS",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[dto.ScheduleVisitResponse](t, resp).IDs[0]

	resp = call(t, app, http.MethodPost, "/api/visits/"+itoa(id)+"/no-show", rioDoce.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/visits", rioDoce.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.VisitResponse](t, resp))
}

func TestVisitas_ValidacionYNotFound(t *testing.T) {
	app := buildAPI(t)
	com := login(t, app, "comercial@test.local")

	resp := call(t, app, http.MethodPost, "/api/visits", com.Token, dto.ScheduleVisitRequest{
		Date:     "2024-01-08",
		Supplier: "Acme",
		Segment:  "BEBIDAS",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodPost, "/api/visits", com.Token, dto.ScheduleVisitRequest{
		StoreIDs: []int64{1},
		Date:     "08/01/2024",
		Supplier: "Acme",
		Segment:  "BEBIDAS",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/visits/999", com.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, "/api/visits/abc", com.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/visits?from=ayer", com.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProveedores_UpsertIdempotente(t *testing.T) {
	app := buildAPI(t)
	com := login(t, app, "comercial@test.local")

	resp := call(t, app, http.MethodPost, "/api/suppliers", com.Token, dto.SupplierRequest{Name: "Acme"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[dto.IDResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/suppliers", com.Token, dto.SupplierRequest{Name: " acme "})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, first.ID, decode[dto.IDResponse](t, resp).ID)

	resp = call(t, app, http.MethodGet, "/api/suppliers", com.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.SupplierResponse](t, resp), 1)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func strPtr(s string) *string { return &s }

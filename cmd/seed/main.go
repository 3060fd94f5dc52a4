// seed carga las tiendas de la red, el usuario comercial y un usuario por tienda.
//
// Uso: go run ./cmd/seed
// Usa la misma configuración que la API (STORAGE_DRIVER, DATABASE_URL, SQLITE_PATH,
// SEED_DEFAULT_PASSWORD, SEED_EMAIL_DOMAIN). Si ya hay usuarios solo agrega las tiendas que falten.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/visitas-api/internal/application/usecase"
	"github.com/jhoicas/visitas-api/internal/infrastructure/storage"
	"github.com/jhoicas/visitas-api/pkg/config"
	"github.com/jhoicas/visitas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx := context.Background()
	st, err := storage.Open(ctx, cfg, log.WithComponent("storage"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacenamiento: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	res, err := usecase.NewSeedUseCase(st.TxRunner, usecase.SeedConfig{
		DefaultPassword: cfg.Seed.DefaultPassword,
		EmailDomain:     cfg.Seed.EmailDomain,
	}, log.Zerolog()).Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed: %v\n", err)
		st.Close()
		os.Exit(1)
	}
	if res.Skipped {
		fmt.Printf("Tiendas nuevas: %d. Ya existían usuarios, no se crearon.\n", res.StoresCreated)
		return
	}
	fmt.Printf("Tiendas nuevas: %d. Usuarios creados: %d (comercial@%s y loja.<tienda>@%s).\n",
		res.StoresCreated, res.UsersCreated, cfg.Seed.EmailDomain, cfg.Seed.EmailDomain)
}

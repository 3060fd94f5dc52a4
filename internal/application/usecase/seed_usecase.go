package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/visitas-api/internal/domain"
	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
)

// SeedTxRunner ejecuta la carga inicial de tiendas y usuarios en una transacción.
type SeedTxRunner interface {
	RunDirectory(ctx context.Context, fn func(
		storeRepo repository.StoreRepository,
		userRepo repository.UserRepository,
	) error) error
}

// DefaultStores tiendas de la red cargadas en el primer arranque.
var DefaultStores = []string{
	"HIPODROMO", "RIO DOCE", "CARUARU", "HIPODROMO CAFETERIA", "JANGA CAFETERIA",
	"ESPINHEIRO", "AFLITOS", "PONTA VERDE", "JATIUCA", "FAROL", "BEIRA MAR",
	"JARDIM ATLÂNTICO", "CASA CAIADA VERDAO", "JANGA VERDAO", "BAIRRO NOVO VERDAO",
}

// SeedConfig parámetros de la carga inicial.
type SeedConfig struct {
	DefaultPassword string
	EmailDomain     string
	Stores          []string // vacío = DefaultStores
}

// SeedResult resumen de lo cargado.
type SeedResult struct {
	StoresCreated int
	UsersCreated  int
	Skipped       bool // ya había usuarios
}

// SeedUseCase carga tiendas, el usuario comercial y un usuario por tienda.
type SeedUseCase struct {
	txRunner SeedTxRunner
	cfg      SeedConfig
	log      zerolog.Logger
}

// NewSeedUseCase construye el caso de uso.
func NewSeedUseCase(txRunner SeedTxRunner, cfg SeedConfig, log zerolog.Logger) *SeedUseCase {
	if len(cfg.Stores) == 0 {
		cfg.Stores = DefaultStores
	}
	return &SeedUseCase{txRunner: txRunner, cfg: cfg, log: log.With().Str("component", "seed").Logger()}
}

// Run crea las tiendas que falten y, si no existe ningún usuario, los usuarios iniciales.
// Un nombre de tienda repetido se ignora. Es seguro ejecutarlo en cada arranque.
func (uc *SeedUseCase) Run(ctx context.Context) (*SeedResult, error) {
	if uc.cfg.DefaultPassword == "" || uc.cfg.EmailDomain == "" {
		return nil, fmt.Errorf("%w: seed requiere contraseña y dominio de email", domain.ErrInvalidInput)
	}
	res := &SeedResult{}
	err := uc.txRunner.RunDirectory(ctx, func(storeRepo repository.StoreRepository, userRepo repository.UserRepository) error {
		for _, name := range uc.cfg.Stores {
			err := storeRepo.Create(ctx, &entity.Store{Name: name})
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			if err != nil {
				return err
			}
			res.StoresCreated++
		}

		n, err := userRepo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			res.Skipped = true
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(uc.cfg.DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		users := []*entity.User{{
			Email:        "comercial@" + uc.cfg.EmailDomain,
			Name:         "Comercial",
			Role:         entity.RoleComercial,
			PasswordHash: string(hash),
		}}
		stores, err := storeRepo.List(ctx)
		if err != nil {
			return err
		}
		for _, s := range stores {
			storeID := s.ID
			users = append(users, &entity.User{
				Email:        StoreEmail(s.Name, uc.cfg.EmailDomain),
				Name:         s.Name,
				Role:         entity.RoleLoja,
				PasswordHash: string(hash),
				StoreID:      &storeID,
			})
		}
		for _, u := range users {
			if err := userRepo.Create(ctx, u); err != nil {
				return fmt.Errorf("usuario %s: %w", u.Email, err)
			}
			res.UsersCreated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Int("stores_created", res.StoresCreated).
		Int("users_created", res.UsersCreated).
		Bool("skipped_users", res.Skipped).
		Msg("carga inicial completada")
	return res, nil
}

// StoreEmail arma el email del usuario de una tienda: "JARDIM ATLÂNTICO" -> loja.jardim.atlantico@dominio.
func StoreEmail(storeName, domainName string) string {
	return "loja." + storeSlug(storeName) + "@" + domainName
}

func storeSlug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	return strings.Join(strings.Fields(strings.ToLower(plain)), ".")
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/visitas-api/internal/domain/entity"
	"github.com/jhoicas/visitas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre SQLite.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Acepta *sql.DB o *sql.Tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO users (email, name, role, password_hash, store_id) VALUES (?, ?, ?, ?, ?)`,
		user.Email, user.Name, user.Role, user.PasswordHash, user.StoreID,
	)
	if err != nil {
		return mapError("insert user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return mapError("insert user", err)
	}
	user.ID = id
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, `SELECT id, email, name, role, password_hash, store_id FROM users WHERE id = ?`, id)
}

// GetByEmail busca sin distinguir mayúsculas (columna COLLATE NOCASE).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT id, email, name, role, password_hash, store_id FROM users WHERE email = ?`, email)
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, mapError("count users", err)
	}
	return n, nil
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var (
		u       entity.User
		storeID sql.NullInt64
	)
	err := r.q.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &storeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get user", err)
	}
	u.StoreID = nullInt64(storeID)
	return &u, nil
}

package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/bgugger/atelier/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	const q = `
		INSERT INTO users (name, email, is_admin, password_hash, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := repo.db.QueryRowContext(ctx, q,
		usr.Name, usr.Email, usr.IsAdmin, usr.PasswordHash, usr.CreatedAt, usr.LastLogin,
	).Scan(&usr.ID)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `SELECT * FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	} else if err != nil {
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `SELECT * FROM users WHERE email = $1`, email)
	if err == sql.ErrNoRows {
		return user.User{}, user.ErrNotFound
	} else if err != nil {
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	users := make([]user.User, 0)
	err := repo.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	const q = `
		UPDATE users
		SET name = $2, email = $3, is_admin = $4, password_hash = $5, last_login = $6
		WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, q,
		usr.ID, usr.Name, usr.Email, usr.IsAdmin, usr.PasswordHash, usr.LastLogin,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
)

const mysqlDuplicateEntry = 1062

type UserRepository struct {
	db *sqlx.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID           uint64       `db:"id"`
	Username     string       `db:"username"`
	PasswordHash string       `db:"password_hash"`
	CreatedAt    sql.NullTime `db:"created_at"`
}

func (r *UserRepository) CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		username, passwordHash)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return domain.User{}, domain.ErrUsernameTaken
		}
		return domain.User{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	return r.UserByID(ctx, uint64(id))
}

func (r *UserRepository) UserByUsername(ctx context.Context, username string) (domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?",
		username)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return mapUserRow(row), nil
}

func (r *UserRepository) UserByID(ctx context.Context, id uint64) (domain.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row,
		"SELECT id, username, password_hash, created_at FROM users WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return mapUserRow(row), nil
}

func mapUserRow(row userRow) domain.User {
	user := domain.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
	}
	if row.CreatedAt.Valid {
		user.CreatedAt = row.CreatedAt.Time
	}
	return user
}

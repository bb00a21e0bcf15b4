package repository

import (
	"context"
	"errors"

	"vehicle-rentals/internal/infra"
	"vehicle-rentals/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, name, email, passwordHash, role string) (uuid.UUID, error) {
	const q = `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, q, name, email, passwordHash, role).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return uuid.Nil, infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}

	return id, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	const q = `UPDATE users SET last_login_at = now(), updated_at = now() WHERE id = $1`

	if _, err := tx.Exec(ctx, q, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
	"github.com/Alejoxd70/sactpaper-stationery/internal/domain/auth"
)

const usersTable = "users"

// AuthRepo implements auth.Repository.
type AuthRepo struct {
	txm     *TxManager
	builder squirrel.StatementBuilderType
}

// NewAuthRepo creates a user repository.
func NewAuthRepo(txm *TxManager) *AuthRepo {
	return &AuthRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var _ auth.Repository = (*AuthRepo)(nil)

var userColumns = []string{
	"id", "email", "name", "password_hash", "role", "active", "created_at",
}

// Create inserts a user.
func (r *AuthRepo) Create(ctx context.Context, user *auth.User) error {
	q := r.builder.Insert(usersTable).
		Columns(userColumns...).
		Values(
			user.ID, user.Email, user.Name, user.PasswordHash,
			user.Role, user.Active, user.CreatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail returns a user by email.
func (r *AuthRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.get(ctx, squirrel.Eq{"email": email}, email)
}

// GetByID returns a user by ID.
func (r *AuthRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.get(ctx, squirrel.Eq{"id": userID}, userID)
}

func (r *AuthRepo) get(ctx context.Context, where squirrel.Eq, key any) (*auth.User, error) {
	q := r.builder.Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var user auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &user, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", key)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

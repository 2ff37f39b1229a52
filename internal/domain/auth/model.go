// Package auth provides the minimal identity layer: users, password
// verification and JWT issuance. Movements and invoices are stamped with
// the authenticated user id.
package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/internal/core/id"
)

// Roles.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User is an operator of the back office.
type User struct {
	ID           id.ID     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// NewUser creates a user with a bcrypt-hashed password.
func NewUser(email, name, password, role string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &User{
		ID:           id.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// CheckPassword verifies a candidate password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Repository is the persistence contract for users.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID id.ID) (*User, error)
}

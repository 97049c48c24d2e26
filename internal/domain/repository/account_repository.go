// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"guardianmed/internal/domain/entity"
	"guardianmed/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameTaken is returned when a create collides on the username unique key.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when a create collides on the email unique key.
	ErrEmailTaken = errors.New("email already in use")
)

// AccountRepository defines the persistence operations the authentication flow needs.
// The application layer will depend on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByUsername retrieves an account with its roles and pending challenge.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// ExistsByUsername reports whether an account already uses username.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether an account already uses email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new account and its role references. The store assigns the ID.
	Create(ctx context.Context, account *entity.Account) error

	// SetPendingCode replaces the pending challenge of one account in a single-row write.
	SetPendingCode(ctx context.Context, accountID uuid.UUID, pending entity.PendingCode) error

	// ClearPendingCode clears the pending challenge only if it still holds expectedCode.
	// It reports false when another request already consumed or replaced it.
	ClearPendingCode(ctx context.Context, accountID uuid.UUID, expectedCode string) (bool, error)
}

package usecase

import (
	"context"
	"time"

	"guardianmed/internal/domain/entity"
)

// OTCUsecase generates, binds and checks one-time login codes.
type OTCUsecase interface {
	// Generate returns a fresh six-digit code.
	Generate() (string, error)

	// Bind replaces the pending challenge of account with code, valid for the
	// configured window from now, and persists it.
	Bind(ctx context.Context, account *entity.Account, code string, now time.Time) error

	// Validate checks presented against the pending challenge without side effects.
	// It returns nil only on an exact match strictly before expiry.
	Validate(account *entity.Account, presented string, now time.Time) error

	// Consume clears the pending challenge if it still holds code.
	// It reports false when the challenge was already consumed or replaced.
	Consume(ctx context.Context, account *entity.Account, code string) (bool, error)
}

package entity

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// CodeTTL is how long a bound one-time code stays valid.
const CodeTTL = 2 * time.Minute

var (
	// ErrCodeNotPending means the account has no outstanding challenge.
	ErrCodeNotPending = errors.New("no code pending")
	// ErrCodeMismatch means the presented code differs from the bound one.
	ErrCodeMismatch = errors.New("code mismatch")
	// ErrCodeExpired means the bound code is at or past its expiry.
	ErrCodeExpired = errors.New("code expired")
)

// PendingCode is an outstanding login challenge. Code and expiry live in one
// value so they are always set and cleared together.
type PendingCode struct {
	Code      string
	ExpiresAt time.Time
}

// Account represents a principal able to authenticate.
type Account struct {
	ID         uuid.UUID
	Username   string
	Email      string
	SecretHash string
	Roles      Roles
	Pending    *PendingCode
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPendingCode returns a challenge for code, valid until now+ttl in UTC.
func NewPendingCode(code string, now time.Time, ttl time.Duration) PendingCode {
	return PendingCode{
		Code:      code,
		ExpiresAt: now.Add(ttl).UTC(),
	}
}

// BindPendingCode replaces any outstanding challenge with pending.
func (a *Account) BindPendingCode(pending PendingCode) {
	a.Pending = &pending
}

// ClearPendingCode removes the outstanding challenge.
func (a *Account) ClearPendingCode() {
	a.Pending = nil
}

// HasPendingCode reports whether a challenge is outstanding.
func (a *Account) HasPendingCode() bool {
	return a.Pending != nil && a.Pending.Code != "" && !a.Pending.ExpiresAt.IsZero()
}

// CheckPendingCode checks presented against the outstanding challenge without
// mutating the account. It returns nil only when the code matches exactly and
// now is strictly before the expiry.
func (a *Account) CheckPendingCode(presented string, now time.Time) error {
	if !a.HasPendingCode() {
		return ErrCodeNotPending
	}

	if subtle.ConstantTimeCompare([]byte(presented), []byte(a.Pending.Code)) != 1 {
		return ErrCodeMismatch
	}

	if !now.Before(a.Pending.ExpiresAt) {
		return ErrCodeExpired
	}

	return nil
}

// RoleNames returns the names of the account's roles in attachment order.
func (a *Account) RoleNames() []string {
	return a.Roles.Names()
}

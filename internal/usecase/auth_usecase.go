// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "context"

// --- Input DTOs ---

// BeginLoginInput defines the credentials presented at the first login step.
type BeginLoginInput struct {
	Username string
	Password string
}

// VerifyLoginInput defines the data presented at the second login step.
// The password is demanded again together with the one-time code.
type VerifyLoginInput struct {
	Username string
	Code     string
	Password string
}

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// --- Output DTOs ---

// BeginLoginOutput acknowledges that a code was dispatched.
// It never carries the code or the account identifier.
type BeginLoginOutput struct {
	OTPSent bool
	Message string
}

// VerifyLoginOutput returns the access token and the public attributes of the account.
type VerifyLoginOutput struct {
	Token    string
	Type     string
	ID       string
	Username string
	Email    string
	Roles    []string
	Message  string
}

// RegisterOutput summarizes the roles attached to the new account.
type RegisterOutput struct {
	Message string
	Roles   []string
}

// AuthUsecase defines the two-step login and registration operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	BeginLogin(ctx context.Context, input *BeginLoginInput) (*BeginLoginOutput, error)
	VerifyLogin(ctx context.Context, input *VerifyLoginInput) (*VerifyLoginOutput, error)
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
}

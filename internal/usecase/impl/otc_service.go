// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"guardianmed/config"
	deliverycontext "guardianmed/internal/delivery/context"
	"guardianmed/internal/domain/entity"
	"guardianmed/internal/domain/repository"
	"guardianmed/internal/domain/service"
	"guardianmed/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// otcService implements the OTCUsecase interface.
type otcService struct {
	generator   service.CodeGenerator
	accountRepo repository.AccountRepository
	ttl         time.Duration
	logger      *slog.Logger
}

// OTCServiceParams holds dependencies for OTCService, injected by Fx.
type OTCServiceParams struct {
	fx.In

	Generator   service.CodeGenerator
	AccountRepo repository.AccountRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewOTCService is the constructor for otcService.
func NewOTCService(params OTCServiceParams) usecase.OTCUsecase {
	ttl := entity.CodeTTL
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.CodeTTL > 0 {
		ttl = params.Config.Auth.CodeTTL
	}

	return &otcService{
		generator:   params.Generator,
		accountRepo: params.AccountRepo,
		ttl:         ttl,
		logger:      params.Logger,
	}
}

func (srv *otcService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Generate returns a fresh six-digit code.
func (srv *otcService) Generate() (string, error) {
	code, err := srv.generator.Generate()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate one-time code")
	}

	return code, nil
}

// Bind persists the new challenge first and only then updates the in-memory account,
// so a failed write leaves account unchanged.
func (srv *otcService) Bind(ctx context.Context, account *entity.Account, code string, now time.Time) error {
	pending := entity.NewPendingCode(code, now, srv.ttl)

	if err := srv.accountRepo.SetPendingCode(ctx, account.ID, pending); err != nil {
		return errors.Wrap(err, "failed to persist pending code")
	}

	account.BindPendingCode(pending)
	srv.log(ctx).Debug("Pending code bound", slog.Any("accountID", account.ID), slog.Time("expiresAt", pending.ExpiresAt))

	return nil
}

// Validate checks presented against the pending challenge of account.
func (srv *otcService) Validate(account *entity.Account, presented string, now time.Time) error {
	return account.CheckPendingCode(presented, now)
}

// Consume clears the challenge with a compare-and-set on code.
func (srv *otcService) Consume(ctx context.Context, account *entity.Account, code string) (bool, error) {
	cleared, err := srv.accountRepo.ClearPendingCode(ctx, account.ID, code)
	if err != nil {
		return false, errors.Wrap(err, "failed to clear pending code")
	}

	if cleared {
		account.ClearPendingCode()
	}

	return cleared, nil
}

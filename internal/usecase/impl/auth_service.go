package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"guardianmed/config"
	deliverycontext "guardianmed/internal/delivery/context"
	"guardianmed/internal/domain/constants"
	"guardianmed/internal/domain/entity"
	domainerrors "guardianmed/internal/domain/errors"
	"guardianmed/internal/domain/repository"
	"guardianmed/internal/domain/service"
	"guardianmed/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultStoreTimeout  = 3 * time.Second
	defaultNotifyTimeout = 10 * time.Second
	defaultMailSubject   = "Your One-Time Password (OTP) for Login"

	// Hashed once at construction; unknown usernames are checked against it.
	timingPassword = "guardianmed-unknown-account"

	msgOTPSent          = "OTP sent to your email for verification"
	msgSignedInAs       = "Successfully signed in as "
	msgRegisteredPrefix = "Registered successfully with the following role(s): "
)

// Internal failure reasons. They reach logs and audit events, never responses.
const (
	reasonAccountNotFound   = "account_not_found"
	reasonPasswordMismatch  = "password_mismatch"
	reasonCodeNotPending    = "code_not_pending"
	reasonCodeMismatch      = "code_mismatch"
	reasonCodeExpired       = "code_expired"
	reasonChallengeConsumed = "challenge_consumed"
	reasonLockUnavailable   = "lock_unavailable"
	reasonStoreUnavailable  = "store_unavailable"
	reasonCodeGeneration    = "code_generation_failed"
	reasonNotifyFailed      = "notify_failed"
	reasonTokenIssueFailed  = "token_issue_failed"
	reasonHashFailed        = "hash_failed"
	reasonUnknownRole       = "unknown_role"
	reasonRoleMissing       = "role_reference_missing"
	reasonDuplicateUsername = "duplicate_username"
	reasonDuplicateEmail    = "duplicate_email"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager     repository.TransactionManager
	accountRepo   repository.AccountRepository
	otc           usecase.OTCUsecase
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	notifier      service.Notifier
	locker        service.AccountLocker
	audit         service.AuditPublisher
	storeTimeout  time.Duration
	notifyTimeout time.Duration
	codeTTL       time.Duration
	mailSubject   string
	dummyHash     string
	now           func() time.Time
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	OTC          usecase.OTCUsecase
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Notifier     service.Notifier
	Locker       service.AccountLocker
	Audit        service.AuditPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) (usecase.AuthUsecase, error) {
	dummyHash, err := params.Hasher.Hash(timingPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare timing hash")
	}

	srv := &authService{
		txManager:     params.TxManager,
		accountRepo:   params.AccountRepo,
		otc:           params.OTC,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		notifier:      params.Notifier,
		locker:        params.Locker,
		audit:         params.Audit,
		storeTimeout:  defaultStoreTimeout,
		notifyTimeout: defaultNotifyTimeout,
		codeTTL:       entity.CodeTTL,
		mailSubject:   defaultMailSubject,
		dummyHash:     dummyHash,
		now:           time.Now,
		logger:        params.Logger,
	}

	if cfg := params.Config; cfg != nil {
		if cfg.Auth != nil {
			if cfg.Auth.StoreTimeout > 0 {
				srv.storeTimeout = cfg.Auth.StoreTimeout
			}
			if cfg.Auth.NotifyTimeout > 0 {
				srv.notifyTimeout = cfg.Auth.NotifyTimeout
			}
			if cfg.Auth.CodeTTL > 0 {
				srv.codeTTL = cfg.Auth.CodeTTL
			}
		}
		if cfg.Mail != nil && cfg.Mail.Subject != "" {
			srv.mailSubject = cfg.Mail.Subject
		}
	}

	return srv, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// BeginLogin verifies the password and dispatches a fresh one-time code to the account's email.
func (srv *authService) BeginLogin(ctx context.Context, input *usecase.BeginLoginInput) (*usecase.BeginLoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	// Held until the code is sent so the last stored code is also the last one delivered.
	lockCtx, cancelLock := context.WithTimeout(ctx, srv.storeTimeout+srv.notifyTimeout)
	unlock, err := srv.locker.Lock(lockCtx, input.Username)
	cancelLock()
	if err != nil {
		return nil, srv.fail(ctx, constants.AuditActionLoginBegin, input.Username, nil, reasonLockUnavailable, err,
			domainerrors.ErrTransientFailure)
	}
	defer unlock()

	account, err := srv.findAccount(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			// Pay for a hash check so an unknown username costs the same as a wrong password.
			srv.hasher.Check(input.Password, srv.dummyHash)

			return nil, srv.fail(ctx, constants.AuditActionLoginBegin, input.Username, nil, reasonAccountNotFound, nil,
				domainerrors.ErrInvalidCredentials)
		}

		return nil, srv.fail(ctx, constants.AuditActionLoginBegin, input.Username, nil, reasonStoreUnavailable, err,
			domainerrors.ErrTransientFailure)
	}

	if !srv.hasher.Check(input.Password, account.SecretHash) {
		return nil, srv.fail(ctx, constants.AuditActionLoginBegin, input.Username, account, reasonPasswordMismatch, nil,
			domainerrors.ErrInvalidCredentials)
	}

	code, err := srv.otc.Generate()
	if err != nil {
		return nil, srv.fail(ctx, constants.AuditActionLoginBegin, input.Username, account, reasonCodeGeneration, err,
			domainerrors.ErrTransientFailure)
	}

	storeCtx, cancelStore := context.WithTimeout(ctx, srv.storeTimeout)
	err = srv.otc.Bind(storeCtx, account, code, srv.now())
	cancelStore()
	if err != nil {
		return nil, srv.fail(ctx, constants.AuditActionLoginBegin, input.Username, account, reasonStoreUnavailable, err,
			domainerrors.ErrTransientFailure)
	}

	if err := srv.sendCode(ctx, account, code); err != nil {
		srv.withdrawCode(ctx, account, code)

		return nil, srv.fail(ctx, constants.AuditActionLoginBegin, input.Username, account, reasonNotifyFailed, err,
			domainerrors.ErrTransientFailure)
	}

	srv.succeed(ctx, constants.AuditActionLoginBegin, account)
	srv.log(ctx).Debug("One-time code dispatched", slog.Any("accountID", account.ID))

	return &usecase.BeginLoginOutput{
		OTPSent: true,
		Message: msgOTPSent,
	}, nil
}

// VerifyLogin checks the code and the password together and issues an access token.
// A failed attempt leaves the pending code in place.
func (srv *authService) VerifyLogin(ctx context.Context, input *usecase.VerifyLoginInput) (*usecase.VerifyLoginOutput, error) {
	srv.log(ctx).Debug("Starting login verification", slog.String("username", input.Username))

	account, err := srv.findAccount(ctx, input.Username)
	if err != nil {
		// No hash check: a wrong code for a known account also fails before the password is checked.
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, srv.fail(ctx, constants.AuditActionLoginVerify, input.Username, nil, reasonAccountNotFound, nil,
				domainerrors.ErrInvalidChallenge)
		}

		return nil, srv.fail(ctx, constants.AuditActionLoginVerify, input.Username, nil, reasonStoreUnavailable, err,
			domainerrors.ErrTransientFailure)
	}

	if err := srv.otc.Validate(account, input.Code, srv.now()); err != nil {
		return nil, srv.fail(ctx, constants.AuditActionLoginVerify, input.Username, account, codeFailureReason(err), nil,
			domainerrors.ErrInvalidChallenge)
	}

	if !srv.hasher.Check(input.Password, account.SecretHash) {
		return nil, srv.fail(ctx, constants.AuditActionLoginVerify, input.Username, account, reasonPasswordMismatch, nil,
			domainerrors.ErrInvalidChallenge)
	}

	roleNames := account.RoleNames()
	token, err := srv.tokenService.Issue(service.TokenIdentity{
		AccountID: account.ID,
		Username:  account.Username,
	}, roleNames)
	if err != nil {
		return nil, srv.fail(ctx, constants.AuditActionLoginVerify, input.Username, account, reasonTokenIssueFailed, err,
			domainerrors.ErrTransientFailure)
	}

	storeCtx, cancelStore := context.WithTimeout(ctx, srv.storeTimeout)
	cleared, err := srv.otc.Consume(storeCtx, account, input.Code)
	cancelStore()
	if err != nil {
		return nil, srv.fail(ctx, constants.AuditActionLoginVerify, input.Username, account, reasonStoreUnavailable, err,
			domainerrors.ErrTransientFailure)
	}
	if !cleared {
		return nil, srv.fail(ctx, constants.AuditActionLoginVerify, input.Username, account, reasonChallengeConsumed, nil,
			domainerrors.ErrInvalidChallenge)
	}

	srv.succeed(ctx, constants.AuditActionLoginVerify, account)
	srv.log(ctx).Debug("Login verified", slog.Any("accountID", account.ID))

	return &usecase.VerifyLoginOutput{
		Token:    token,
		Type:     constants.TokenTypeBearer,
		ID:       account.ID.String(),
		Username: account.Username,
		Email:    account.Email,
		Roles:    roleNames,
		Message:  msgSignedInAs + account.Username,
	}, nil
}

// Register creates an account with the resolved role set. Nothing is persisted on failure.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Debug("Starting registration", slog.String("username", input.Username), slog.Any("roles", input.Roles))

	if reason, appErr, err := srv.checkAvailability(ctx, input.Username, input.Email); appErr != nil {
		return nil, srv.fail(ctx, constants.AuditActionRegister, input.Username, nil, reason, err, appErr)
	}

	roleNames, err := entity.ResolveRoleNames(input.Roles)
	if err != nil {
		return nil, srv.fail(ctx, constants.AuditActionRegister, input.Username, nil, reasonUnknownRole, err,
			domainerrors.ErrInvalidRole)
	}

	secretHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, srv.fail(ctx, constants.AuditActionRegister, input.Username, nil, reasonHashFailed, err,
			domainerrors.ErrTransientFailure)
	}

	account := &entity.Account{
		Username:   input.Username,
		Email:      input.Email,
		SecretHash: secretHash,
	}

	storeCtx, cancelStore := context.WithTimeout(ctx, srv.storeTimeout)
	defer cancelStore()

	err = srv.txManager.Execute(storeCtx, func(repoFactory repository.RepositoryFactory) error {
		roles, err := resolveRoles(storeCtx, repoFactory.RoleRepo(), roleNames)
		if err != nil {
			return err
		}
		account.Roles = roles

		return repoFactory.AccountRepo().Create(storeCtx, account)
	})
	if err != nil {
		reason, appErr := registrationFailure(err)

		return nil, srv.fail(ctx, constants.AuditActionRegister, input.Username, nil, reason, err, appErr)
	}

	names := account.RoleNames()
	srv.succeed(ctx, constants.AuditActionRegister, account)
	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", account.ID), slog.Any("roles", names))

	return &usecase.RegisterOutput{
		Message: msgRegisteredPrefix + strings.Join(names, ", "),
		Roles:   names,
	}, nil
}

func (srv *authService) findAccount(ctx context.Context, username string) (*entity.Account, error) {
	storeCtx, cancel := context.WithTimeout(ctx, srv.storeTimeout)
	defer cancel()

	account, err := srv.accountRepo.FindByUsername(storeCtx, username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account by username")
	}

	return account, nil
}

func (srv *authService) checkAvailability(ctx context.Context, username, email string) (string, *domainerrors.BaseError, error) {
	storeCtx, cancel := context.WithTimeout(ctx, srv.storeTimeout)
	defer cancel()

	taken, err := srv.accountRepo.ExistsByUsername(storeCtx, username)
	if err != nil {
		return reasonStoreUnavailable, domainerrors.ErrTransientFailure, errors.Wrap(err, "failed to check username")
	}
	if taken {
		return reasonDuplicateUsername, domainerrors.ErrDuplicateUsername, nil
	}

	taken, err = srv.accountRepo.ExistsByEmail(storeCtx, email)
	if err != nil {
		return reasonStoreUnavailable, domainerrors.ErrTransientFailure, errors.Wrap(err, "failed to check email")
	}
	if taken {
		return reasonDuplicateEmail, domainerrors.ErrDuplicateEmail, nil
	}

	return "", nil, nil
}

func resolveRoles(ctx context.Context, roleRepo repository.RoleRepository, names []entity.RoleName) (entity.Roles, error) {
	roles := make(entity.Roles, 0, len(names))
	for _, name := range names {
		role, err := roleRepo.FindByName(ctx, name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve role %s", name)
		}
		roles = append(roles, role)
	}

	return roles, nil
}

// registrationFailure maps a failed registration transaction onto the public taxonomy.
// The unique constraints catch registrations racing past the existence checks.
func registrationFailure(err error) (string, *domainerrors.BaseError) {
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		return reasonDuplicateUsername, domainerrors.ErrDuplicateUsername
	case errors.Is(err, repository.ErrEmailTaken):
		return reasonDuplicateEmail, domainerrors.ErrDuplicateEmail
	case errors.Is(err, repository.ErrRoleNotFound):
		return reasonRoleMissing, domainerrors.ErrInvalidRole
	default:
		return reasonStoreUnavailable, domainerrors.ErrTransientFailure
	}
}

func codeFailureReason(err error) string {
	switch {
	case errors.Is(err, entity.ErrCodeNotPending):
		return reasonCodeNotPending
	case errors.Is(err, entity.ErrCodeExpired):
		return reasonCodeExpired
	default:
		return reasonCodeMismatch
	}
}

func (srv *authService) sendCode(ctx context.Context, account *entity.Account, code string) error {
	notifyCtx, cancel := context.WithTimeout(ctx, srv.notifyTimeout)
	defer cancel()

	if err := srv.notifier.Send(notifyCtx, account.Email, srv.mailSubject, buildCodeMessage(code, srv.codeTTL)); err != nil {
		return errors.Wrap(err, "failed to send one-time code")
	}

	return nil
}

// withdrawCode clears a code that could not be delivered. The compare-and-set
// leaves a newer code from a concurrent request untouched.
func (srv *authService) withdrawCode(ctx context.Context, account *entity.Account, code string) {
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), srv.storeTimeout)
	defer cancel()

	if _, err := srv.otc.Consume(storeCtx, account, code); err != nil {
		srv.log(ctx).Warn("Failed to withdraw undelivered code", slog.Any("accountID", account.ID), slog.Any("error", err))
	}
}

func buildCodeMessage(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your OTP for login is: %s.\n\n"+
		"Please use this OTP to complete the login process. This OTP is valid for %s.\n\n"+
		"If you did not request this OTP, please contact us immediately to secure your account.\n\n"+
		"Best regards,\nThe GuardianMed Team", code, formatValidity(ttl))
}

func formatValidity(ttl time.Duration) string {
	if ttl%time.Minute == 0 {
		minutes := int(ttl / time.Minute)
		if minutes == 1 {
			return "1 minute"
		}

		return fmt.Sprintf("%d minutes", minutes)
	}

	return fmt.Sprintf("%d seconds", int(ttl/time.Second))
}

// fail logs and audits a failed step and returns appErr wrapped with the cause.
// Callers outside this package only ever see appErr's public fields.
func (srv *authService) fail(
	ctx context.Context,
	action, username string,
	account *entity.Account,
	reason string,
	cause error,
	appErr *domainerrors.BaseError,
) error {
	attrs := []any{
		slog.String("action", action),
		slog.String("username", username),
		slog.String("reason", reason),
	}
	if cause != nil {
		attrs = append(attrs, slog.Any("error", cause))
	}

	if errors.Is(appErr, domainerrors.ErrTransientFailure) {
		srv.log(ctx).Error("Authentication step failed", attrs...)
	} else {
		srv.log(ctx).Warn("Authentication step rejected", attrs...)
	}

	srv.publishAudit(ctx, action, constants.AuditOutcomeFailure, reason, username, account)

	return appErr.WrapMessage(reason)
}

func (srv *authService) succeed(ctx context.Context, action string, account *entity.Account) {
	srv.publishAudit(ctx, action, constants.AuditOutcomeSuccess, "", account.Username, account)
}

// publishAudit never fails the request; publish errors are only logged.
func (srv *authService) publishAudit(ctx context.Context, action, outcome, reason, username string, account *entity.Account) {
	event := &service.AuditEvent{
		RequestID:  deliverycontext.RequestID(ctx),
		Action:     action,
		Outcome:    outcome,
		Reason:     reason,
		Username:   username,
		OccurredAt: srv.now().UTC(),
	}
	if account != nil {
		event.AccountID = account.ID.String()
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), srv.storeTimeout)
	defer cancel()

	if err := srv.audit.Publish(publishCtx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish audit event", slog.String("action", action), slog.Any("error", err))
	}
}

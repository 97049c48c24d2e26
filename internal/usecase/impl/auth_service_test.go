package impl

import (
	"context"
	"testing"
	"time"

	"guardianmed/internal/domain/constants"
	"guardianmed/internal/domain/entity"
	domainerrors "guardianmed/internal/domain/errors"
	"guardianmed/internal/domain/repository"
	"guardianmed/internal/domain/service"
	mockRepo "guardianmed/internal/mocks/repository"
	mockSvc "guardianmed/internal/mocks/service"
	"guardianmed/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	txManager    *mockRepo.MockTransactionManager
	accountRepo  *mockRepo.MockAccountRepository
	generator    *mockSvc.MockCodeGenerator
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	notifier     *mockSvc.MockNotifier
	locker       *mockSvc.MockAccountLocker
	audit        *mockSvc.MockAuditPublisher
	now          time.Time
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	fx := authServiceFixtures{
		txManager:    mockRepo.NewMockTransactionManager(t),
		accountRepo:  mockRepo.NewMockAccountRepository(t),
		generator:    mockSvc.NewMockCodeGenerator(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokenService: mockSvc.NewMockTokenService(t),
		notifier:     mockSvc.NewMockNotifier(t),
		locker:       mockSvc.NewMockAccountLocker(t),
		audit:        mockSvc.NewMockAuditPublisher(t),
		now:          time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	cfg := newTestConfig()
	logger := newDiscardLogger()

	otc := NewOTCService(OTCServiceParams{
		Generator:   fx.generator,
		AccountRepo: fx.accountRepo,
		Config:      cfg,
		Logger:      logger,
	})

	fx.hasher.EXPECT().Hash(timingPassword).Return("timing-hash", nil).Once()

	srv, err := NewAuthService(AuthServiceParams{
		TxManager:    fx.txManager,
		AccountRepo:  fx.accountRepo,
		OTC:          otc,
		Hasher:       fx.hasher,
		TokenService: fx.tokenService,
		Notifier:     fx.notifier,
		Locker:       fx.locker,
		Audit:        fx.audit,
		Config:       cfg,
		Logger:       logger,
	})
	require.NoError(t, err)
	srv.(*authService).now = func() time.Time { return fx.now }
	fx.service = srv

	return fx
}

func testAccount() *entity.Account {
	return &entity.Account{
		ID:         uuid.MustParse("0b6f2a63-3f43-4c1e-9a77-7b7e2a1f5c10"),
		Username:   "alice",
		Email:      "alice@example.com",
		SecretHash: "hash",
		Roles:      entity.Roles{{ID: uuid.New(), Name: entity.RoleUser}},
	}
}

func (fx authServiceFixtures) expectLock(t *testing.T) *bool {
	t.Helper()

	released := false
	fx.locker.EXPECT().Lock(mock.Anything, "alice").Return(func() { released = true }, nil)

	return &released
}

func (fx authServiceFixtures) expectAudit(action, outcome, reason string) {
	fx.audit.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(event *service.AuditEvent) bool {
			return event.Action == action && event.Outcome == outcome && event.Reason == reason
		})).
		Return(nil).
		Once()
}

func TestAuthService_BeginLogin_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	account := testAccount()
	released := fx.expectLock(t)

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(account, nil)
	fx.hasher.EXPECT().Check("p@ss", "hash").Return(true)
	fx.generator.EXPECT().Generate().Return("482913", nil)
	fx.accountRepo.EXPECT().
		SetPendingCode(mock.Anything, account.ID, entity.PendingCode{Code: "482913", ExpiresAt: fx.now.Add(2 * time.Minute)}).
		Return(nil)
	fx.notifier.EXPECT().
		Send(mock.Anything, "alice@example.com", "Your One-Time Password (OTP) for Login", mock.MatchedBy(func(body string) bool {
			return assert.Contains(t, body, "482913")
		})).
		Return(nil)
	fx.expectAudit(constants.AuditActionLoginBegin, constants.AuditOutcomeSuccess, "")

	output, err := fx.service.BeginLogin(ctx, &usecase.BeginLoginInput{Username: "alice", Password: "p@ss"})

	require.NoError(t, err)
	assert.Equal(t, &usecase.BeginLoginOutput{OTPSent: true, Message: "OTP sent to your email for verification"}, output)
	assert.True(t, *released)
}

func TestAuthService_BeginLogin_LockUnavailable(t *testing.T) {
	fx := createTestAuthService(t)

	fx.locker.EXPECT().Lock(mock.Anything, "alice").Return(nil, errors.New("redis down"))
	fx.expectAudit(constants.AuditActionLoginBegin, constants.AuditOutcomeFailure, reasonLockUnavailable)

	_, err := fx.service.BeginLogin(context.Background(), &usecase.BeginLoginInput{Username: "alice", Password: "p@ss"})

	assert.ErrorIs(t, err, domainerrors.ErrTransientFailure)
	assert.NotContains(t, err.Error(), "redis down")
}

func TestAuthService_BeginLogin_UnknownUserRunsHashCheck(t *testing.T) {
	fx := createTestAuthService(t)
	released := fx.expectLock(t)

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(nil, repository.ErrAccountNotFound)
	fx.hasher.EXPECT().Check("p@ss", "timing-hash").Return(false).Once()
	fx.expectAudit(constants.AuditActionLoginBegin, constants.AuditOutcomeFailure, reasonAccountNotFound)

	_, err := fx.service.BeginLogin(context.Background(), &usecase.BeginLoginInput{Username: "alice", Password: "p@ss"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.True(t, *released)
}

func TestAuthService_VerifyLogin_UnknownUserSkipsHashCheck(t *testing.T) {
	fx := createTestAuthService(t)

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(nil, repository.ErrAccountNotFound)
	fx.expectAudit(constants.AuditActionLoginVerify, constants.AuditOutcomeFailure, reasonAccountNotFound)

	_, err := fx.service.VerifyLogin(context.Background(), &usecase.VerifyLoginInput{Username: "alice", Code: "482913", Password: "p@ss"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidChallenge)
	fx.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestAuthService_NewAuthService_TimingHashFails(t *testing.T) {
	hasher := mockSvc.NewMockPasswordHasher(t)
	hasher.EXPECT().Hash(timingPassword).Return("", errors.New("cost out of range"))

	srv, err := NewAuthService(AuthServiceParams{Hasher: hasher, Logger: newDiscardLogger()})

	assert.Error(t, err)
	assert.Nil(t, srv)
}

func TestAuthService_BeginLogin_StoreUnavailable(t *testing.T) {
	fx := createTestAuthService(t)
	released := fx.expectLock(t)

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(nil, context.DeadlineExceeded)
	fx.expectAudit(constants.AuditActionLoginBegin, constants.AuditOutcomeFailure, reasonStoreUnavailable)

	_, err := fx.service.BeginLogin(context.Background(), &usecase.BeginLoginInput{Username: "alice", Password: "p@ss"})

	assert.ErrorIs(t, err, domainerrors.ErrTransientFailure)
	assert.True(t, *released)
}

func TestAuthService_BeginLogin_GenerateFails(t *testing.T) {
	fx := createTestAuthService(t)
	fx.expectLock(t)

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(testAccount(), nil)
	fx.hasher.EXPECT().Check("p@ss", "hash").Return(true)
	fx.generator.EXPECT().Generate().Return("", errors.New("entropy exhausted"))
	fx.expectAudit(constants.AuditActionLoginBegin, constants.AuditOutcomeFailure, reasonCodeGeneration)

	_, err := fx.service.BeginLogin(context.Background(), &usecase.BeginLoginInput{Username: "alice", Password: "p@ss"})

	assert.ErrorIs(t, err, domainerrors.ErrTransientFailure)
}

func TestAuthService_BeginLogin_BindFails(t *testing.T) {
	fx := createTestAuthService(t)
	fx.expectLock(t)
	account := testAccount()

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(account, nil)
	fx.hasher.EXPECT().Check("p@ss", "hash").Return(true)
	fx.generator.EXPECT().Generate().Return("482913", nil)
	fx.accountRepo.EXPECT().SetPendingCode(mock.Anything, account.ID, mock.Anything).Return(errors.New("connection reset"))
	fx.expectAudit(constants.AuditActionLoginBegin, constants.AuditOutcomeFailure, reasonStoreUnavailable)

	_, err := fx.service.BeginLogin(context.Background(), &usecase.BeginLoginInput{Username: "alice", Password: "p@ss"})

	assert.ErrorIs(t, err, domainerrors.ErrTransientFailure)
	assert.Nil(t, account.Pending)
}

func TestAuthService_BeginLogin_NotifyFailsWithdrawsCode(t *testing.T) {
	fx := createTestAuthService(t)
	fx.expectLock(t)
	account := testAccount()

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(account, nil)
	fx.hasher.EXPECT().Check("p@ss", "hash").Return(true)
	fx.generator.EXPECT().Generate().Return("482913", nil)
	fx.accountRepo.EXPECT().SetPendingCode(mock.Anything, account.ID, mock.Anything).Return(nil)
	fx.notifier.EXPECT().Send(mock.Anything, "alice@example.com", mock.Anything, mock.Anything).Return(errors.New("smtp timeout"))
	fx.accountRepo.EXPECT().ClearPendingCode(mock.Anything, account.ID, "482913").Return(true, nil)
	fx.expectAudit(constants.AuditActionLoginBegin, constants.AuditOutcomeFailure, reasonNotifyFailed)

	_, err := fx.service.BeginLogin(context.Background(), &usecase.BeginLoginInput{Username: "alice", Password: "p@ss"})

	assert.ErrorIs(t, err, domainerrors.ErrTransientFailure)
	assert.Nil(t, account.Pending)
}

func TestAuthService_BeginLogin_AuditFailureIgnored(t *testing.T) {
	fx := createTestAuthService(t)
	fx.expectLock(t)

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(nil, repository.ErrAccountNotFound)
	fx.hasher.EXPECT().Check("p@ss", "timing-hash").Return(false)
	fx.audit.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := fx.service.BeginLogin(context.Background(), &usecase.BeginLoginInput{Username: "alice", Password: "p@ss"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func pendingAccount(now time.Time) *entity.Account {
	account := testAccount()
	account.BindPendingCode(entity.NewPendingCode("482913", now, 2*time.Minute))

	return account
}

func TestAuthService_VerifyLogin_Success(t *testing.T) {
	fx := createTestAuthService(t)
	account := pendingAccount(fx.now)

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(account, nil)
	fx.hasher.EXPECT().Check("p@ss", "hash").Return(true)
	fx.tokenService.EXPECT().
		Issue(service.TokenIdentity{AccountID: account.ID, Username: "alice"}, []string{"ROLE_USER"}).
		Return("signed.jwt.token", nil)
	fx.accountRepo.EXPECT().ClearPendingCode(mock.Anything, account.ID, "482913").Return(true, nil)
	fx.expectAudit(constants.AuditActionLoginVerify, constants.AuditOutcomeSuccess, "")

	output, err := fx.service.VerifyLogin(context.Background(), &usecase.VerifyLoginInput{Username: "alice", Code: "482913", Password: "p@ss"})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.Token)
	assert.Equal(t, "Bearer", output.Type)
	assert.Equal(t, account.ID.String(), output.ID)
	assert.Equal(t, []string{"ROLE_USER"}, output.Roles)
	assert.Nil(t, account.Pending)
}

func TestAuthService_VerifyLogin_TokenIssueFailsKeepsChallenge(t *testing.T) {
	fx := createTestAuthService(t)
	account := pendingAccount(fx.now)

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(account, nil)
	fx.hasher.EXPECT().Check("p@ss", "hash").Return(true)
	fx.tokenService.EXPECT().Issue(mock.Anything, mock.Anything).Return("", errors.New("signing key unavailable"))
	fx.expectAudit(constants.AuditActionLoginVerify, constants.AuditOutcomeFailure, reasonTokenIssueFailed)

	_, err := fx.service.VerifyLogin(context.Background(), &usecase.VerifyLoginInput{Username: "alice", Code: "482913", Password: "p@ss"})

	assert.ErrorIs(t, err, domainerrors.ErrTransientFailure)
	assert.NotNil(t, account.Pending)
}

func TestAuthService_VerifyLogin_ConsumedConcurrently(t *testing.T) {
	fx := createTestAuthService(t)
	account := pendingAccount(fx.now)

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(account, nil)
	fx.hasher.EXPECT().Check("p@ss", "hash").Return(true)
	fx.tokenService.EXPECT().Issue(mock.Anything, mock.Anything).Return("signed.jwt.token", nil)
	fx.accountRepo.EXPECT().ClearPendingCode(mock.Anything, account.ID, "482913").Return(false, nil)
	fx.expectAudit(constants.AuditActionLoginVerify, constants.AuditOutcomeFailure, reasonChallengeConsumed)

	output, err := fx.service.VerifyLogin(context.Background(), &usecase.VerifyLoginInput{Username: "alice", Code: "482913", Password: "p@ss"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidChallenge)
}

func TestAuthService_VerifyLogin_ClearFails(t *testing.T) {
	fx := createTestAuthService(t)
	account := pendingAccount(fx.now)

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(account, nil)
	fx.hasher.EXPECT().Check("p@ss", "hash").Return(true)
	fx.tokenService.EXPECT().Issue(mock.Anything, mock.Anything).Return("signed.jwt.token", nil)
	fx.accountRepo.EXPECT().ClearPendingCode(mock.Anything, account.ID, "482913").Return(false, context.DeadlineExceeded)
	fx.expectAudit(constants.AuditActionLoginVerify, constants.AuditOutcomeFailure, reasonStoreUnavailable)

	output, err := fx.service.VerifyLogin(context.Background(), &usecase.VerifyLoginInput{Username: "alice", Code: "482913", Password: "p@ss"})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrTransientFailure)
}

func TestAuthService_VerifyLogin_PasswordCheckedAfterCode(t *testing.T) {
	fx := createTestAuthService(t)
	account := testAccount()

	fx.accountRepo.EXPECT().FindByUsername(mock.Anything, "alice").Return(account, nil)
	fx.expectAudit(constants.AuditActionLoginVerify, constants.AuditOutcomeFailure, reasonCodeNotPending)

	_, err := fx.service.VerifyLogin(context.Background(), &usecase.VerifyLoginInput{Username: "alice", Code: "482913", Password: "p@ss"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidChallenge)
	fx.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func (fx authServiceFixtures) expectRegistrationTx(t *testing.T, roleRepo repository.RoleRepository, accountRepo repository.AccountRepository, txErr *error) {
	t.Helper()

	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().RoleRepo().Return(roleRepo).Maybe()
			factory.EXPECT().AccountRepo().Return(accountRepo).Maybe()
			*txErr = fn(factory)

			return *txErr
		})
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	roleRepo := mockRepo.NewMockRoleRepository(t)
	txAccountRepo := mockRepo.NewMockAccountRepository(t)
	var txErr error

	adminRole := &entity.Role{ID: uuid.New(), Name: entity.RoleAdmin}
	fx.accountRepo.EXPECT().ExistsByUsername(mock.Anything, "bob").Return(false, nil)
	fx.accountRepo.EXPECT().ExistsByEmail(mock.Anything, "bob@example.com").Return(false, nil)
	fx.hasher.EXPECT().Hash("hunter2").Return("hashed", nil)
	fx.expectRegistrationTx(t, roleRepo, txAccountRepo, &txErr)
	roleRepo.EXPECT().FindByName(mock.Anything, entity.RoleAdmin).Return(adminRole, nil)
	txAccountRepo.EXPECT().
		Create(mock.Anything, mock.MatchedBy(func(a *entity.Account) bool {
			return a.Username == "bob" && a.SecretHash == "hashed" && len(a.Roles) == 1 && a.Roles[0] == adminRole
		})).
		RunAndReturn(func(_ context.Context, a *entity.Account) error {
			a.ID = uuid.New()

			return nil
		})
	fx.expectAudit(constants.AuditActionRegister, constants.AuditOutcomeSuccess, "")

	output, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hunter2",
		Roles:    []string{"admin", "Admin"},
	})

	require.NoError(t, err)
	assert.NoError(t, txErr)
	assert.Equal(t, "Registered successfully with the following role(s): ROLE_ADMIN", output.Message)
	assert.Equal(t, []string{"ROLE_ADMIN"}, output.Roles)
}

func TestAuthService_Register_InvalidRolePersistsNothing(t *testing.T) {
	fx := createTestAuthService(t)
	fx.accountRepo.EXPECT().ExistsByUsername(mock.Anything, "bob").Return(false, nil)
	fx.accountRepo.EXPECT().ExistsByEmail(mock.Anything, "bob@example.com").Return(false, nil)
	fx.expectAudit(constants.AuditActionRegister, constants.AuditOutcomeFailure, reasonUnknownRole)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hunter2",
		Roles:    []string{"ghost"},
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	fx.hasher.AssertNotCalled(t, "Hash", "hunter2")
}

func TestAuthService_Register_TakenUsernameWinsOverUnknownRole(t *testing.T) {
	fx := createTestAuthService(t)
	fx.accountRepo.EXPECT().ExistsByUsername(mock.Anything, "bob").Return(true, nil)
	fx.expectAudit(constants.AuditActionRegister, constants.AuditOutcomeFailure, reasonDuplicateUsername)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hunter2",
		Roles:    []string{"ghost"},
	})

	assert.ErrorIs(t, err, domainerrors.ErrDuplicateUsername)
	fx.accountRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Register_RaceOnUniqueKey(t *testing.T) {
	tests := []struct {
		name       string
		createErr  error
		wantErr    error
		wantReason string
	}{
		{"username", repository.ErrUsernameTaken, domainerrors.ErrDuplicateUsername, reasonDuplicateUsername},
		{"email", repository.ErrEmailTaken, domainerrors.ErrDuplicateEmail, reasonDuplicateEmail},
		{"store down", errors.New("connection reset"), domainerrors.ErrTransientFailure, reasonStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			roleRepo := mockRepo.NewMockRoleRepository(t)
			txAccountRepo := mockRepo.NewMockAccountRepository(t)
			var txErr error

			fx.accountRepo.EXPECT().ExistsByUsername(mock.Anything, "bob").Return(false, nil)
			fx.accountRepo.EXPECT().ExistsByEmail(mock.Anything, "bob@example.com").Return(false, nil)
			fx.hasher.EXPECT().Hash("hunter2").Return("hashed", nil)
			fx.expectRegistrationTx(t, roleRepo, txAccountRepo, &txErr)
			roleRepo.EXPECT().FindByName(mock.Anything, entity.RoleUser).Return(&entity.Role{ID: uuid.New(), Name: entity.RoleUser}, nil)
			txAccountRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(tt.createErr)
			fx.expectAudit(constants.AuditActionRegister, constants.AuditOutcomeFailure, tt.wantReason)

			_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
				Username: "bob",
				Email:    "bob@example.com",
				Password: "hunter2",
			})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_Register_RoleReferenceMissing(t *testing.T) {
	fx := createTestAuthService(t)
	roleRepo := mockRepo.NewMockRoleRepository(t)
	txAccountRepo := mockRepo.NewMockAccountRepository(t)
	var txErr error

	fx.accountRepo.EXPECT().ExistsByUsername(mock.Anything, "bob").Return(false, nil)
	fx.accountRepo.EXPECT().ExistsByEmail(mock.Anything, "bob@example.com").Return(false, nil)
	fx.hasher.EXPECT().Hash("hunter2").Return("hashed", nil)
	fx.expectRegistrationTx(t, roleRepo, txAccountRepo, &txErr)
	roleRepo.EXPECT().FindByName(mock.Anything, entity.RoleSuperAdmin).Return(nil, repository.ErrRoleNotFound)
	fx.expectAudit(constants.AuditActionRegister, constants.AuditOutcomeFailure, reasonRoleMissing)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hunter2",
		Roles:    []string{"superadmin"},
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
	assert.ErrorIs(t, txErr, repository.ErrRoleNotFound)
}

func TestAuthService_Register_ExistenceCheckFails(t *testing.T) {
	fx := createTestAuthService(t)

	fx.accountRepo.EXPECT().ExistsByUsername(mock.Anything, "bob").Return(false, errors.New("connection reset"))
	fx.expectAudit(constants.AuditActionRegister, constants.AuditOutcomeFailure, reasonStoreUnavailable)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hunter2",
	})

	assert.ErrorIs(t, err, domainerrors.ErrTransientFailure)
}

func TestAuthService_Register_HashFails(t *testing.T) {
	fx := createTestAuthService(t)

	fx.accountRepo.EXPECT().ExistsByUsername(mock.Anything, "bob").Return(false, nil)
	fx.accountRepo.EXPECT().ExistsByEmail(mock.Anything, "bob@example.com").Return(false, nil)
	fx.hasher.EXPECT().Hash("hunter2").Return("", errors.New("cost out of range"))
	fx.expectAudit(constants.AuditActionRegister, constants.AuditOutcomeFailure, reasonHashFailed)

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hunter2",
	})

	assert.ErrorIs(t, err, domainerrors.ErrTransientFailure)
}

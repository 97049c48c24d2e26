package impl

import (
	"context"
	"testing"
	"time"

	"guardianmed/config"
	"guardianmed/internal/domain/entity"
	mockRepo "guardianmed/internal/mocks/repository"
	mockSvc "guardianmed/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestOTCService(t *testing.T, cfg *config.Config) (*otcService, *mockSvc.MockCodeGenerator, *mockRepo.MockAccountRepository) {
	generator := mockSvc.NewMockCodeGenerator(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)

	srv := NewOTCService(OTCServiceParams{
		Generator:   generator,
		AccountRepo: accountRepo,
		Config:      cfg,
		Logger:      newDiscardLogger(),
	})

	return srv.(*otcService), generator, accountRepo
}

func TestOTCService_DefaultWindow(t *testing.T) {
	srv, _, _ := createTestOTCService(t, &config.Config{})
	assert.Equal(t, entity.CodeTTL, srv.ttl)

	srv, _, _ = createTestOTCService(t, &config.Config{Auth: &config.AuthConfig{CodeTTL: time.Minute}})
	assert.Equal(t, time.Minute, srv.ttl)
}

func TestOTCService_Generate(t *testing.T) {
	srv, generator, _ := createTestOTCService(t, newTestConfig())

	generator.EXPECT().Generate().Return("123456", nil).Once()
	code, err := srv.Generate()
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	generator.EXPECT().Generate().Return("", errors.New("no entropy")).Once()
	_, err = srv.Generate()
	assert.Error(t, err)
}

func TestOTCService_Bind(t *testing.T) {
	srv, _, accountRepo := createTestOTCService(t, newTestConfig())
	account := &entity.Account{ID: uuid.New()}
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("UTC+8", 8*3600))

	accountRepo.EXPECT().
		SetPendingCode(mock.Anything, account.ID, mock.MatchedBy(func(p entity.PendingCode) bool {
			return p.Code == "654321" && p.ExpiresAt.Equal(now.Add(2*time.Minute)) && p.ExpiresAt.Location() == time.UTC
		})).
		Return(nil)

	require.NoError(t, srv.Bind(context.Background(), account, "654321", now))
	require.NotNil(t, account.Pending)
	assert.Equal(t, "654321", account.Pending.Code)
}

func TestOTCService_Bind_StoreFailureLeavesAccount(t *testing.T) {
	srv, _, accountRepo := createTestOTCService(t, newTestConfig())
	account := &entity.Account{ID: uuid.New()}
	previous := entity.NewPendingCode("111111", time.Now(), time.Minute)
	account.BindPendingCode(previous)

	accountRepo.EXPECT().SetPendingCode(mock.Anything, account.ID, mock.Anything).Return(errors.New("timeout"))

	err := srv.Bind(context.Background(), account, "222222", time.Now())
	require.Error(t, err)
	assert.Equal(t, previous, *account.Pending)
}

func TestOTCService_Validate(t *testing.T) {
	srv, _, _ := createTestOTCService(t, newTestConfig())
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	account := &entity.Account{ID: uuid.New()}

	assert.ErrorIs(t, srv.Validate(account, "654321", now), entity.ErrCodeNotPending)

	account.BindPendingCode(entity.NewPendingCode("654321", now, 2*time.Minute))
	assert.NoError(t, srv.Validate(account, "654321", now.Add(time.Minute)))
	assert.ErrorIs(t, srv.Validate(account, "654320", now), entity.ErrCodeMismatch)
	assert.ErrorIs(t, srv.Validate(account, "654321", now.Add(2*time.Minute)), entity.ErrCodeExpired)
	assert.NotNil(t, account.Pending)
}

func TestOTCService_Consume(t *testing.T) {
	tests := []struct {
		name        string
		cleared     bool
		repoErr     error
		wantPending bool
		wantErr     bool
	}{
		{name: "cleared", cleared: true},
		{name: "already consumed", cleared: false, wantPending: true},
		{name: "store error", repoErr: errors.New("timeout"), wantPending: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, accountRepo := createTestOTCService(t, newTestConfig())
			account := &entity.Account{ID: uuid.New()}
			account.BindPendingCode(entity.NewPendingCode("654321", time.Now(), time.Minute))

			accountRepo.EXPECT().ClearPendingCode(mock.Anything, account.ID, "654321").Return(tt.cleared, tt.repoErr)

			cleared, err := srv.Consume(context.Background(), account, "654321")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.cleared, cleared)
			assert.Equal(t, tt.wantPending, account.Pending != nil)
		})
	}
}

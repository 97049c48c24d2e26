package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"guardianmed/config"
	"guardianmed/internal/domain/entity"
	"guardianmed/internal/domain/repository"
	"guardianmed/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			CodeTTL:       2 * time.Minute,
			StoreTimeout:  time.Second,
			NotifyTimeout: time.Second,
		},
		Mail: &config.MailConfig{Subject: "Your One-Time Password (OTP) for Login"},
	}
}

// memoryStore is an in-memory credential store for flow scenarios.
type memoryStore struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account
	roles    map[entity.RoleName]*entity.Role
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts: make(map[string]*entity.Account),
		roles: map[entity.RoleName]*entity.Role{
			entity.RoleUser:       {ID: uuid.New(), Name: entity.RoleUser},
			entity.RoleAdmin:      {ID: uuid.New(), Name: entity.RoleAdmin},
			entity.RoleSuperAdmin: {ID: uuid.New(), Name: entity.RoleSuperAdmin},
		},
	}
}

// snapshot returns a copy so callers cannot mutate stored state.
func snapshot(a *entity.Account) *entity.Account {
	cp := *a
	cp.Roles = append(entity.Roles(nil), a.Roles...)
	if a.Pending != nil {
		pending := *a.Pending
		cp.Pending = &pending
	}

	return &cp
}

func (s *memoryStore) account(username string) *entity.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.accounts[username]; ok {
		return snapshot(a)
	}

	return nil
}

func (s *memoryStore) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	if a := s.account(username); a != nil {
		return a, nil
	}

	return nil, repository.ErrAccountNotFound
}

func (s *memoryStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	return s.account(username) != nil, nil
}

func (s *memoryStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (s *memoryStore) Create(_ context.Context, account *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.Username]; ok {
		return repository.ErrUsernameTaken
	}
	account.ID = uuid.New()
	s.accounts[account.Username] = snapshot(account)

	return nil
}

func (s *memoryStore) SetPendingCode(_ context.Context, accountID uuid.UUID, pending entity.PendingCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.ID == accountID {
			a.Pending = &pending

			return nil
		}
	}

	return repository.ErrAccountNotFound
}

func (s *memoryStore) ClearPendingCode(_ context.Context, accountID uuid.UUID, expectedCode string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.ID == accountID && a.Pending != nil && a.Pending.Code == expectedCode {
			a.ClearPendingCode()

			return true, nil
		}
	}

	return false, nil
}

func (s *memoryStore) FindByName(_ context.Context, name entity.RoleName) (*entity.Role, error) {
	if role, ok := s.roles[name]; ok {
		return role, nil
	}

	return nil, repository.ErrRoleNotFound
}

func (s *memoryStore) AccountRepo() repository.AccountRepository { return s }

func (s *memoryStore) RoleRepo() repository.RoleRepository { return s }

func (s *memoryStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

// plainHasher stands in for bcrypt in flow scenarios.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

// sequenceGenerator yields fixed codes in order.
type sequenceGenerator struct {
	codes []string
	next  int
}

func (g *sequenceGenerator) Generate() (string, error) {
	if g.next >= len(g.codes) {
		return "", errors.New("sequence exhausted")
	}
	code := g.codes[g.next]
	g.next++

	return code, nil
}

type sentMail struct {
	address, subject, body string
}

// outbox records notifications instead of sending them.
type outbox struct {
	mu   sync.Mutex
	sent []sentMail
}

func (o *outbox) Send(_ context.Context, address, subject, body string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, sentMail{address: address, subject: subject, body: body})

	return nil
}

type stubTokens struct{}

func (stubTokens) Issue(identity service.TokenIdentity, roleNames []string) (string, error) {
	return fmt.Sprintf("token:%s:%v", identity.Username, roleNames), nil
}

func (stubTokens) Validate(string) (*service.Claims, error) {
	return nil, errors.New("not implemented")
}

type noLocker struct{}

func (noLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

// auditLog records published events.
type auditLog struct {
	mu     sync.Mutex
	events []*service.AuditEvent
}

func (a *auditLog) Publish(_ context.Context, event *service.AuditEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)

	return nil
}

func (a *auditLog) Close() error { return nil }

func (a *auditLog) last() *service.AuditEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.events) == 0 {
		return nil
	}

	return a.events[len(a.events)-1]
}

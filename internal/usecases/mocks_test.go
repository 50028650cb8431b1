package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"
	"mercury-mail.backend/internal/domain/entities"
	"mercury-mail.backend/internal/domain/repositories"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApiKeyRepository struct {
	mock.Mock
}

func (m *MockApiKeyRepository) Create(ctx context.Context, key *entities.ApiKey) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockApiKeyRepository) FindActiveByHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	args := m.Called(ctx, keyHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) FindActiveByID(ctx context.Context, id int64) (*entities.ApiKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) ListActive(ctx context.Context, ownerID *int64) ([]*entities.ApiKey, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ApiKey), args.Error(1)
}

func (m *MockApiKeyRepository) CountActiveByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApiKeyRepository) TouchLastUsed(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockApiKeyRepository) Revoke(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockAliasRepository struct {
	mock.Mock
}

func (m *MockAliasRepository) Create(ctx context.Context, alias *entities.Alias) error {
	return m.Called(ctx, alias).Error(0)
}

func (m *MockAliasRepository) ResolveAddress(ctx context.Context, address string) (*entities.Alias, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Alias), args.Error(1)
}

func (m *MockAliasRepository) ListByUserID(ctx context.Context, userID int64) ([]*entities.Alias, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Alias), args.Error(1)
}

type MockEmailRepository struct {
	mock.Mock
}

func (m *MockEmailRepository) Create(ctx context.Context, email *entities.Email) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockEmailRepository) FindOwned(ctx context.Context, id int64, filter repositories.OwnershipFilter) (*entities.Email, error) {
	args := m.Called(ctx, id, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Email), args.Error(1)
}

func (m *MockEmailRepository) List(ctx context.Context, filter entities.ListEmailsFilter) ([]*entities.Email, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.Email), args.Get(1).(int64), args.Error(2)
}

func (m *MockEmailRepository) Update(ctx context.Context, id int64, input entities.UpdateEmailInput) error {
	return m.Called(ctx, id, input).Error(0)
}

func (m *MockEmailRepository) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEmailRepository) HardDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEmailRepository) Stats(ctx context.Context, ownerID *int64) (*entities.EmailStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EmailStats), args.Error(1)
}

type MockSentEmailRepository struct {
	mock.Mock
}

func (m *MockSentEmailRepository) Create(ctx context.Context, sent *entities.SentEmail) error {
	return m.Called(ctx, sent).Error(0)
}

type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type MockMailProvider struct {
	mock.Mock
}

func (m *MockMailProvider) Send(ctx context.Context, msg *entities.OutboundMessage) (*entities.SendResult, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SendResult), args.Error(1)
}

func adminContext() *entities.AuthContext {
	return &entities.AuthContext{
		User: entities.AuthUser{
			ID:    entities.AdminUserID,
			Email: "admin",
			Role:  entities.RoleAdmin,
		},
		Scopes: entities.AdminScopes(),
	}
}

func userContext(id int64, scopes ...entities.Scope) *entities.AuthContext {
	set := entities.DefaultKeyScopes()
	if len(scopes) > 0 {
		set = entities.NewScopeSet(scopes...)
	}
	return &entities.AuthContext{
		User: entities.AuthUser{
			ID:    id,
			Email: "user@mistystep.io",
			Role:  entities.RoleUser,
		},
		Scopes: set,
	}
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mercury-mail.backend/internal/domain/entities"
	"mercury-mail.backend/internal/domain/repositories"
	"mercury-mail.backend/internal/interfaces/http/middleware"
	"mercury-mail.backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("development")
}

// withAuth injects an AuthContext the way AuthMiddleware would.
func withAuth(authCtx *entities.AuthContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authCtx != nil {
			c.Set(middleware.AuthContextKey, authCtx)
		}
		c.Next()
	}
}

func adminAuth() *entities.AuthContext {
	return &entities.AuthContext{
		User:   entities.AuthUser{ID: entities.AdminUserID, Email: "admin", Role: entities.RoleAdmin},
		Scopes: entities.AdminScopes(),
	}
}

func userAuth(id int64) *entities.AuthContext {
	return &entities.AuthContext{
		User:   entities.AuthUser{ID: id, Email: "user@mistystep.io", Role: entities.RoleUser},
		Scopes: entities.DefaultKeyScopes(),
	}
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type mockApiKeyRepo struct {
	mock.Mock
}

func (m *mockApiKeyRepo) Create(ctx context.Context, key *entities.ApiKey) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockApiKeyRepo) FindActiveByHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	args := m.Called(ctx, keyHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ApiKey), args.Error(1)
}

func (m *mockApiKeyRepo) FindActiveByID(ctx context.Context, id int64) (*entities.ApiKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ApiKey), args.Error(1)
}

func (m *mockApiKeyRepo) ListActive(ctx context.Context, ownerID *int64) ([]*entities.ApiKey, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ApiKey), args.Error(1)
}

func (m *mockApiKeyRepo) CountActiveByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockApiKeyRepo) TouchLastUsed(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockApiKeyRepo) Revoke(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockEmailRepo struct {
	mock.Mock
}

func (m *mockEmailRepo) Create(ctx context.Context, email *entities.Email) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockEmailRepo) FindOwned(ctx context.Context, id int64, filter repositories.OwnershipFilter) (*entities.Email, error) {
	args := m.Called(ctx, id, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Email), args.Error(1)
}

func (m *mockEmailRepo) List(ctx context.Context, filter entities.ListEmailsFilter) ([]*entities.Email, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.Email), args.Get(1).(int64), args.Error(2)
}

func (m *mockEmailRepo) Update(ctx context.Context, id int64, input entities.UpdateEmailInput) error {
	return m.Called(ctx, id, input).Error(0)
}

func (m *mockEmailRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEmailRepo) HardDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEmailRepo) Stats(ctx context.Context, ownerID *int64) (*entities.EmailStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EmailStats), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockAliasRepo struct {
	mock.Mock
}

func (m *mockAliasRepo) Create(ctx context.Context, alias *entities.Alias) error {
	return m.Called(ctx, alias).Error(0)
}

func (m *mockAliasRepo) ResolveAddress(ctx context.Context, address string) (*entities.Alias, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Alias), args.Error(1)
}

func (m *mockAliasRepo) ListByUserID(ctx context.Context, userID int64) ([]*entities.Alias, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Alias), args.Error(1)
}

type mockSentEmailRepo struct {
	mock.Mock
}

func (m *mockSentEmailRepo) Create(ctx context.Context, sent *entities.SentEmail) error {
	return m.Called(ctx, sent).Error(0)
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

type mockMailProvider struct {
	mock.Mock
}

func (m *mockMailProvider) Send(ctx context.Context, msg *entities.OutboundMessage) (*entities.SendResult, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SendResult), args.Error(1)
}

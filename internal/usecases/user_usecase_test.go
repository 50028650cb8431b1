package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
)

func newUserFixture() (*UserUsecase, *MockUserRepository, *MockAliasRepository, *MockUnitOfWork) {
	userRepo := new(MockUserRepository)
	aliasRepo := new(MockAliasRepository)
	uow := new(MockUnitOfWork)
	return NewUserUsecase(userRepo, aliasRepo, uow), userRepo, aliasRepo, uow
}

func TestCreateUserWithPrimaryAlias(t *testing.T) {
	u, userRepo, aliasRepo, uow := newUserFixture()

	uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.User).ID = 42
	}).Return(nil)

	var alias *entities.Alias
	aliasRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		alias = args.Get(1).(*entities.Alias)
	}).Return(nil)

	user, err := u.Create(context.Background(), adminContext(), entities.CreateUserInput{
		Email: "  New.User@MistyStep.io ",
		Name:  "New User",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "new.user@mistystep.io", user.Email)
	assert.Equal(t, entities.RoleUser, user.Role)

	require.NotNil(t, alias)
	assert.Equal(t, int64(42), alias.UserID)
	assert.Equal(t, "new.user@mistystep.io", alias.Address)
	assert.True(t, alias.IsPrimary)
}

func TestCreateUserAdminOnly(t *testing.T) {
	u, _, _, _ := newUserFixture()

	_, err := u.Create(context.Background(), userContext(7), entities.CreateUserInput{Email: "x@y.io"})

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)
}

func TestCreateUserValidation(t *testing.T) {
	u, _, _, _ := newUserFixture()

	_, err := u.Create(context.Background(), adminContext(), entities.CreateUserInput{Email: "not-an-email"})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = u.Create(context.Background(), adminContext(), entities.CreateUserInput{
		Email: "ok@mistystep.io",
		Role:  "superuser",
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestListUsersAdminOnly(t *testing.T) {
	u, userRepo, _, _ := newUserFixture()
	userRepo.On("List", mock.Anything).Return([]*entities.User{{ID: 1}}, nil)

	users, err := u.List(context.Background(), adminContext())
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = u.List(context.Background(), userContext(7))
	assert.Error(t, err)
}

func TestGetUserSelfOrAdmin(t *testing.T) {
	u, userRepo, _, _ := newUserFixture()
	userRepo.On("GetByID", mock.Anything, int64(7)).Return(&entities.User{ID: 7}, nil)

	user, err := u.Get(context.Background(), userContext(7), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	user, err = u.Get(context.Background(), adminContext(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	_, err = u.Get(context.Background(), userContext(8), 7)
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)
}

func TestGetUserNotFound(t *testing.T) {
	u, userRepo, _, _ := newUserFixture()
	userRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, domainerrors.ErrNotFound)

	_, err := u.Get(context.Background(), adminContext(), 99)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestAliasesOwnershipBoundary(t *testing.T) {
	u, _, aliasRepo, _ := newUserFixture()
	aliasRepo.On("ListByUserID", mock.Anything, int64(7)).Return([]*entities.Alias{{ID: 1, UserID: 7}}, nil)

	aliases, err := u.Aliases(context.Background(), userContext(7), 7)
	require.NoError(t, err)
	assert.Len(t, aliases, 1)

	_, err = u.Aliases(context.Background(), userContext(8), 7)
	assert.Error(t, err)
}

func TestGetUserStorageFailureIsNot404(t *testing.T) {
	u, userRepo, _, _ := newUserFixture()

	dbErr := errors.New("pq: connection refused")
	userRepo.On("GetByID", mock.Anything, int64(7)).Return(nil, dbErr)

	_, err := u.Get(context.Background(), userContext(7), 7)

	require.ErrorIs(t, err, dbErr)
	var appErr *domainerrors.AppError
	assert.False(t, errors.As(err, &appErr))
}

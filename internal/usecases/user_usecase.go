package usecases

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/volatiletech/null/v8"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/domain/repositories"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserUsecase manages mailbox owners.
type UserUsecase struct {
	userRepo  repositories.UserRepository
	aliasRepo repositories.AliasRepository
	uow       repositories.UnitOfWork
}

// NewUserUsecase creates a new user usecase.
func NewUserUsecase(
	userRepo repositories.UserRepository,
	aliasRepo repositories.AliasRepository,
	uow repositories.UnitOfWork,
) *UserUsecase {
	return &UserUsecase{
		userRepo:  userRepo,
		aliasRepo: aliasRepo,
		uow:       uow,
	}
}

// Create provisions a user together with their primary alias, in one
// transaction. Admin only.
func (u *UserUsecase) Create(ctx context.Context, auth *entities.AuthContext, input entities.CreateUserInput) (*entities.User, error) {
	if auth == nil || !auth.IsAdmin() {
		return nil, domainerrors.Forbidden("forbidden")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, domainerrors.BadRequest("invalid email address")
	}

	role := entities.RoleUser
	if raw := strings.TrimSpace(input.Role); raw != "" {
		parsed, ok := entities.ParseRole(raw)
		if !ok {
			return nil, domainerrors.BadRequest("invalid role: " + raw)
		}
		role = parsed
	}

	user := &entities.User{
		Email: email,
		Role:  role,
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = null.StringFrom(name)
	}

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return u.aliasRepo.Create(ctx, &entities.Alias{
			UserID:    user.ID,
			Address:   email,
			IsPrimary: true,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List returns all live users. Admin only.
func (u *UserUsecase) List(ctx context.Context, auth *entities.AuthContext) ([]*entities.User, error) {
	if auth == nil || !auth.IsAdmin() {
		return nil, domainerrors.Forbidden("forbidden")
	}
	return u.userRepo.List(ctx)
}

// Get returns a single user. Callers may read themselves; admin may
// read anyone.
func (u *UserUsecase) Get(ctx context.Context, auth *entities.AuthContext, id int64) (*entities.User, error) {
	if auth == nil {
		return nil, domainerrors.Unauthorized("unauthorized")
	}
	if !auth.IsAdmin() && auth.User.ID != id {
		return nil, domainerrors.Forbidden("forbidden")
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// Aliases lists the caller's own receiving addresses.
func (u *UserUsecase) Aliases(ctx context.Context, auth *entities.AuthContext, userID int64) ([]*entities.Alias, error) {
	if auth == nil {
		return nil, domainerrors.Unauthorized("unauthorized")
	}
	if !auth.IsAdmin() && auth.User.ID != userID {
		return nil, domainerrors.Forbidden("forbidden")
	}
	return u.aliasRepo.ListByUserID(ctx, userID)
}

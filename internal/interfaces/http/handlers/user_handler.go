package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/interfaces/http/middleware"
	"mercury-mail.backend/internal/interfaces/http/response"
	"mercury-mail.backend/internal/usecases"
)

type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// Create provisions a new user with their primary alias. Admin only.
func (h *UserHandler) Create(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	user, err := h.userUsecase.Create(c.Request.Context(), authCtx, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

// List returns all live users. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	users, err := h.userUsecase.List(c.Request.Context(), authCtx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// Get returns one user; callers may always read themselves.
func (h *UserHandler) Get(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	user, err := h.userUsecase.Get(c.Request.Context(), authCtx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Me describes the calling principal, including the impersonation flag
// and the resolved scope set.
func (h *UserHandler) Me(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":            authCtx.User,
		"isImpersonating": authCtx.IsImpersonating,
		"scopes":          authCtx.Scopes.Slice(),
	})
}

// Aliases lists a user's receiving addresses.
func (h *UserHandler) Aliases(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	aliases, err := h.userUsecase.Aliases(c.Request.Context(), authCtx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"aliases": aliases})
}

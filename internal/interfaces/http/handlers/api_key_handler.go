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

type ApiKeyHandler struct {
	apiKeyUsecase *usecases.ApiKeyUsecase
}

func NewApiKeyHandler(apiKeyUsecase *usecases.ApiKeyUsecase) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyUsecase: apiKeyUsecase}
}

// Create mints a new API key for the caller. The response carries the
// plaintext key; it is never retrievable again.
func (h *ApiKeyHandler) Create(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.CreateApiKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	created, err := h.apiKeyUsecase.Create(c.Request.Context(), authCtx, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// List returns the caller's active keys.
func (h *ApiKeyHandler) List(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	keys, err := h.apiKeyUsecase.List(c.Request.Context(), authCtx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"keys": keys})
}

// Revoke deactivates one of the caller's keys.
func (h *ApiKeyHandler) Revoke(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid api key id"))
		return
	}

	if err := h.apiKeyUsecase.Revoke(c.Request.Context(), authCtx, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"revoked": true})
}

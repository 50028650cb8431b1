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

type EmailHandler struct {
	emailUsecase *usecases.EmailUsecase
}

func NewEmailHandler(emailUsecase *usecases.EmailUsecase) *EmailHandler {
	return &EmailHandler{emailUsecase: emailUsecase}
}

// List returns a page of the caller's mail.
func (h *EmailHandler) List(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	input := usecases.ListEmailsInput{
		Folder:     c.Query("folder"),
		UnreadOnly: c.Query("unread") == "true",
		Since:      c.Query("since"),
		Unsynced:   c.Query("unsynced") == "true",
		Recipient:  c.Query("recipient"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid limit"))
			return
		}
		input.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid offset"))
			return
		}
		input.Offset = offset
	}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid user_id"))
			return
		}
		input.UserID = &userID
	}

	emails, total, err := h.emailUsecase.List(c.Request.Context(), authCtx, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"emails": emails,
		"total":  total,
	})
}

// Get returns one owned email.
func (h *EmailHandler) Get(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid email id"))
		return
	}

	email, err := h.emailUsecase.Get(c.Request.Context(), authCtx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, email)
}

// Update mutates read/starred/folder/synced state.
func (h *EmailHandler) Update(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid email id"))
		return
	}

	var input entities.UpdateEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	email, err := h.emailUsecase.Update(c.Request.Context(), authCtx, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, email)
}

// Delete trashes an email, or with ?permanent=true removes it outright.
func (h *EmailHandler) Delete(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid email id"))
		return
	}

	permanent := c.Query("permanent") == "true"
	if err := h.emailUsecase.Delete(c.Request.Context(), authCtx, id, permanent); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true, "permanent": permanent})
}

// Stats aggregates the caller's mailbox.
func (h *EmailHandler) Stats(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	stats, err := h.emailUsecase.Stats(c.Request.Context(), authCtx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

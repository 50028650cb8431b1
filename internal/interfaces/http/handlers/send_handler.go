package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/interfaces/http/middleware"
	"mercury-mail.backend/internal/interfaces/http/response"
	"mercury-mail.backend/internal/usecases"
)

type SendHandler struct {
	sendUsecase *usecases.SendUsecase
}

func NewSendHandler(sendUsecase *usecases.SendUsecase) *SendHandler {
	return &SendHandler{sendUsecase: sendUsecase}
}

// Send delivers one outbound message through the mail provider.
func (h *SendHandler) Send(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.SendEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	result, err := h.sendUsecase.Send(c.Request.Context(), authCtx, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"success":   true,
		"messageId": result.MessageID,
	})
}

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

type InboundHandler struct {
	inboundUsecase *usecases.InboundUsecase
}

func NewInboundHandler(inboundUsecase *usecases.InboundUsecase) *InboundHandler {
	return &InboundHandler{inboundUsecase: inboundUsecase}
}

// Ingest stores one message arriving from the receiving pipeline.
func (h *InboundHandler) Ingest(c *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.InboundEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body"))
		return
	}

	email, err := h.inboundUsecase.Ingest(c.Request.Context(), authCtx, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":     email.ID,
		"routed": email.UserID != nil,
	})
}

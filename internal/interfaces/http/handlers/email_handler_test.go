package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
	"mercury-mail.backend/internal/domain/repositories"
	"mercury-mail.backend/internal/usecases"
)

func newEmailRouter(repo *mockEmailRepo, authCtx *entities.AuthContext) *gin.Engine {
	h := NewEmailHandler(usecases.NewEmailUsecase(repo))
	r := gin.New()
	group := r.Group("/api/v1/emails", withAuth(authCtx))
	group.GET("", h.List)
	group.GET("/stats", h.Stats)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	return r
}

func TestEmailHandlerListPinsOwner(t *testing.T) {
	ownerID := int64(7)
	repo := new(mockEmailRepo)
	repo.On("List", mock.Anything, entities.ListEmailsFilter{
		UserID: &ownerID,
		Folder: entities.FolderInbox,
		Limit:  50,
	}).Return([]*entities.Email{{ID: 1, Recipient: "user@mistystep.io"}}, int64(1), nil)
	r := newEmailRouter(repo, userAuth(7))

	w := performJSON(t, r, http.MethodGet, "/api/v1/emails", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	repo.AssertExpectations(t)
}

func TestEmailHandlerListQueryParams(t *testing.T) {
	targetID := int64(9)
	repo := new(mockEmailRepo)
	repo.On("List", mock.Anything, entities.ListEmailsFilter{
		UserID:     &targetID,
		Recipient:  "other@mistystep.io",
		Folder:     entities.FolderArchive,
		UnreadOnly: true,
		Limit:      5,
		Offset:     10,
	}).Return([]*entities.Email{}, int64(0), nil)
	r := newEmailRouter(repo, adminAuth())

	w := performJSON(t, r, http.MethodGet,
		"/api/v1/emails?folder=archive&unread=true&limit=5&offset=10&user_id=9&recipient=Other@MistyStep.io", nil)

	require.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestEmailHandlerListBadLimit(t *testing.T) {
	repo := new(mockEmailRepo)
	r := newEmailRouter(repo, userAuth(7))

	w := performJSON(t, r, http.MethodGet, "/api/v1/emails?limit=lots", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestEmailHandlerListInvalidFolder(t *testing.T) {
	repo := new(mockEmailRepo)
	r := newEmailRouter(repo, userAuth(7))

	w := performJSON(t, r, http.MethodGet, "/api/v1/emails?folder=junk", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmailHandlerGet(t *testing.T) {
	ownerID := int64(7)
	repo := new(mockEmailRepo)
	repo.On("FindOwned", mock.Anything, int64(42), repositories.OwnershipFilter{OwnerID: &ownerID}).
		Return(&entities.Email{ID: 42, Subject: "hello"}, nil)
	r := newEmailRouter(repo, userAuth(7))

	w := performJSON(t, r, http.MethodGet, "/api/v1/emails/42", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subject":"hello"`)
}

func TestEmailHandlerGetNotOwned(t *testing.T) {
	ownerID := int64(7)
	repo := new(mockEmailRepo)
	repo.On("FindOwned", mock.Anything, int64(42), repositories.OwnershipFilter{OwnerID: &ownerID}).
		Return(nil, domainerrors.ErrNotFound)
	r := newEmailRouter(repo, userAuth(7))

	w := performJSON(t, r, http.MethodGet, "/api/v1/emails/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "email not found")
}

func TestEmailHandlerUpdate(t *testing.T) {
	ownerID := int64(7)
	isRead := true
	repo := new(mockEmailRepo)
	repo.On("FindOwned", mock.Anything, int64(42), repositories.OwnershipFilter{OwnerID: &ownerID}).
		Return(&entities.Email{ID: 42}, nil).Once()
	repo.On("Update", mock.Anything, int64(42), entities.UpdateEmailInput{IsRead: &isRead}).
		Return(nil)
	repo.On("FindOwned", mock.Anything, int64(42), repositories.OwnershipFilter{OwnerID: &ownerID}).
		Return(&entities.Email{ID: 42, IsRead: true}, nil).Once()
	r := newEmailRouter(repo, userAuth(7))

	w := performJSON(t, r, http.MethodPatch, "/api/v1/emails/42", gin.H{"is_read": true})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isRead":true`)
	repo.AssertExpectations(t)
}

func TestEmailHandlerUpdateNoFields(t *testing.T) {
	repo := new(mockEmailRepo)
	r := newEmailRouter(repo, userAuth(7))

	w := performJSON(t, r, http.MethodPatch, "/api/v1/emails/42", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no valid fields to update")
}

func TestEmailHandlerDeleteSoft(t *testing.T) {
	ownerID := int64(7)
	repo := new(mockEmailRepo)
	repo.On("FindOwned", mock.Anything, int64(42), repositories.OwnershipFilter{OwnerID: &ownerID}).
		Return(&entities.Email{ID: 42}, nil)
	repo.On("SoftDelete", mock.Anything, int64(42)).Return(nil)
	r := newEmailRouter(repo, userAuth(7))

	w := performJSON(t, r, http.MethodDelete, "/api/v1/emails/42", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"permanent":false`)
	repo.AssertNotCalled(t, "HardDelete", mock.Anything, mock.Anything)
}

func TestEmailHandlerDeletePermanent(t *testing.T) {
	ownerID := int64(7)
	repo := new(mockEmailRepo)
	repo.On("FindOwned", mock.Anything, int64(42),
		repositories.OwnershipFilter{OwnerID: &ownerID, IncludeDeleted: true}).
		Return(&entities.Email{ID: 42}, nil)
	repo.On("HardDelete", mock.Anything, int64(42)).Return(nil)
	r := newEmailRouter(repo, userAuth(7))

	w := performJSON(t, r, http.MethodDelete, "/api/v1/emails/42?permanent=true", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"permanent":true`)
}

func TestEmailHandlerStats(t *testing.T) {
	ownerID := int64(7)
	repo := new(mockEmailRepo)
	repo.On("Stats", mock.Anything, &ownerID).
		Return(&entities.EmailStats{Total: 12, Unread: 3, Inbox: 10, Trash: 2}, nil)
	r := newEmailRouter(repo, userAuth(7))

	w := performJSON(t, r, http.MethodGet, "/api/v1/emails/stats", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unread":3`)
}

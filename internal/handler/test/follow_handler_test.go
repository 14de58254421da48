package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"feedgram/internal/models"
	"feedgram/internal/repository"
	"feedgram/internal/service"
)

func TestFollow(t *testing.T) {
	t.Run("public account follows immediately", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.follow.On("Follow", mock.Anything, "u1", "u2").
			Return(service.StatusFollowing, nil)

		req := asUser(httptest.NewRequest(http.MethodPost, "/api/users/u2/follow", nil), "u1")
		req = mux.SetURLVars(req, map[string]string{"id": "u2"})
		rec := httptest.NewRecorder()

		h.Follow(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "following", resp.Status)
	})

	t.Run("private account queues a request", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.follow.On("Follow", mock.Anything, "u1", "u2").
			Return(service.StatusPending, nil)

		req := asUser(httptest.NewRequest(http.MethodPost, "/api/users/u2/follow", nil), "u1")
		req = mux.SetURLVars(req, map[string]string{"id": "u2"})
		rec := httptest.NewRecorder()

		h.Follow(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "pending", resp.Status)
		assert.Contains(t, resp.Message, "request")
	})

	t.Run("following yourself returns 400", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.follow.On("Follow", mock.Anything, "u1", "u1").
			Return("", service.ErrSelfFollow)

		req := asUser(httptest.NewRequest(http.MethodPost, "/api/users/u1/follow", nil), "u1")
		req = mux.SetURLVars(req, map[string]string{"id": "u1"})
		rec := httptest.NewRecorder()

		h.Follow(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown target returns 404", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.follow.On("Follow", mock.Anything, "u1", "ghost").
			Return("", repository.ErrNotFound)

		req := asUser(httptest.NewRequest(http.MethodPost, "/api/users/ghost/follow", nil), "u1")
		req = mux.SetURLVars(req, map[string]string{"id": "ghost"})
		rec := httptest.NewRecorder()

		h.Follow(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAcceptFollowRequest(t *testing.T) {
	t.Run("accepts a pending request", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.follow.On("AcceptRequest", mock.Anything, "u2", "u1").Return(nil)

		req := asUser(httptest.NewRequest(http.MethodPost, "/api/follow-requests/u1/accept", nil), "u2")
		req = mux.SetURLVars(req, map[string]string{"id": "u1"})
		rec := httptest.NewRecorder()

		h.AcceptFollowRequest(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no pending request returns 400", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.follow.On("AcceptRequest", mock.Anything, "u2", "u1").
			Return(repository.ErrNoSuchRequest)

		req := asUser(httptest.NewRequest(http.MethodPost, "/api/follow-requests/u1/accept", nil), "u2")
		req = mux.SetURLVars(req, map[string]string{"id": "u1"})
		rec := httptest.NewRecorder()

		h.AcceptFollowRequest(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTogglePrivacy(t *testing.T) {
	h, mocks := newTestHandlers()

	mocks.follow.On("TogglePrivacy", mock.Anything, "u1").
		Return(true, "Account is now private. Only your followers can see your posts.", nil)

	req := asUser(httptest.NewRequest(http.MethodPatch, "/api/profile/privacy", nil), "u1")
	rec := httptest.NewRecorder()

	h.TogglePrivacy(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		IsPrivate bool   `json:"isPrivate"`
		Message   string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.IsPrivate)
	assert.Contains(t, resp.Message, "private")
}

func TestFollowers(t *testing.T) {
	t.Run("private account hides the list from strangers", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.follow.On("Followers", mock.Anything, "u1", "u2").
			Return(nil, service.ErrForbidden)

		req := asUser(httptest.NewRequest(http.MethodGet, "/api/users/u2/followers", nil), "u1")
		req = mux.SetURLVars(req, map[string]string{"id": "u2"})
		rec := httptest.NewRecorder()

		h.Followers(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("visible account lists followers", func(t *testing.T) {
		h, mocks := newTestHandlers()

		mocks.follow.On("Followers", mock.Anything, "u1", "u2").
			Return([]models.UserSummary{{UserID: "u3", Username: "carol"}}, nil)

		req := asUser(httptest.NewRequest(http.MethodGet, "/api/users/u2/followers", nil), "u1")
		req = mux.SetURLVars(req, map[string]string{"id": "u2"})
		rec := httptest.NewRecorder()

		h.Followers(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var followers []models.UserSummary
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&followers))
		assert.Len(t, followers, 1)
	})
}

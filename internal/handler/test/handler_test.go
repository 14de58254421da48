package test

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"feedgram/internal/config"
	handlers "feedgram/internal/handler"
)

type testMocks struct {
	auth   *MockAuthService
	user   *MockUserService
	post   *MockPostService
	follow *MockFollowService
	chat   *MockChatService
}

func newTestHandlers() (*handlers.Handlers, *testMocks) {
	mocks := &testMocks{
		auth:   new(MockAuthService),
		user:   new(MockUserService),
		post:   new(MockPostService),
		follow: new(MockFollowService),
		chat:   new(MockChatService),
	}

	h := &handlers.Handlers{
		AuthService:   mocks.auth,
		UserService:   mocks.user,
		PostService:   mocks.post,
		FollowService: mocks.follow,
		ChatService:   mocks.chat,
		Cfg: &config.Config{
			JWTSecretKey:        "test-secret",
			AccessTokenDuration: time.Hour,
			MaxUploadSize:       10 * 1024 * 1024,
		},
		Validate: validator.New(),
	}

	return h, mocks
}

// asUser mimics the auth middleware by planting the user id in the
// request context.
func asUser(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), "userID", userID)
	return r.WithContext(ctx)
}

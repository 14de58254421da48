package test

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"feedgram/internal/models"
	"feedgram/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) GetUserFromToken(tokenString string) (*models.User, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, password string) error {
	args := m.Called(ctx, token, password)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockUserService) UserProfile(ctx context.Context, viewerID, targetID string) (*models.Profile, error) {
	args := m.Called(ctx, viewerID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, req service.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteAccount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) Search(ctx context.Context, viewerID, query string) ([]models.UserSummary, error) {
	args := m.Called(ctx, viewerID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, postID, userID, title, content string) error {
	args := m.Called(ctx, postID, userID, title, content)
	return args.Error(0)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockPostService) HomeFeed(ctx context.Context, viewerID string) ([]models.Post, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) Like(ctx context.Context, postID, userID string) (*models.Post, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Unlike(ctx context.Context, postID, userID string) (*models.Post, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, requesterID, targetID string) (string, error) {
	args := m.Called(ctx, requesterID, targetID)
	return args.String(0), args.Error(1)
}

func (m *MockFollowService) Unfollow(ctx context.Context, requesterID, targetID string) error {
	args := m.Called(ctx, requesterID, targetID)
	return args.Error(0)
}

func (m *MockFollowService) AcceptRequest(ctx context.Context, targetID, requesterID string) error {
	args := m.Called(ctx, targetID, requesterID)
	return args.Error(0)
}

func (m *MockFollowService) RejectRequest(ctx context.Context, targetID, requesterID string) error {
	args := m.Called(ctx, targetID, requesterID)
	return args.Error(0)
}

func (m *MockFollowService) PendingRequests(ctx context.Context, targetID string) ([]models.UserSummary, error) {
	args := m.Called(ctx, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

func (m *MockFollowService) Status(ctx context.Context, requesterID, targetID string) (string, error) {
	args := m.Called(ctx, requesterID, targetID)
	return args.String(0), args.Error(1)
}

func (m *MockFollowService) TogglePrivacy(ctx context.Context, userID string) (bool, string, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockFollowService) Followers(ctx context.Context, viewerID, userID string) ([]models.UserSummary, error) {
	args := m.Called(ctx, viewerID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

func (m *MockFollowService) Following(ctx context.Context, viewerID, userID string) ([]models.UserSummary, error) {
	args := m.Called(ctx, viewerID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

func (m *MockFollowService) CanView(ctx context.Context, viewerID string, owner *models.User) (bool, error) {
	args := m.Called(ctx, viewerID, owner)
	return args.Bool(0), args.Error(1)
}

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	args := m.Called(ctx, senderID, receiverID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockChatService) History(ctx context.Context, viewerID, otherID string) ([]models.Message, error) {
	args := m.Called(ctx, viewerID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockChatService) MarkRead(ctx context.Context, senderID, viewerID string) (int64, error) {
	args := m.Called(ctx, senderID, viewerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChatService) Partners(ctx context.Context, viewerID string) ([]models.ChatPartner, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatPartner), args.Error(1)
}

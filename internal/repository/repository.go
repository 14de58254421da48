package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"feedgram/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
	SearchUsers(ctx context.Context, query, excludeUserID string, limit int) ([]models.UserSummary, error)
	SetResetToken(ctx context.Context, userID, token string, expires time.Time) error
	GetUserByResetToken(ctx context.Context, token string) (*models.User, error)
	ResetPassword(ctx context.Context, userID, password string) error
}

type FollowRepository interface {
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	HasPendingRequest(ctx context.Context, requesterID, targetID string) (bool, error)
	CreateFollow(ctx context.Context, followerID, followedID string) error
	DeleteFollow(ctx context.Context, followerID, followedID string) error
	CreatePendingRequest(ctx context.Context, requesterID, targetID string) error
	DeletePendingRequest(ctx context.Context, requesterID, targetID string) (bool, error)
	AcceptRequest(ctx context.Context, targetID, requesterID string) error
	ListFollowers(ctx context.Context, userID string) ([]models.UserSummary, error)
	ListFollowing(ctx context.Context, userID string) ([]models.UserSummary, error)
	ListPendingRequests(ctx context.Context, targetID string) ([]models.UserSummary, error)
	CountFollowers(ctx context.Context, userID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)
	TogglePrivacy(ctx context.Context, userID string) (bool, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID, viewerID string) (*models.Post, error)
	GetByUserID(ctx context.Context, ownerID, viewerID string) ([]models.Post, error)
	GetFeed(ctx context.Context, viewerID string, limit int) ([]models.Post, error)
	Update(ctx context.Context, postID, userID, title, content string) error
	Delete(ctx context.Context, postID string) error
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetHistory(ctx context.Context, userA, userB string, limit int) ([]models.Message, error)
	MarkRead(ctx context.Context, senderID, receiverID string) (int64, error)
	ListPartners(ctx context.Context, userID string) ([]models.ChatPartner, error)
}

type Repository struct {
	User    UserRepository
	Follow  FollowRepository
	Post    PostRepository
	Message MessageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Follow:  NewFollowRepository(db),
		Post:    NewPostRepository(db),
		Message: NewMessageRepository(db),
	}
}

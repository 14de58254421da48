package service

import (
	"context"
	"io"
	"log"

	"feedgram/internal/config"
	"feedgram/internal/models"
	"feedgram/internal/repository"
	"feedgram/internal/storage"
)

const searchLimit = 10

type UpdateProfileRequest struct {
	UserID     string
	Username   string
	Email      string
	AvatarName string
	Avatar     io.Reader
	AvatarSize int64
}

type UserService interface {
	Profile(ctx context.Context, userID string) (*models.Profile, error)
	UserProfile(ctx context.Context, viewerID, targetID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error)
	DeleteAccount(ctx context.Context, userID string) error
	Search(ctx context.Context, viewerID, query string) ([]models.UserSummary, error)
}

type userService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
	storage    storage.Storage
	cfg        *config.Config
}

func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	storage storage.Storage,
	cfg *config.Config,
) UserService {
	return &userService{
		userRepo:   userRepo,
		followRepo: followRepo,
		postRepo:   postRepo,
		storage:    storage,
		cfg:        cfg,
	}
}

func (s *userService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.UserProfile(ctx, userID, userID)
}

// UserProfile returns the visibility-gated view of a profile. A private
// account that the viewer does not follow gets a reduced view: display
// fields and counts only, no posts, no member lists.
func (s *userService) UserProfile(ctx context.Context, viewerID, targetID string) (*models.Profile, error) {
	user, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	followersCount, err := s.followRepo.CountFollowers(ctx, targetID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.followRepo.CountFollowing(ctx, targetID)
	if err != nil {
		return nil, err
	}

	isFollowing, err := s.followRepo.IsFollowing(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	requestSent, err := s.followRepo.HasPendingRequest(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		User: models.UserSummary{
			UserID:    user.UserID,
			Username:  user.Username,
			AvatarURL: user.AvatarURL,
			IsPrivate: user.IsPrivate,
		},
		FollowersCount:    followersCount,
		FollowingCount:    followingCount,
		Posts:             []models.Post{},
		IsFollowing:       isFollowing,
		FollowRequestSent: requestSent,
	}

	if viewerID == targetID {
		profile.Email = user.Email
	}

	if !CanViewPosts(viewerID, targetID, user.IsPrivate, isFollowing) {
		return profile, nil
	}

	profile.CanViewPosts = true

	posts, err := s.postRepo.GetByUserID(ctx, targetID, viewerID)
	if err != nil {
		return nil, err
	}
	profile.Posts = posts

	followers, err := s.followRepo.ListFollowers(ctx, targetID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.ListFollowing(ctx, targetID)
	if err != nil {
		return nil, err
	}
	profile.Followers = followers
	profile.Following = following

	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	oldAvatarObject := user.AvatarObject
	if req.Avatar != nil {
		objectName, avatarURL, err := s.storage.UploadAvatar(ctx, req.UserID, req.AvatarName, req.Avatar, req.AvatarSize)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = &avatarURL
		user.AvatarObject = &objectName
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if req.Avatar != nil && user.AvatarObject != nil {
			s.storage.DeleteObject(ctx, *user.AvatarObject)
		}
		return nil, err
	}

	// The replaced avatar is unreferenced now.
	if req.Avatar != nil && oldAvatarObject != nil {
		if err := s.storage.DeleteObject(ctx, *oldAvatarObject); err != nil {
			log.Printf("warning: could not delete old avatar %s: %v", *oldAvatarObject, err)
		}
	}

	return user, nil
}

// DeleteAccount removes the user, their posts and every reference to the
// account in other users' relationship sets. Stored objects are removed
// best effort after the database cascade.
func (s *userService) DeleteAccount(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	posts, err := s.postRepo.GetByUserID(ctx, userID, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	for _, post := range posts {
		if post.ImageObject != nil {
			if err := s.storage.DeleteObject(ctx, *post.ImageObject); err != nil {
				log.Printf("warning: could not delete post image %s: %v", *post.ImageObject, err)
			}
		}
	}
	if user.AvatarObject != nil {
		if err := s.storage.DeleteObject(ctx, *user.AvatarObject); err != nil {
			log.Printf("warning: could not delete avatar %s: %v", *user.AvatarObject, err)
		}
	}

	return nil
}

func (s *userService) Search(ctx context.Context, viewerID, query string) ([]models.UserSummary, error) {
	return s.userRepo.SearchUsers(ctx, query, viewerID, searchLimit)
}

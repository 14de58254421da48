package service

import (
	"context"

	"feedgram/internal/models"
	"feedgram/internal/repository"
)

// Follow status values reported to clients.
const (
	StatusFollowing    = "following"
	StatusPending      = "pending"
	StatusNotFollowing = "not_following"
)

type FollowService interface {
	Follow(ctx context.Context, requesterID, targetID string) (string, error)
	Unfollow(ctx context.Context, requesterID, targetID string) error
	AcceptRequest(ctx context.Context, targetID, requesterID string) error
	RejectRequest(ctx context.Context, targetID, requesterID string) error
	PendingRequests(ctx context.Context, targetID string) ([]models.UserSummary, error)
	Status(ctx context.Context, requesterID, targetID string) (string, error)
	TogglePrivacy(ctx context.Context, userID string) (bool, string, error)
	Followers(ctx context.Context, viewerID, userID string) ([]models.UserSummary, error)
	Following(ctx context.Context, viewerID, userID string) ([]models.UserSummary, error)
	CanView(ctx context.Context, viewerID string, owner *models.User) (bool, error)
}

type followService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewFollowService(userRepo repository.UserRepository, followRepo repository.FollowRepository) FollowService {
	return &followService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// CanViewPosts is the visibility gate: the owner always sees their own
// posts, public accounts are visible to everyone, and private accounts
// only to followers. Pure function of its inputs.
func CanViewPosts(viewerID, ownerID string, ownerIsPrivate, viewerFollowsOwner bool) bool {
	if viewerID == ownerID {
		return true
	}
	if !ownerIsPrivate {
		return true
	}
	return viewerFollowsOwner
}

func (s *followService) CanView(ctx context.Context, viewerID string, owner *models.User) (bool, error) {
	if viewerID == owner.UserID || !owner.IsPrivate {
		return true, nil
	}
	follows, err := s.followRepo.IsFollowing(ctx, viewerID, owner.UserID)
	if err != nil {
		return false, err
	}
	return CanViewPosts(viewerID, owner.UserID, owner.IsPrivate, follows), nil
}

func (s *followService) Follow(ctx context.Context, requesterID, targetID string) (string, error) {
	if requesterID == targetID {
		return "", ErrSelfFollow
	}

	target, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return "", err
	}

	following, err := s.followRepo.IsFollowing(ctx, requesterID, targetID)
	if err != nil {
		return "", err
	}
	if following {
		return "", repository.ErrAlreadyFollowing
	}

	if target.IsPrivate {
		// Re-requesting while already pending is a no-op.
		if err := s.followRepo.CreatePendingRequest(ctx, requesterID, targetID); err != nil {
			return "", err
		}
		return StatusPending, nil
	}

	if err := s.followRepo.CreateFollow(ctx, requesterID, targetID); err != nil {
		return "", err
	}
	return StatusFollowing, nil
}

// Unfollow is idempotent: removing a missing edge succeeds, and any
// pending request for the pair is purged as well.
func (s *followService) Unfollow(ctx context.Context, requesterID, targetID string) error {
	if _, err := s.userRepo.GetUserByID(ctx, targetID); err != nil {
		return err
	}
	return s.followRepo.DeleteFollow(ctx, requesterID, targetID)
}

func (s *followService) AcceptRequest(ctx context.Context, targetID, requesterID string) error {
	if _, err := s.userRepo.GetUserByID(ctx, requesterID); err != nil {
		return err
	}
	return s.followRepo.AcceptRequest(ctx, targetID, requesterID)
}

func (s *followService) RejectRequest(ctx context.Context, targetID, requesterID string) error {
	removed, err := s.followRepo.DeletePendingRequest(ctx, requesterID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return repository.ErrNoSuchRequest
	}
	return nil
}

func (s *followService) PendingRequests(ctx context.Context, targetID string) ([]models.UserSummary, error) {
	return s.followRepo.ListPendingRequests(ctx, targetID)
}

func (s *followService) Status(ctx context.Context, requesterID, targetID string) (string, error) {
	if _, err := s.userRepo.GetUserByID(ctx, targetID); err != nil {
		return "", err
	}

	following, err := s.followRepo.IsFollowing(ctx, requesterID, targetID)
	if err != nil {
		return "", err
	}
	if following {
		return StatusFollowing, nil
	}

	pending, err := s.followRepo.HasPendingRequest(ctx, requesterID, targetID)
	if err != nil {
		return "", err
	}
	if pending {
		return StatusPending, nil
	}

	return StatusNotFollowing, nil
}

func (s *followService) TogglePrivacy(ctx context.Context, userID string) (bool, string, error) {
	isPrivate, err := s.followRepo.TogglePrivacy(ctx, userID)
	if err != nil {
		return false, "", err
	}

	message := "Account is now public. Anyone can see your posts."
	if isPrivate {
		message = "Account is now private. Only your followers can see your posts."
	}

	return isPrivate, message, nil
}

// Followers applies the same gate as posts: a private account's follower
// list is only visible to the owner and to followers.
func (s *followService) Followers(ctx context.Context, viewerID, userID string) ([]models.UserSummary, error) {
	if err := s.requireListAccess(ctx, viewerID, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, userID)
}

func (s *followService) Following(ctx context.Context, viewerID, userID string) ([]models.UserSummary, error) {
	if err := s.requireListAccess(ctx, viewerID, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, userID)
}

func (s *followService) requireListAccess(ctx context.Context, viewerID, userID string) error {
	owner, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	canView, err := s.CanView(ctx, viewerID, owner)
	if err != nil {
		return err
	}
	if !canView {
		return ErrForbidden
	}
	return nil
}

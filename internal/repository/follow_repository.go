package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"feedgram/internal/models"
)

// followRepository stores each follow edge as a single row, so the
// follower and following views of the relationship can never disagree.
// Concurrent follows between the same pair are serialized by the
// primary key on (follower_id, followed_id).
type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)`

	err := r.db.GetContext(ctx, &exists, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("checking follow edge: %w", err)
	}

	return exists, nil
}

func (r *followRepository) HasPendingRequest(ctx context.Context, requesterID, targetID string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM follow_requests WHERE requester_id = $1 AND target_id = $2)`

	err := r.db.GetContext(ctx, &exists, query, requesterID, targetID)
	if err != nil {
		return false, fmt.Errorf("checking pending request: %w", err)
	}

	return exists, nil
}

func (r *followRepository) CreateFollow(ctx context.Context, followerID, followedID string) error {
	query := `INSERT INTO follows (follower_id, followed_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return ErrAlreadyFollowing
		}
		return fmt.Errorf("creating follow edge: %w", err)
	}

	return nil
}

// DeleteFollow removes the edge and any pending request for the pair in
// one transaction. Removing a missing edge is a no-op.
func (r *followRepository) DeleteFollow(ctx context.Context, followerID, followedID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting unfollow transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`,
		followerID, followedID); err != nil {
		return fmt.Errorf("deleting follow edge: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM follow_requests WHERE requester_id = $1 AND target_id = $2`,
		followerID, followedID); err != nil {
		return fmt.Errorf("deleting pending request: %w", err)
	}

	return tx.Commit()
}

// CreatePendingRequest is idempotent: re-requesting while already pending
// is a no-op, not an error.
func (r *followRepository) CreatePendingRequest(ctx context.Context, requesterID, targetID string) error {
	query := `
		INSERT INTO follow_requests (requester_id, target_id)
		VALUES ($1, $2)
		ON CONFLICT (requester_id, target_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, requesterID, targetID)
	if err != nil {
		return fmt.Errorf("creating pending request: %w", err)
	}

	return nil
}

func (r *followRepository) DeletePendingRequest(ctx context.Context, requesterID, targetID string) (bool, error) {
	query := `DELETE FROM follow_requests WHERE requester_id = $1 AND target_id = $2`

	result, err := r.db.ExecContext(ctx, query, requesterID, targetID)
	if err != nil {
		return false, fmt.Errorf("deleting pending request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking deleted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

// AcceptRequest removes the pending entry and establishes the edge as one
// atomic unit. A half-applied accept is never observable.
func (r *followRepository) AcceptRequest(ctx context.Context, targetID, requesterID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting accept transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM follow_requests WHERE requester_id = $1 AND target_id = $2`,
		requesterID, targetID)
	if err != nil {
		return fmt.Errorf("deleting pending request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNoSuchRequest
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followed_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		requesterID, targetID); err != nil {
		return fmt.Errorf("creating follow edge: %w", err)
	}

	return tx.Commit()
}

func (r *followRepository) ListFollowers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	var users []models.UserSummary

	query := `
		SELECT u.user_id, u.username, u.avatar_url, u.is_private
		FROM follows f
		JOIN users u ON u.user_id = f.follower_id
		WHERE f.followed_id = $1
		ORDER BY f.created_at DESC
	`

	err := r.db.SelectContext(ctx, &users, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing followers: %w", err)
	}

	return users, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID string) ([]models.UserSummary, error) {
	var users []models.UserSummary

	query := `
		SELECT u.user_id, u.username, u.avatar_url, u.is_private
		FROM follows f
		JOIN users u ON u.user_id = f.followed_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`

	err := r.db.SelectContext(ctx, &users, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing following: %w", err)
	}

	return users, nil
}

func (r *followRepository) ListPendingRequests(ctx context.Context, targetID string) ([]models.UserSummary, error) {
	var users []models.UserSummary

	query := `
		SELECT u.user_id, u.username, u.avatar_url, u.is_private
		FROM follow_requests fr
		JOIN users u ON u.user_id = fr.requester_id
		WHERE fr.target_id = $1
		ORDER BY fr.created_at DESC
	`

	err := r.db.SelectContext(ctx, &users, query, targetID)
	if err != nil {
		return nil, fmt.Errorf("listing pending requests: %w", err)
	}

	return users, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("counting followers: %w", err)
	}

	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("counting following: %w", err)
	}

	return count, nil
}

func (r *followRepository) TogglePrivacy(ctx context.Context, userID string) (bool, error) {
	var isPrivate bool

	query := `
		UPDATE users
		SET is_private = NOT is_private
		WHERE user_id = $1
		RETURNING is_private
	`

	err := r.db.GetContext(ctx, &isPrivate, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("toggling privacy: %w", err)
	}

	return isPrivate, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedgram/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// postColumns is the shared projection for post queries: the post row,
// the owner's display fields and the like annotations for the viewer.
const postColumns = `
	p.post_id, p.user_id, p.title, p.content, p.image_url, p.image_object, p.created_at,
	u.username, u.avatar_url,
	(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.post_id) AS like_count,
	EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.post_id AND pl.user_id = $1) AS liked_by_viewer
`

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	post.CreatedAt = time.Now()

	query := `
		INSERT INTO posts (post_id, user_id, title, content, image_url, image_object, created_at)
		VALUES (:post_id, :user_id, :title, :content, :image_url, :image_object, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("creating post: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	var post models.Post

	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.post_id = $2
	`

	err := r.db.GetContext(ctx, &post, query, viewerID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting post: %w", err)
	}

	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, ownerID, viewerID string) ([]models.Post, error) {
	var posts []models.Post

	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.user_id = $2
		ORDER BY p.created_at DESC
	`

	err := r.db.SelectContext(ctx, &posts, query, viewerID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("getting user posts: %w", err)
	}

	return posts, nil
}

// GetFeed applies the visibility gate in a single query: a post is
// visible when the viewer owns it, the owner is public, or the viewer
// follows the private owner. Ordered newest first; ties break on
// ascending like count, matching the documented product behavior.
func (r *postRepository) GetFeed(ctx context.Context, viewerID string, limit int) ([]models.Post, error) {
	var posts []models.Post

	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.user_id = $1
		   OR u.is_private = FALSE
		   OR EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.followed_id = p.user_id)
		ORDER BY p.created_at DESC, like_count ASC
		LIMIT $2
	`

	err := r.db.SelectContext(ctx, &posts, query, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("building feed: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, postID, userID, title, content string) error {
	query := `
		UPDATE posts
		SET title = $1, content = $2
		WHERE post_id = $3 AND user_id = $4
	`

	result, err := r.db.ExecContext(ctx, query, title, content, postID, userID)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, postID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// AddLike relies on the (post_id, user_id) primary key for the no-duplicates
// invariant: the second like from the same user fails the insert.
func (r *postRepository) AddLike(ctx context.Context, postID, userID string) error {
	query := `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return ErrAlreadyLiked
		}
		return fmt.Errorf("adding like: %w", err)
	}

	return nil
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("removing like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotLiked
	}

	return nil
}

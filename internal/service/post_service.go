package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"feedgram/internal/config"
	"feedgram/internal/models"
	"feedgram/internal/repository"
	"feedgram/internal/storage"
)

const feedLimit = 50

type CreatePostRequest struct {
	UserID    string
	Title     string
	Content   string
	ImageName string
	Image     io.Reader
	ImageSize int64
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, postID, userID, title, content string) error
	DeletePost(ctx context.Context, postID, userID string) error
	HomeFeed(ctx context.Context, viewerID string) ([]models.Post, error)
	Like(ctx context.Context, postID, userID string) (*models.Post, error)
	Unlike(ctx context.Context, postID, userID string) (*models.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  storage,
		cfg:      cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
	}

	if req.Image != nil {
		objectName, imageURL, err := p.storage.UploadPostImage(ctx, req.UserID, req.ImageName, req.Image, req.ImageSize)
		if err != nil {
			return nil, fmt.Errorf("uploading post image: %w", err)
		}
		post.ImageURL = &imageURL
		post.ImageObject = &objectName
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		if post.ImageObject != nil {
			p.storage.DeleteObject(ctx, *post.ImageObject)
		}
		return nil, err
	}

	return p.postRepo.GetByID(ctx, post.PostID, req.UserID)
}

func (p *postService) UpdatePost(ctx context.Context, postID, userID, title, content string) error {
	return p.postRepo.Update(ctx, postID, userID, title, content)
}

// DeletePost verifies ownership, removes the row and then cleans up the
// stored image. Object cleanup is best effort: the post is already gone.
func (p *postService) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := p.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return ErrForbidden
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if post.ImageObject != nil {
		if err := p.storage.DeleteObject(ctx, *post.ImageObject); err != nil {
			log.Printf("warning: could not delete post image %s: %v", *post.ImageObject, err)
		}
	}

	return nil
}

func (p *postService) HomeFeed(ctx context.Context, viewerID string) ([]models.Post, error) {
	return p.postRepo.GetFeed(ctx, viewerID, feedLimit)
}

func (p *postService) Like(ctx context.Context, postID, userID string) (*models.Post, error) {
	if _, err := p.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}

	if err := p.postRepo.AddLike(ctx, postID, userID); err != nil {
		return nil, err
	}

	return p.postRepo.GetByID(ctx, postID, userID)
}

func (p *postService) Unlike(ctx context.Context, postID, userID string) (*models.Post, error) {
	if _, err := p.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}

	if err := p.postRepo.RemoveLike(ctx, postID, userID); err != nil {
		return nil, err
	}

	return p.postRepo.GetByID(ctx, postID, userID)
}

package handlers

import (
	"github.com/go-playground/validator/v10"

	"feedgram/internal/config"
	"feedgram/internal/repository"
	"feedgram/internal/service"
)

type Handlers struct {
	AuthService   service.AuthService
	UserService   service.UserService
	PostService   service.PostService
	FollowService service.FollowService
	ChatService   service.ChatService
	UserRepo      repository.UserRepository
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:   service.Auth,
		UserService:   service.User,
		PostService:   service.Post,
		FollowService: service.Follow,
		ChatService:   service.Chat,
		UserRepo:      repo.User,
		Cfg:           config,
		Validate:      validator.New(),
	}
}

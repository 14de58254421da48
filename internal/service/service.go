package service

import (
	"feedgram/internal/config"
	"feedgram/internal/mailer"
	"feedgram/internal/repository"
	"feedgram/internal/storage"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Post   PostService
	Follow FollowService
	Chat   ChatService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, mail mailer.Mailer) *Service {
	return &Service{
		Auth:   NewAuthService(rep.User, cfg, mail),
		User:   NewUserService(rep.User, rep.Follow, rep.Post, storage, cfg),
		Post:   NewPostService(rep.Post, storage, cfg),
		Follow: NewFollowService(rep.User, rep.Follow),
		Chat:   NewChatService(rep.Message, rep.User),
	}
}

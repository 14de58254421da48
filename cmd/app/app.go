package app

import (
	"log"

	"feedgram/internal/config"
	"feedgram/internal/database"
	"feedgram/internal/mailer"
	"feedgram/internal/repository"
	"feedgram/internal/service"
	"feedgram/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Could not initialize MinIO: %v", err)
	}

	mail := mailer.NewMailer(cfg)

	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, mail)

	return db, repo, services
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"feedgram/internal/config"
	"feedgram/internal/mailer"
	"feedgram/internal/models"
	"feedgram/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	GetUserFromToken(tokenString string) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	mail     mailer.Mailer
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, mail mailer.Mailer) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		mail:     mail,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	user := &models.User{
		Username: username,
		Email:    email,
	}

	err := s.userRepo.CreateUser(ctx, user, password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", ErrUnauthorized
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generating access token: %w", err)
	}

	return user, token, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId":   user.UserID,
		"username": user.Username,
		"email":    user.Email,
		"exp":      time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken is the single verification routine for bearer tokens.
// The REST middleware and the websocket handshake both go through it.
func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return token, nil
}

func (s *authService) GetUserFromToken(tokenString string) (*models.User, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok1 := claims["userId"].(string)
	username, ok2 := claims["username"].(string)
	email, ok3 := claims["email"].(string)
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.New("invalid token claims")
	}

	return &models.User{
		UserID:   userID,
		Username: username,
		Email:    email,
	}, nil
}

// ForgotPassword stores a one-hour reset token and mails the reset link.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Errorf("generating reset token: %w", err)
	}
	resetToken := hex.EncodeToString(tokenBytes)

	expires := time.Now().Add(time.Hour)
	if err := s.userRepo.SetResetToken(ctx, user.UserID, resetToken, expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.cfg.FrontendBaseURL, resetToken)
	if err := s.mail.SendPasswordReset(user.Email, user.Username, resetURL); err != nil {
		return fmt.Errorf("sending reset email: %w", err)
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.userRepo.GetUserByResetToken(ctx, token)
	if err != nil {
		return err
	}

	return s.userRepo.ResetPassword(ctx, user.UserID, password)
}

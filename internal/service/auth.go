package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/folioadmin/folioadmin-go/internal/crypto"
	"github.com/folioadmin/folioadmin-go/internal/form"
	"github.com/folioadmin/folioadmin-go/internal/model"
	"github.com/folioadmin/folioadmin-go/internal/repository"
)

const msgLoginSuccess = "Login successful"

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles administrator sign-in.
type AuthService struct {
	repo   *repository.UserRepository
	tokens *crypto.TokenIssuer
	log    zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, tokens *crypto.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Login checks the credentials and returns a signed access token. Malformed
// input is reported as form.FieldErrors.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	f := form.Login{Username: req.Username, Password: req.Password}
	if err := f.Validate(); err != nil {
		return model.LoginResponse{}, err
	}

	user, err := s.repo.GetByUsername(ctx, f.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	match, err := crypto.VerifyPassword(f.Password, user.AuthHash)
	if err != nil {
		return model.LoginResponse{}, err
	}
	if !match {
		s.log.Warn().Str("username", f.Username).Msg("password mismatch")
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return model.LoginResponse{}, err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("administrator signed in")
	return model.LoginResponse{AccessToken: token, Message: msgLoginSuccess}, nil
}

// EnsureAdmin creates the administrator account unless the username is
// already taken. It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	f := form.Login{Username: username, Password: password}
	if err := f.Validate(); err != nil {
		return false, err
	}

	hash, err := crypto.HashPassword(f.Password)
	if err != nil {
		return false, err
	}

	err = s.repo.Create(ctx, &model.User{Username: f.Username, AuthHash: hash})
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.log.Info().Str("username", f.Username).Msg("administrator account created")
	return true, nil
}

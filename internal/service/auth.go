package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gkiran-dev/event-booking-backend/internal/auth"
	"github.com/gkiran-dev/event-booking-backend/internal/model"
)

// Login failures use one message for unknown emails and wrong passwords so
// responses never reveal which one occurred.
const loginFailedMsg = "invalid email or password"

// AuthService handles registration and login.
type AuthService struct {
	users  UserStore
	tokens *auth.Manager
	log    zerolog.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore, tokens *auth.Manager, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Register creates a new account with a bcrypt-hashed password. The role
// defaults to "user" when omitted. A taken email is a conflict.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("%w: user already exists", model.ErrConflict)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Password:  hash,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", user.ID.Hex()).
		Str("role", user.Role).
		Msg("user registered")

	return user, nil
}

// Login verifies credentials and issues a signed token embedding
// {id, email, role}.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", model.ErrAuthentication, loginFailedMsg)
		}
		return "", fmt.Errorf("look up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return "", fmt.Errorf("%w: %s", model.ErrAuthentication, loginFailedMsg)
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

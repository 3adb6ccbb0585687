package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login, and token-to-user resolution.
type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new user with a bcrypt-hashed password and a fresh
// public identifier. Usernames are unique; a duplicate fails with
// models.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		PublicID: uuid.New().String(),
		Username: username,
		Password: string(hashed),
		IsAdmin:  false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a token. Missing fields, an
// unknown username, and a wrong password each fail with their own sentinel so
// the handler can map them to distinct statuses.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", models.ErrMissingLogin
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.ErrUnknownUser
	}

	// bcrypt comparison is constant-time on the hash.
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", models.ErrWrongPassword
	}

	return s.tokens.Issue(user)
}

// Authenticate verifies a raw token string and resolves its subject to a user
// record. Every failure mode collapses to models.ErrInvalidToken; callers
// cannot distinguish a bad signature from a since-deleted user.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	publicID, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, models.ErrInvalidToken
	}

	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrInvalidToken
	}
	return user, nil
}

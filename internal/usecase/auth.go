package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/megano/internal/domain/errors"
	"github.com/polkiloo/megano/internal/domain/model"
	"github.com/polkiloo/megano/internal/domain/repository"
	pkgAuth "github.com/polkiloo/megano/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle, profiles and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new user with an empty profile and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, name, username, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, username, name, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// ChangePassword verifies the current password and stores a new hash.
func (u *AuthUseCase) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := u.hasher.Compare(usr.PasswordHash, current); err != nil {
		return domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(next)
	if err != nil {
		return err
	}

	return u.users.UpdatePassword(ctx, userID, hash)
}

// Profile fetches the user's contact data.
func (u *AuthUseCase) Profile(ctx context.Context, userID int64) (*model.Profile, error) {
	return u.users.GetProfile(ctx, userID)
}

// UpdateProfile stores the submitted contact data.
func (u *AuthUseCase) UpdateProfile(ctx context.Context, profile model.Profile) (*model.Profile, error) {
	if err := u.users.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return u.users.GetProfile(ctx, profile.UserID)
}

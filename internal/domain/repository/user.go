package repository

import (
	"context"

	"github.com/polkiloo/megano/internal/domain/model"
)

// UserRepository describes persistence operations for users and profiles.
type UserRepository interface {
	Create(ctx context.Context, username, firstName, passwordHash string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	GetProfile(ctx context.Context, userID int64) (*model.Profile, error)
	UpdateProfile(ctx context.Context, profile model.Profile) error
}

package repository

import (
	"context"

	"go-hospital-management/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	// Create persists the user together with its role profile in a
	// single transaction. The unique index on username is the
	// authoritative duplicate guard.
	Create(ctx context.Context, user *entity.User) error
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// EmailTaken reports whether another user (excluding excludeID)
	// already owns the given email.
	EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	// Update persists the user and its loaded profile atomically.
	Update(ctx context.Context, user *entity.User) error
	FindByRole(ctx context.Context, roleID int) ([]entity.User, error)
	List(ctx context.Context, offset, limit int) ([]entity.User, int64, error)
}

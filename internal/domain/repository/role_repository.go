package repository

import (
	"context"

	"go-hospital-management/internal/domain/entity"
)

type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	// Seed inserts the closed role set if missing.
	Seed(ctx context.Context, roles []entity.Role) error
}

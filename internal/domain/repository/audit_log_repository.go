package repository

import (
	"context"

	"go-hospital-management/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindRecent(ctx context.Context, offset, limit int) ([]entity.AuditLog, int64, error)
}

package usecase

import (
	"context"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AdminUsecase interface {
	ListUsers(ctx context.Context, page, limit int) ([]dto.UserResponse, int64, error)
	ListAuditLogs(ctx context.Context, page, limit int) ([]dto.AuditLogResponse, int64, error)
}

type adminUsecase struct {
	log       *logrus.Logger
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
}

func NewAdminUsecase(log *logrus.Logger, userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) AdminUsecase {
	return &adminUsecase{
		log:       log,
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

func (u *adminUsecase) ListUsers(ctx context.Context, page, limit int) ([]dto.UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := u.userRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, 0, err
	}

	return converter.UsersToResponses(users), total, nil
}

func (u *adminUsecase) ListAuditLogs(ctx context.Context, page, limit int) ([]dto.AuditLogResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := u.auditRepo.FindRecent(ctx, (page-1)*limit, limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, 0, err
	}

	return converter.AuditLogsToResponses(logs), total, nil
}

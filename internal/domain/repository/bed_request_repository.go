package repository

import (
	"context"

	"go-hospital-management/internal/domain/entity"

	"github.com/google/uuid"
)

type BedRequestRepository interface {
	// CreatePending creates a pending request for the patient unless one
	// already exists. Returns the effective request and whether a new
	// row was created; when created is false the returned request is the
	// patient's existing pending one (possibly targeting a different
	// hospital). The check and insert run in one transaction.
	CreatePending(ctx context.Context, patientID, hospitalID uuid.UUID) (*entity.BedRequest, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BedRequest, error)
	FindPendingByPatient(ctx context.Context, patientID uuid.UUID) (*entity.BedRequest, error)
	FindPendingByHospital(ctx context.Context, hospitalID uuid.UUID) ([]entity.BedRequest, error)
	// UpdateStatusIfPending transitions the request out of pending.
	// Returns affected rows: 1 = success, 0 = not pending anymore.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status entity.BedRequestStatus) (int64, error)
}

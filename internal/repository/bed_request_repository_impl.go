package repository

import (
	"context"
	"errors"

	"go-hospital-management/internal/domain/entity"
	domainRepo "go-hospital-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bedRequestRepository struct {
	db *gorm.DB
}

func NewBedRequestRepository(db *gorm.DB) domainRepo.BedRequestRepository {
	return &bedRequestRepository{db: db}
}

// CreatePending enforces the one-pending-request-per-patient invariant.
// The existing pending row (if any) is locked before the insert; when no
// row exists yet the lock guards nothing, so the partial unique index on
// (patient_id) WHERE status = 'pending' is the authoritative guard
// against two first-time requests committing concurrently. Losing that
// race degrades to the normal already-pending path.
func (r *bedRequestRepository) CreatePending(ctx context.Context, patientID, hospitalID uuid.UUID) (*entity.BedRequest, bool, error) {
	var request *entity.BedRequest
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.BedRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("patient_id = ? AND status = ?", patientID, entity.BedRequestStatusPending).
			First(&existing).Error
		if err == nil {
			request = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		request = &entity.BedRequest{
			PatientID:  patientID,
			HospitalID: hospitalID,
			Status:     entity.BedRequestStatusPending,
		}
		if err := tx.Create(request).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		if isPendingConflict(err) {
			existing, findErr := r.FindPendingByPatient(ctx, patientID)
			if findErr != nil {
				return nil, false, findErr
			}
			if existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	return request, created, nil
}

// isPendingConflict reports whether the error is a unique violation of
// the one-pending-per-patient partial index.
func isPendingConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == "idx_bed_requests_patient_pending"
}

func (r *bedRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BedRequest, error) {
	var request entity.BedRequest
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Hospital").
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *bedRequestRepository) FindPendingByPatient(ctx context.Context, patientID uuid.UUID) (*entity.BedRequest, error) {
	var request entity.BedRequest
	err := r.db.WithContext(ctx).
		Preload("Hospital").
		Where("patient_id = ? AND status = ?", patientID, entity.BedRequestStatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *bedRequestRepository) FindPendingByHospital(ctx context.Context, hospitalID uuid.UUID) ([]entity.BedRequest, error) {
	var requests []entity.BedRequest
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("hospital_id = ? AND status = ?", hospitalID, entity.BedRequestStatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatusIfPending atomically transitions the request out of pending.
// Returns affected rows: 1 = success, 0 = already decided (prevents
// double-transition races).
func (r *bedRequestRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status entity.BedRequestStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.BedRequest{}).
		Where("id = ? AND status = ?", id, entity.BedRequestStatusPending).
		Update("status", status)
	return result.RowsAffected, result.Error
}

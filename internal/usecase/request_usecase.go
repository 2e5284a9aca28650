package usecase

import (
	"context"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"
	"go-hospital-management/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type RequestUsecase interface {
	ListHospitals(ctx context.Context) ([]dto.HospitalResponse, error)
	// RequestHospital sends a bed request to the hospital identified by
	// its username. Repeated calls for the same pair are idempotent; a
	// pending request to a different hospital is a conflict.
	RequestHospital(ctx context.Context, patientID uuid.UUID, hospitalUsername string) (*dto.BedRequestResponse, error)
	GetMyRequest(ctx context.Context, patientID uuid.UUID) (*dto.BedRequestResponse, error)
	CancelRequest(ctx context.Context, patientID uuid.UUID) error
	ListPendingRequests(ctx context.Context, hospitalID uuid.UUID) (*dto.BedRequestListResponse, error)
	// DecideRequest accepts or rejects a pending request targeting the
	// calling hospital.
	DecideRequest(ctx context.Context, hospitalID, requestID uuid.UUID, accept bool) (*dto.BedRequestResponse, error)
}

type requestUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	requestRepo  repository.BedRequestRepository
	auditService service.AuditService
}

func NewRequestUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	requestRepo repository.BedRequestRepository,
	auditService service.AuditService,
) RequestUsecase {
	return &requestUsecase{
		log:          log,
		userRepo:     userRepo,
		requestRepo:  requestRepo,
		auditService: auditService,
	}
}

func (u *requestUsecase) ListHospitals(ctx context.Context) ([]dto.HospitalResponse, error) {
	hospitals, err := u.userRepo.FindByRole(ctx, entity.RoleIDHospital)
	if err != nil {
		u.log.Warnf("Failed to list hospitals: %+v", err)
		return nil, err
	}
	return converter.HospitalsToResponses(hospitals), nil
}

func (u *requestUsecase) RequestHospital(ctx context.Context, patientID uuid.UUID, hospitalUsername string) (*dto.BedRequestResponse, error) {
	hospital, err := u.userRepo.FindByUsername(ctx, hospitalUsername)
	if err != nil {
		u.log.Warnf("Failed to find hospital %q: %+v", hospitalUsername, err)
		return nil, err
	}
	if hospital == nil || !hospital.IsHospital() {
		return nil, ErrHospitalNotFound
	}

	request, created, err := u.requestRepo.CreatePending(ctx, patientID, hospital.ID)
	if err != nil {
		u.log.Warnf("Failed to create bed request: %+v", err)
		return nil, err
	}

	if !created {
		// An outstanding request already exists. Same target: idempotent
		// success. Different target: the patient must cancel first.
		if request.HospitalID != hospital.ID {
			return nil, ErrRequestAlreadyPending
		}
		return converter.BedRequestToResponse(request), nil
	}

	u.auditService.Log(ctx, &patientID, entity.AuditActionRequestCreate, entity.JSON{
		"request_id": request.ID.String(),
		"hospital":   hospitalUsername,
	})

	u.log.Infof("Bed request created: id=%s, patient=%s, hospital=%s", request.ID, patientID, hospitalUsername)
	return converter.BedRequestToResponse(request), nil
}

func (u *requestUsecase) GetMyRequest(ctx context.Context, patientID uuid.UUID) (*dto.BedRequestResponse, error) {
	request, err := u.requestRepo.FindPendingByPatient(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find pending request for patient %s: %+v", patientID, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	return converter.BedRequestToResponse(request), nil
}

func (u *requestUsecase) CancelRequest(ctx context.Context, patientID uuid.UUID) error {
	request, err := u.requestRepo.FindPendingByPatient(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find pending request for patient %s: %+v", patientID, err)
		return err
	}
	if request == nil {
		return ErrRequestNotFound
	}

	affected, err := u.requestRepo.UpdateStatusIfPending(ctx, request.ID, entity.BedRequestStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel request %s: %+v", request.ID, err)
		return err
	}
	if affected == 0 {
		return ErrRequestNotPending
	}

	u.auditService.Log(ctx, &patientID, entity.AuditActionRequestCancel, entity.JSON{
		"request_id": request.ID.String(),
	})

	u.log.Infof("Bed request cancelled: id=%s, patient=%s", request.ID, patientID)
	return nil
}

func (u *requestUsecase) ListPendingRequests(ctx context.Context, hospitalID uuid.UUID) (*dto.BedRequestListResponse, error) {
	requests, err := u.requestRepo.FindPendingByHospital(ctx, hospitalID)
	if err != nil {
		u.log.Warnf("Failed to list pending requests for hospital %s: %+v", hospitalID, err)
		return nil, err
	}

	return &dto.BedRequestListResponse{
		Requests: converter.BedRequestsToResponses(requests),
		Total:    len(requests),
	}, nil
}

func (u *requestUsecase) DecideRequest(ctx context.Context, hospitalID, requestID uuid.UUID, accept bool) (*dto.BedRequestResponse, error) {
	request, err := u.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		u.log.Warnf("Failed to find request %s: %+v", requestID, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if request.HospitalID != hospitalID {
		return nil, ErrRequestNotOwned
	}

	status := entity.BedRequestStatusRejected
	action := entity.AuditActionRequestReject
	if accept {
		status = entity.BedRequestStatusAccepted
		action = entity.AuditActionRequestAccept
	}

	affected, err := u.requestRepo.UpdateStatusIfPending(ctx, requestID, status)
	if err != nil {
		u.log.Warnf("Failed to decide request %s: %+v", requestID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrRequestNotPending
	}

	request.Status = status

	u.auditService.Log(ctx, &hospitalID, action, entity.JSON{
		"request_id": requestID.String(),
		"patient_id": request.PatientID.String(),
	})

	u.log.Infof("Bed request %s: id=%s, hospital=%s", status, requestID, hospitalID)
	return converter.BedRequestToResponse(request), nil
}

package handler

import (
	"encoding/json"
	"net/http"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/response"
	"go-hospital-management/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type HospitalHandler struct {
	requestUsecase usecase.RequestUsecase
	validator      *validator.CustomValidator
}

func NewHospitalHandler(requestUsecase usecase.RequestUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		requestUsecase: requestUsecase,
		validator:      validator,
	}
}

// ListHospitals returns the public projection of all hospital accounts
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.requestUsecase.ListHospitals(r.Context())
	if err != nil {
		response.InternalServerError(w, "Error fetching hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", hospitals)
}

// CreateRequest sends a bed request from the calling patient to a hospital
func (h *HospitalHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No active session")
		return
	}

	var req dto.CreateBedRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.requestUsecase.RequestHospital(r.Context(), userID, req.To)
	if err != nil {
		switch err {
		case usecase.ErrHospitalNotFound:
			response.NotFound(w, "Hospital not found")
		case usecase.ErrRequestAlreadyPending:
			response.Conflict(w, "A request to another hospital is already pending")
		default:
			response.InternalServerError(w, "Error processing request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Request sent successfully", request)
}

// GetMyRequest returns the calling patient's outstanding request
func (h *HospitalHandler) GetMyRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No active session")
		return
	}

	request, err := h.requestUsecase.GetMyRequest(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrRequestNotFound:
			response.NotFound(w, "No pending request")
		default:
			response.InternalServerError(w, "Error fetching request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Request retrieved successfully", request)
}

// CancelRequest withdraws the calling patient's pending request
func (h *HospitalHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No active session")
		return
	}

	if err := h.requestUsecase.CancelRequest(r.Context(), userID); err != nil {
		switch err {
		case usecase.ErrRequestNotFound:
			response.NotFound(w, "No pending request")
		case usecase.ErrRequestNotPending:
			response.Conflict(w, "Request is no longer pending")
		default:
			response.InternalServerError(w, "Error cancelling request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Request cancelled successfully", nil)
}

// ListPendingRequests returns the calling hospital's pending set
func (h *HospitalHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No active session")
		return
	}

	requests, err := h.requestUsecase.ListPendingRequests(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Error fetching requests")
		return
	}

	response.Success(w, http.StatusOK, "Requests retrieved successfully", requests)
}

// AcceptRequest accepts a pending request targeting the calling hospital
func (h *HospitalHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, true)
}

// RejectRequest rejects a pending request targeting the calling hospital
func (h *HospitalHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRequest(w, r, false)
}

func (h *HospitalHandler) decideRequest(w http.ResponseWriter, r *http.Request, accept bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No active session")
		return
	}

	requestID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request id", nil)
		return
	}

	request, err := h.requestUsecase.DecideRequest(r.Context(), userID, requestID, accept)
	if err != nil {
		switch err {
		case usecase.ErrRequestNotFound:
			response.NotFound(w, "Request not found")
		case usecase.ErrRequestNotOwned:
			response.Forbidden(w, "Request does not belong to your hospital")
		case usecase.ErrRequestNotPending:
			response.Conflict(w, "Request is no longer pending")
		default:
			response.InternalServerError(w, "Error processing request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Request updated successfully", request)
}

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/response"
	"go-hospital-management/pkg/validator"
)

// maxAvatarBytes caps the decoded avatar at 10 MB. The request body is
// allowed slightly more so multipart framing does not eat into the
// file's budget.
const (
	maxAvatarBytes        = 10 << 20
	multipartFramingBytes = 64 << 10
)

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validator.CustomValidator
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase, validator *validator.CustomValidator) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
	}
}

// UpdateMe applies a partial update to the caller's own record
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No active session")
		return
	}

	var req dto.UpdateMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.profileUsecase.UpdateMe(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrEmailInUse:
			response.Conflict(w, "Email is already in use")
		case usecase.ErrRoleFieldNotAllowed:
			response.Error(w, http.StatusBadRequest, "Field not editable for your role", nil)
		case usecase.ErrInvalidBedCounts:
			response.Error(w, http.StatusBadRequest, "Empty beds cannot exceed total beds", nil)
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", user)
}

// NewAvatar accepts a multipart upload in field "avatar"
func (h *ProfileHandler) NewAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No active session")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes+multipartFramingBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Image must be 10 MB or less", nil)
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "No image file found", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.Error(w, http.StatusBadRequest, "Image must be 10 MB or less", nil)
			return
		}
		response.InternalServerError(w, "Failed to read image")
		return
	}
	if len(data) > maxAvatarBytes {
		response.Error(w, http.StatusBadRequest, "Image must be 10 MB or less", nil)
		return
	}

	user, err := h.profileUsecase.UpdateAvatar(r.Context(), userID, data)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrUnsupportedImageType:
			response.Error(w, http.StatusBadRequest, "Unsupported file type", nil)
		default:
			response.InternalServerError(w, "Failed to update avatar")
		}
		return
	}

	response.Success(w, http.StatusOK, "Avatar updated successfully", user)
}

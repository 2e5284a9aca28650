package usecase

import (
	"context"
	"encoding/base64"
	"fmt"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"
	"go-hospital-management/internal/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Image types accepted for avatars, by sniffed content type.
var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ProfileUsecase interface {
	// UpdateMe applies a partial self-update. A role-specific field the
	// caller's role does not own rejects the whole request rather than
	// being silently dropped.
	UpdateMe(ctx context.Context, userID uuid.UUID, req *dto.UpdateMeRequest) (*dto.UserResponse, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, data []byte) (*dto.UserResponse, error)
}

type profileUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewProfileUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) ProfileUsecase {
	return &profileUsecase{
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

func (u *profileUsecase) UpdateMe(ctx context.Context, userID uuid.UUID, req *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := checkRoleFieldOwnership(user, req); err != nil {
		return nil, err
	}

	oldValue := converter.UserToResponse(user)
	updated := false

	if req.Name != "" {
		user.Name = req.Name
		updated = true
	}

	if req.Email != "" {
		taken, err := u.userRepo.EmailTaken(ctx, req.Email, user.ID)
		if err != nil {
			u.log.Warnf("Failed to check email uniqueness: %+v", err)
			return nil, err
		}
		if taken {
			return nil, ErrEmailInUse
		}
		email := req.Email
		user.Email = &email
		updated = true
	}

	if req.Password != "" {
		// Policy already validated at the boundary; re-hash with a fresh
		// salt (bcrypt embeds one per hash).
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
		updated = true
	}

	switch user.RoleID {
	case entity.RoleIDPatient:
		if req.Phone != "" {
			user.PatientProfile.Phone = req.Phone
			updated = true
		}
	case entity.RoleIDDoctor:
		if req.Specialty != "" {
			user.DoctorProfile.Specialty = req.Specialty
			updated = true
		}
	case entity.RoleIDHospital:
		if req.TotalBeds != nil || req.EmptyBeds != nil {
			totalBeds := user.HospitalProfile.TotalBeds
			emptyBeds := user.HospitalProfile.EmptyBeds
			if req.TotalBeds != nil {
				totalBeds = *req.TotalBeds
			}
			if req.EmptyBeds != nil {
				emptyBeds = *req.EmptyBeds
			}
			if emptyBeds > totalBeds {
				return nil, ErrInvalidBedCounts
			}
			user.HospitalProfile.TotalBeds = totalBeds
			user.HospitalProfile.EmptyBeds = emptyBeds
			updated = true
		}
	}

	if !updated {
		return converter.UserToResponse(user), nil
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailInUse
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	newValue := converter.UserToResponse(user)
	u.auditService.LogUpdate(ctx, &user.ID, entity.AuditActionProfileUpdate, "user", user.ID.String(), oldValue, newValue)

	return newValue, nil
}

// checkRoleFieldOwnership rejects role-specific fields the caller's role
// does not own. Shared fields (name, email, password) are always allowed.
func checkRoleFieldOwnership(user *entity.User, req *dto.UpdateMeRequest) error {
	if req.Phone != "" && !user.IsPatient() {
		return ErrRoleFieldNotAllowed
	}
	if req.Specialty != "" && !user.IsDoctor() {
		return ErrRoleFieldNotAllowed
	}
	if (req.TotalBeds != nil || req.EmptyBeds != nil) && !user.IsHospital() {
		return ErrRoleFieldNotAllowed
	}
	return nil
}

func (u *profileUsecase) UpdateAvatar(ctx context.Context, userID uuid.UUID, data []byte) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// Sniff the real content type; the client-declared one is not trusted
	detected := mimetype.Detect(data)
	if !allowedAvatarTypes[detected.String()] {
		return nil, ErrUnsupportedImageType
	}

	user.Avatar = fmt.Sprintf("data:%s;base64,%s", detected.String(), base64.StdEncoding.EncodeToString(data))

	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to update avatar: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, &user.ID, entity.AuditActionAvatarUpdate, entity.JSON{
		"content_type": detected.String(),
		"size_bytes":   len(data),
	})

	return converter.UserToResponse(user), nil
}

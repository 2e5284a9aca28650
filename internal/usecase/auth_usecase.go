package usecase

import (
	"context"
	"errors"
	"strings"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"
	"go-hospital-management/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken         = errors.New("username already taken")
	ErrEmailInUse            = errors.New("email is already in use")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUserNotFound          = errors.New("user not found")
	ErrRoleNotRegisterable   = errors.New("role cannot be self-registered")
	ErrInvalidBedCounts      = errors.New("empty beds cannot exceed total beds")
	ErrRoleFieldNotAllowed   = errors.New("field not editable for this role")
	ErrUnsupportedImageType  = errors.New("unsupported file type")
	ErrHospitalNotFound      = errors.New("hospital not found")
	ErrRequestNotFound       = errors.New("request not found")
	ErrRequestNotPending     = errors.New("request is no longer pending")
	ErrRequestAlreadyPending = errors.New("a request to another hospital is already pending")
	ErrRequestNotOwned       = errors.New("request does not belong to this hospital")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	// Login verifies credentials and starts a server-side session.
	// It returns the sanitized user and the opaque session token.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error)
	Logout(ctx context.Context, token string, userID uuid.UUID) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
}

type authUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	sessionStore service.SessionStore
	auditService service.AuditService
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	sessionStore service.SessionStore,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		userRepo:     userRepo,
		sessionStore: sessionStore,
		auditService: auditService,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	roleID := entity.RoleIDByName(req.Role)
	if roleID == 0 || roleID == entity.RoleIDAuthority {
		return nil, ErrRoleNotRegisterable
	}

	// Pre-check for a friendly message; the unique index is the
	// authoritative guard against races.
	existing, err := u.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		u.log.Warnf("Failed to check username: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		RoleID:   roleID,
		Username: req.Username,
		Password: string(hashedPassword),
		Name:     strings.TrimSpace(req.Name),
	}
	if req.Email != "" {
		email := req.Email
		user.Email = &email
	}

	switch roleID {
	case entity.RoleIDPatient:
		user.PatientProfile = &entity.PatientProfile{Phone: req.Phone}
	case entity.RoleIDDoctor:
		user.DoctorProfile = &entity.DoctorProfile{Specialty: req.Specialty}
	case entity.RoleIDHospital:
		if req.EmptyBeds > req.TotalBeds {
			return nil, ErrInvalidBedCounts
		}
		user.HospitalProfile = &entity.HospitalProfile{
			TotalBeds: req.TotalBeds,
			EmptyBeds: req.EmptyBeds,
		}
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameTaken
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailInUse
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, &user.ID, entity.AuditActionUserRegister, entity.JSON{
		"username": user.Username,
		"role":     req.Role,
	})

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error) {
	user, err := u.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.sessionStore.Start(ctx, service.Identity{
		UserID: user.ID,
		RoleID: user.RoleID,
	})
	if err != nil {
		u.log.Warnf("Failed to start session: %+v", err)
		return nil, "", err
	}

	u.auditService.Log(ctx, &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"username": user.Username,
	})

	return converter.UserToResponse(user), token, nil
}

func (u *authUsecase) Logout(ctx context.Context, token string, userID uuid.UUID) error {
	if err := u.sessionStore.Destroy(ctx, token); err != nil {
		u.log.Warnf("Failed to destroy session: %+v", err)
		return err
	}

	u.auditService.Log(ctx, &userID, entity.AuditActionUserLogout, nil)

	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) CheckUsername(ctx context.Context, username string) (bool, error) {
	user, err := u.userRepo.FindByUsername(ctx, username)
	if err != nil {
		u.log.Warnf("Failed to check username availability: %+v", err)
		return false, err
	}
	return user == nil, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

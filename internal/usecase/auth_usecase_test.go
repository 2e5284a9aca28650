package usecase

import (
	"context"
	"testing"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (AuthUsecase, *fakeUserRepo, *fakeSessionStore) {
	userRepo := newFakeUserRepo()
	sessionStore := newFakeSessionStore()
	uc := NewAuthUsecase(logrus.New(), userRepo, sessionStore, newFakeAuditService())
	return uc, userRepo, sessionStore
}

func patientRegisterRequest(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Role:     entity.RolePatient,
		Name:     "Jane Doe",
		Username: username,
		Password: "abc123",
		Phone:    "+11234567890",
	}
}

func TestRegister_Patient(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()
	ctx := context.Background()

	user, err := uc.Register(ctx, patientRegisterRequest("jane_doe1"))
	require.NoError(t, err)
	assert.Equal(t, "jane_doe1", user.Username)
	assert.Equal(t, entity.RolePatient, user.Role)
	assert.Equal(t, "+11234567890", user.Phone)

	stored, err := userRepo.FindByUsername(ctx, "jane_doe1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.PatientProfile)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, patientRegisterRequest("jane_doe1"))
	require.NoError(t, err)

	// Differing other fields must not matter
	req := patientRegisterRequest("jane_doe1")
	req.Name = "Someone Else"
	req.Password = "different1"
	_, err = uc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_AuthorityNotSelfRegisterable(t *testing.T) {
	uc, _, _ := newAuthFixture()

	req := patientRegisterRequest("sneaky_admin")
	req.Role = entity.RoleAuthority
	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrRoleNotRegisterable)
}

func TestRegister_IgnoresUnownedRoleFields(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()
	ctx := context.Background()

	// A doctor supplying a patient field still registers; the unowned
	// field is dropped rather than stored or rejected.
	req := patientRegisterRequest("dr_house")
	req.Role = entity.RoleDoctor
	req.Specialty = "Cardiology"

	user, err := uc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDoctor, user.Role)
	assert.Empty(t, user.Phone)

	stored, err := userRepo.FindByUsername(ctx, "dr_house")
	require.NoError(t, err)
	require.NotNil(t, stored.DoctorProfile)
	assert.Nil(t, stored.PatientProfile)
}

func TestRegister_HospitalBedCounts(t *testing.T) {
	uc, _, _ := newAuthFixture()

	req := &dto.RegisterRequest{
		Role:      entity.RoleHospital,
		Name:      "General Hospital",
		Username:  "general_hospital",
		Password:  "abc123",
		TotalBeds: 10,
		EmptyBeds: 20,
	}
	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidBedCounts)
}

func TestRegister_PasswordNeverStoredInPlaintext(t *testing.T) {
	uc, userRepo, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, patientRegisterRequest("jane_doe1"))
	require.NoError(t, err)

	req := patientRegisterRequest("john_doe1")
	_, err = uc.Register(ctx, req)
	require.NoError(t, err)

	first, _ := userRepo.FindByUsername(ctx, "jane_doe1")
	second, _ := userRepo.FindByUsername(ctx, "john_doe1")

	// Same plaintext, distinct salts, both verifiable
	assert.NotEqual(t, "abc123", first.Password)
	assert.NotEqual(t, first.Password, second.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(first.Password), []byte("abc123")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(second.Password), []byte("abc123")))
}

func TestLogin(t *testing.T) {
	uc, _, sessionStore := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, patientRegisterRequest("jane_doe1"))
	require.NoError(t, err)

	user, token, err := uc.Login(ctx, &dto.LoginRequest{Username: "jane_doe1", Password: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "jane_doe1", user.Username)
	require.NotEmpty(t, token)

	identity, err := sessionStore.Get(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, entity.RoleIDPatient, identity.RoleID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, patientRegisterRequest("jane_doe1"))
	require.NoError(t, err)

	// One character off must fail like any other wrong password
	_, _, err = uc.Login(ctx, &dto.LoginRequest{Username: "jane_doe1", Password: "abc124"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = uc.Login(ctx, &dto.LoginRequest{Username: "nobody_here", Password: "abc123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	uc, userRepo, sessionStore := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, patientRegisterRequest("jane_doe1"))
	require.NoError(t, err)
	_, token, err := uc.Login(ctx, &dto.LoginRequest{Username: "jane_doe1", Password: "abc123"})
	require.NoError(t, err)

	user, _ := userRepo.FindByUsername(ctx, "jane_doe1")
	require.NoError(t, uc.Logout(ctx, token, user.ID))

	identity, err := sessionStore.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestSessionLifecycle(t *testing.T) {
	userRepo := newFakeUserRepo()
	sessionStore := newFakeSessionStore()
	auditService := newFakeAuditService()
	authUC := NewAuthUsecase(logrus.New(), userRepo, sessionStore, auditService)
	profileUC := NewProfileUsecase(logrus.New(), userRepo, auditService)
	ctx := context.Background()

	// register
	_, err := authUC.Register(ctx, patientRegisterRequest("jane_doe1"))
	require.NoError(t, err)

	// login
	_, token, err := authUC.Login(ctx, &dto.LoginRequest{Username: "jane_doe1", Password: "abc123"})
	require.NoError(t, err)

	// whoami: resolve session, then fetch the user
	identity, err := sessionStore.Get(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, identity)
	me, err := authUC.GetCurrentUser(ctx, identity.UserID)
	require.NoError(t, err)
	assert.Equal(t, "jane_doe1", me.Username)

	// updateme: the change is visible through the same session because
	// identity holds no user snapshot to go stale
	_, err = profileUC.UpdateMe(ctx, identity.UserID, &dto.UpdateMeRequest{Name: "Jane Updated"})
	require.NoError(t, err)

	me, err = authUC.GetCurrentUser(ctx, identity.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Updated", me.Name)

	// logout invalidates the token for good
	require.NoError(t, authUC.Logout(ctx, token, identity.UserID))
	identity, err = sessionStore.Get(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestCheckUsername(t *testing.T) {
	uc, _, _ := newAuthFixture()
	ctx := context.Background()

	available, err := uc.CheckUsername(ctx, "jane_doe1")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = uc.Register(ctx, patientRegisterRequest("jane_doe1"))
	require.NoError(t, err)

	available, err = uc.CheckUsername(ctx, "jane_doe1")
	require.NoError(t, err)
	assert.False(t, available)
}

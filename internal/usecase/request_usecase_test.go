package usecase

import (
	"context"
	"testing"

	"go-hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestFixture struct {
	uc          RequestUsecase
	userRepo    *fakeUserRepo
	requestRepo *fakeBedRequestRepo
	patientID   uuid.UUID
	hospitalID  uuid.UUID
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	requestRepo := newFakeBedRequestRepo()
	f := &requestFixture{
		uc:          NewRequestUsecase(logrus.New(), userRepo, requestRepo, newFakeAuditService()),
		userRepo:    userRepo,
		requestRepo: requestRepo,
	}
	f.patientID = seedUser(t, userRepo, entity.RoleIDPatient, "jane_doe1")
	f.hospitalID = seedUser(t, userRepo, entity.RoleIDHospital, "general_hospital")
	return f
}

func TestListHospitals(t *testing.T) {
	f := newRequestFixture(t)
	seedUser(t, f.userRepo, entity.RoleIDHospital, "city_clinic")
	seedUser(t, f.userRepo, entity.RoleIDDoctor, "dr_house")

	hospitals, err := f.uc.ListHospitals(context.Background())
	require.NoError(t, err)
	assert.Len(t, hospitals, 2)
}

func TestRequestHospital(t *testing.T) {
	f := newRequestFixture(t)

	request, err := f.uc.RequestHospital(context.Background(), f.patientID, "general_hospital")
	require.NoError(t, err)
	assert.Equal(t, string(entity.BedRequestStatusPending), request.Status)
	assert.Equal(t, f.patientID.String(), request.PatientID)
}

func TestRequestHospital_UnknownTarget(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.uc.RequestHospital(context.Background(), f.patientID, "no_such_user")
	assert.ErrorIs(t, err, ErrHospitalNotFound)
}

func TestRequestHospital_TargetNotHospital(t *testing.T) {
	f := newRequestFixture(t)
	seedUser(t, f.userRepo, entity.RoleIDDoctor, "dr_house")

	_, err := f.uc.RequestHospital(context.Background(), f.patientID, "dr_house")
	assert.ErrorIs(t, err, ErrHospitalNotFound)
}

func TestRequestHospital_RepeatIsIdempotent(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	first, err := f.uc.RequestHospital(ctx, f.patientID, "general_hospital")
	require.NoError(t, err)

	second, err := f.uc.RequestHospital(ctx, f.patientID, "general_hospital")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// The hospital sees the patient exactly once
	list, err := f.uc.ListPendingRequests(ctx, f.hospitalID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, f.patientID.String(), list.Requests[0].PatientID)
}

func TestRequestHospital_PendingElsewhere(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	seedUser(t, f.userRepo, entity.RoleIDHospital, "city_clinic")

	_, err := f.uc.RequestHospital(ctx, f.patientID, "general_hospital")
	require.NoError(t, err)

	_, err = f.uc.RequestHospital(ctx, f.patientID, "city_clinic")
	assert.ErrorIs(t, err, ErrRequestAlreadyPending)
}

func TestGetMyRequest(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	_, err := f.uc.GetMyRequest(ctx, f.patientID)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	created, err := f.uc.RequestHospital(ctx, f.patientID, "general_hospital")
	require.NoError(t, err)

	got, err := f.uc.GetMyRequest(ctx, f.patientID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCancelRequest(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	_, err := f.uc.RequestHospital(ctx, f.patientID, "general_hospital")
	require.NoError(t, err)

	require.NoError(t, f.uc.CancelRequest(ctx, f.patientID))

	_, err = f.uc.GetMyRequest(ctx, f.patientID)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	// A cancelled request no longer blocks a new one
	_, err = f.uc.RequestHospital(ctx, f.patientID, "general_hospital")
	assert.NoError(t, err)
}

func TestCancelRequest_NothingPending(t *testing.T) {
	f := newRequestFixture(t)

	err := f.uc.CancelRequest(context.Background(), f.patientID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestDecideRequest_Accept(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	created, err := f.uc.RequestHospital(ctx, f.patientID, "general_hospital")
	require.NoError(t, err)
	requestID := uuid.MustParse(created.ID)

	decided, err := f.uc.DecideRequest(ctx, f.hospitalID, requestID, true)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BedRequestStatusAccepted), decided.Status)

	list, err := f.uc.ListPendingRequests(ctx, f.hospitalID)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}

func TestDecideRequest_Reject(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	created, err := f.uc.RequestHospital(ctx, f.patientID, "general_hospital")
	require.NoError(t, err)

	decided, err := f.uc.DecideRequest(ctx, f.hospitalID, uuid.MustParse(created.ID), false)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BedRequestStatusRejected), decided.Status)
}

func TestDecideRequest_NotOwned(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	otherHospitalID := seedUser(t, f.userRepo, entity.RoleIDHospital, "city_clinic")

	created, err := f.uc.RequestHospital(ctx, f.patientID, "general_hospital")
	require.NoError(t, err)

	_, err = f.uc.DecideRequest(ctx, otherHospitalID, uuid.MustParse(created.ID), true)
	assert.ErrorIs(t, err, ErrRequestNotOwned)
}

func TestDecideRequest_AlreadyDecided(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	created, err := f.uc.RequestHospital(ctx, f.patientID, "general_hospital")
	require.NoError(t, err)
	requestID := uuid.MustParse(created.ID)

	_, err = f.uc.DecideRequest(ctx, f.hospitalID, requestID, true)
	require.NoError(t, err)

	_, err = f.uc.DecideRequest(ctx, f.hospitalID, requestID, false)
	assert.ErrorIs(t, err, ErrRequestNotPending)
}

func TestDecideRequest_UnknownID(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.uc.DecideRequest(context.Background(), f.hospitalID, uuid.New(), true)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfileUsecase struct {
	updateErr error
	avatarErr error
	gotBytes  int
	user      *dto.UserResponse
}

func (s *stubProfileUsecase) UpdateMe(ctx context.Context, userID uuid.UUID, req *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.user, nil
}

func (s *stubProfileUsecase) UpdateAvatar(ctx context.Context, userID uuid.UUID, data []byte) (*dto.UserResponse, error) {
	s.gotBytes = len(data)
	if s.avatarErr != nil {
		return nil, s.avatarErr
	}
	return s.user, nil
}

func avatarRequest(t *testing.T, payload []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/profile/newavatar", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
	ctx = context.WithValue(ctx, middleware.RoleIDKey, 1)
	return req.WithContext(ctx)
}

func TestNewAvatar(t *testing.T) {
	stub := &stubProfileUsecase{user: sampleUser()}
	h := NewProfileHandler(stub, validator.NewValidator())

	payload := bytes.Repeat([]byte{0xab}, 1024)
	rec := httptest.NewRecorder()
	h.NewAvatar(rec, avatarRequest(t, payload))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, len(payload), stub.gotBytes)
}

func TestNewAvatar_FullSizeFileAccepted(t *testing.T) {
	stub := &stubProfileUsecase{user: sampleUser()}
	h := NewProfileHandler(stub, validator.NewValidator())

	// Exactly at the limit; multipart framing must not eat into it
	payload := bytes.Repeat([]byte{0xab}, maxAvatarBytes)
	rec := httptest.NewRecorder()
	h.NewAvatar(rec, avatarRequest(t, payload))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, maxAvatarBytes, stub.gotBytes)
}

func TestNewAvatar_OversizedFileRejected(t *testing.T) {
	stub := &stubProfileUsecase{user: sampleUser()}
	h := NewProfileHandler(stub, validator.NewValidator())

	payload := bytes.Repeat([]byte{0xab}, maxAvatarBytes+1)
	rec := httptest.NewRecorder()
	h.NewAvatar(rec, avatarRequest(t, payload))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, stub.gotBytes)
}

func TestNewAvatar_MissingFile(t *testing.T) {
	h := NewProfileHandler(&stubProfileUsecase{user: sampleUser()}, validator.NewValidator())

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("note", "not a file"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/profile/newavatar", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.NewAvatar(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewAvatar_UnsupportedType(t *testing.T) {
	stub := &stubProfileUsecase{avatarErr: usecase.ErrUnsupportedImageType}
	h := NewProfileHandler(stub, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.NewAvatar(rec, avatarRequest(t, []byte("plain text")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

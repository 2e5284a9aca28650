package usecase

import (
	"context"
	"sync"

	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeUserRepo is an in-memory UserRepository. It simulates the unique
// index on username with the same pg error the real store would return.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username"}
		}
		if user.Email != nil && u.Email != nil && *u.Email == *user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
		}
	}
	user.ID = uuid.New()
	if user.PatientProfile != nil {
		user.PatientProfile.UserID = user.ID
	}
	if user.DoctorProfile != nil {
		user.DoctorProfile.UserID = user.ID
	}
	if user.HospitalProfile != nil {
		user.HospitalProfile.UserID = user.ID
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID != excludeID && u.Email != nil && *u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByRole(ctx context.Context, roleID int) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.User
	for _, u := range r.users {
		if u.RoleID == roleID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

// fakeSessionStore keeps sessions in a map with no expiry.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]service.Identity
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]service.Identity{}}
}

func (s *fakeSessionStore) Start(ctx context.Context, identity service.Identity) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.New().String()
	s.sessions[token] = identity
	return token, nil
}

func (s *fakeSessionStore) Get(ctx context.Context, token string) (*service.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &identity, nil
}

func (s *fakeSessionStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// fakeAuditService records actions instead of persisting them.
type fakeAuditService struct {
	mu      sync.Mutex
	actions []string
}

func newFakeAuditService() *fakeAuditService {
	return &fakeAuditService{}
}

func (s *fakeAuditService) Log(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
}

func (s *fakeAuditService) LogUpdate(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	s.Log(ctx, userID, action, nil)
}

// fakeBedRequestRepo enforces the same invariants as the gorm
// implementation: one pending request per patient, atomic transitions.
type fakeBedRequestRepo struct {
	mu       sync.Mutex
	requests []*entity.BedRequest
}

func newFakeBedRequestRepo() *fakeBedRequestRepo {
	return &fakeBedRequestRepo{}
}

func (r *fakeBedRequestRepo) CreatePending(ctx context.Context, patientID, hospitalID uuid.UUID) (*entity.BedRequest, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.PatientID == patientID && req.IsPending() {
			return req, false, nil
		}
	}
	req := &entity.BedRequest{
		ID:         uuid.New(),
		PatientID:  patientID,
		HospitalID: hospitalID,
		Status:     entity.BedRequestStatusPending,
	}
	r.requests = append(r.requests, req)
	return req, true, nil
}

func (r *fakeBedRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.BedRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, nil
}

func (r *fakeBedRequestRepo) FindPendingByPatient(ctx context.Context, patientID uuid.UUID) (*entity.BedRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.PatientID == patientID && req.IsPending() {
			return req, nil
		}
	}
	return nil, nil
}

func (r *fakeBedRequestRepo) FindPendingByHospital(ctx context.Context, hospitalID uuid.UUID) ([]entity.BedRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.BedRequest
	for _, req := range r.requests {
		if req.HospitalID == hospitalID && req.IsPending() {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeBedRequestRepo) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status entity.BedRequestStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id && req.IsPending() {
			req.Status = status
			return 1, nil
		}
	}
	return 0, nil
}

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/service"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/response"
	"go-hospital-management/pkg/validator"
)

type AuthHandler struct {
	authUsecase  usecase.AuthUsecase
	sessionStore service.SessionStore
	validator    *validator.CustomValidator
	cookieName   string
	sessionTTL   time.Duration
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	sessionStore service.SessionStore,
	validator *validator.CustomValidator,
	cookieName string,
	sessionTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		sessionStore: sessionStore,
		validator:    validator,
		cookieName:   cookieName,
		sessionTTL:   sessionTTL,
	}
}

// Register handles account creation for patient, doctor, and hospital roles
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUsernameTaken:
			response.Conflict(w, "Username is already taken")
		case usecase.ErrEmailInUse:
			response.Conflict(w, "Email is already in use")
		case usecase.ErrRoleNotRegisterable:
			response.Error(w, http.StatusBadRequest, "Role cannot be self-registered", nil)
		case usecase.ErrInvalidBedCounts:
			response.Error(w, http.StatusBadRequest, "Empty beds cannot exceed total beds", nil)
		default:
			response.InternalServerError(w, "Failed to register user")
		}
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", user)
}

// Login verifies credentials and issues the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, token, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid username or password")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(w, http.StatusOK, "Login successful", user)
}

// Logout destroys the session and clears the cookie. A failing store is
// surfaced as a server error, not swallowed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetSessionTokenFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "No active session")
		return
	}
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.authUsecase.Logout(r.Context(), token, userID); err != nil {
		response.InternalServerError(w, "Could not log out")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// Whoami reports the current session state. It always answers 200; a
// missing, expired, or unresolvable session is just loggedIn=false.
func (h *AuthHandler) Whoami(w http.ResponseWriter, r *http.Request) {
	loggedOut := dto.WhoamiResponse{LoggedIn: false, User: nil}

	cookie, err := r.Cookie(h.cookieName)
	if err != nil || cookie.Value == "" {
		response.JSON(w, http.StatusOK, loggedOut)
		return
	}

	identity, err := h.sessionStore.Get(r.Context(), cookie.Value)
	if err != nil || identity == nil {
		response.JSON(w, http.StatusOK, loggedOut)
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), identity.UserID)
	if err != nil {
		response.JSON(w, http.StatusOK, loggedOut)
		return
	}

	response.JSON(w, http.StatusOK, dto.WhoamiResponse{LoggedIn: true, User: user})
}

// CheckUsername reports whether a username is still available
func (h *AuthHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		response.Error(w, http.StatusBadRequest, "Username is required", nil)
		return
	}

	available, err := h.authUsecase.CheckUsername(r.Context(), username)
	if err != nil {
		response.InternalServerError(w, "Failed to check username")
		return
	}

	if !available {
		response.JSON(w, http.StatusConflict, dto.UsernameAvailabilityResponse{Available: false})
		return
	}

	response.JSON(w, http.StatusOK, dto.UsernameAvailabilityResponse{Available: true})
}

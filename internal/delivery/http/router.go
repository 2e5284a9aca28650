package http

import (
	"net/http"

	"go-hospital-management/internal/delivery/http/handler"
	"go-hospital-management/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	hospitalHandler   *handler.HospitalHandler
	adminHandler      *handler.AdminHandler
	sessionMiddleware *middleware.SessionMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	log               *logrus.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	hospitalHandler *handler.HospitalHandler,
	adminHandler *handler.AdminHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	log *logrus.Logger,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		hospitalHandler:   hospitalHandler,
		adminHandler:      adminHandler,
		sessionMiddleware: sessionMiddleware,
		corsMiddleware:    corsMiddleware,
		log:               log,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	api.HandleFunc("/whoami", r.authHandler.Whoami).Methods(http.MethodGet)
	api.HandleFunc("/username", r.authHandler.CheckUsername).Methods(http.MethodGet)

	// Session-gated auth routes
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.sessionMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodGet)

	// Profile routes (own record only)
	profile := api.PathPrefix("/profile").Subrouter()
	profile.Use(r.sessionMiddleware.Authenticate)
	profile.HandleFunc("/updateme", r.profileHandler.UpdateMe).Methods(http.MethodPut)
	profile.HandleFunc("/newavatar", r.profileHandler.NewAvatar).Methods(http.MethodPut)

	// Data routes
	data := api.PathPrefix("/data").Subrouter()
	data.Use(r.sessionMiddleware.Authenticate)
	data.HandleFunc("/hospitals", r.hospitalHandler.ListHospitals).Methods(http.MethodGet)

	// Patient side of the request workflow
	patientData := data.PathPrefix("/request").Subrouter()
	patientData.Use(middleware.RequirePatient)
	patientData.HandleFunc("", r.hospitalHandler.CreateRequest).Methods(http.MethodPost)
	patientData.HandleFunc("", r.hospitalHandler.GetMyRequest).Methods(http.MethodGet)
	patientData.HandleFunc("", r.hospitalHandler.CancelRequest).Methods(http.MethodDelete)

	// Hospital side of the request workflow
	hospitalData := data.PathPrefix("/requests").Subrouter()
	hospitalData.Use(middleware.RequireHospital)
	hospitalData.HandleFunc("", r.hospitalHandler.ListPendingRequests).Methods(http.MethodGet)
	hospitalData.HandleFunc("/{id}/accept", r.hospitalHandler.AcceptRequest).Methods(http.MethodPost)
	hospitalData.HandleFunc("/{id}/reject", r.hospitalHandler.RejectRequest).Methods(http.MethodPost)

	// Administrative routes (authority only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.sessionMiddleware.Authenticate)
	admin.Use(middleware.RequireAuthority)
	admin.HandleFunc("/users", r.adminHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/audit", r.adminHandler.ListAuditLogs).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(middleware.RequestLogging(r.log))

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

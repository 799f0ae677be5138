package http

import (
	"net/http"

	"telehealth-api/internal/delivery/http/handler"
	"telehealth-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router              *mux.Router
	log                 *logrus.Logger
	authHandler         *handler.AuthHandler
	alertHandler        *handler.AlertHandler
	reportHandler       *handler.SymptomReportHandler
	consultationHandler *handler.ConsultationHandler
	labResultHandler    *handler.LabResultHandler
	doctorHandler       *handler.DoctorHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	alertHandler *handler.AlertHandler,
	reportHandler *handler.SymptomReportHandler,
	consultationHandler *handler.ConsultationHandler,
	labResultHandler *handler.LabResultHandler,
	doctorHandler *handler.DoctorHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		log:                 log,
		authHandler:         authHandler,
		alertHandler:        alertHandler,
		reportHandler:       reportHandler,
		consultationHandler: consultationHandler,
		labResultHandler:    labResultHandler,
		doctorHandler:       doctorHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

// Setup registers every route. CORS wraps the router so preflight requests
// are answered even though no route declares OPTIONS.
func (r *Router) Setup() http.Handler {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Logging(r.log))
	r.router.Use(middleware.Recovery(r.log))

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/me", r.authHandler.UpdateProfile).Methods(http.MethodPatch)

	// Alerts: reads for everyone, writes for doctors
	alerts := api.PathPrefix("/alerts").Subrouter()
	alerts.Use(r.authMiddleware.Authenticate)
	alerts.HandleFunc("", r.alertHandler.GetAlerts).Methods(http.MethodGet)
	alerts.HandleFunc("/unread-count", r.alertHandler.GetUnreadCount).Methods(http.MethodGet)
	alerts.HandleFunc("/{id}", r.alertHandler.GetAlert).Methods(http.MethodGet)
	alerts.HandleFunc("/{id}/read", r.alertHandler.MarkAlertRead).Methods(http.MethodPatch)
	alerts.Handle("", middleware.RequireDoctor(http.HandlerFunc(r.alertHandler.CreateAlert))).Methods(http.MethodPost)
	alerts.Handle("/{id}", middleware.RequireDoctor(http.HandlerFunc(r.alertHandler.UpdateAlert))).Methods(http.MethodPatch)
	alerts.Handle("/{id}", middleware.RequireDoctor(http.HandlerFunc(r.alertHandler.DeleteAlert))).Methods(http.MethodDelete)

	// Symptom reports
	reports := api.PathPrefix("/reports").Subrouter()
	reports.Use(r.authMiddleware.Authenticate)
	reports.Handle("", middleware.RequirePatient(http.HandlerFunc(r.reportHandler.CreateReport))).Methods(http.MethodPost)
	reports.Handle("", middleware.RequireDoctor(http.HandlerFunc(r.reportHandler.GetReports))).Methods(http.MethodGet)
	reports.HandleFunc("/patient/{patientId}", r.reportHandler.GetPatientReports).Methods(http.MethodGet)
	reports.HandleFunc("/{id}", r.reportHandler.GetReport).Methods(http.MethodGet)
	reports.Handle("/{id}", middleware.RequireDoctor(http.HandlerFunc(r.reportHandler.ReviewReport))).Methods(http.MethodPatch)
	reports.Handle("/{id}", middleware.RequireDoctor(http.HandlerFunc(r.reportHandler.DeleteReport))).Methods(http.MethodDelete)

	// Consultations: participant checks live in the usecase
	consultations := api.PathPrefix("/consultations").Subrouter()
	consultations.Use(r.authMiddleware.Authenticate)
	consultations.HandleFunc("", r.consultationHandler.CreateConsultation).Methods(http.MethodPost)
	consultations.HandleFunc("", r.consultationHandler.GetConsultations).Methods(http.MethodGet)
	consultations.HandleFunc("/{id}", r.consultationHandler.GetConsultation).Methods(http.MethodGet)
	consultations.HandleFunc("/{id}", r.consultationHandler.UpdateConsultation).Methods(http.MethodPatch)
	consultations.HandleFunc("/{id}", r.consultationHandler.DeleteConsultation).Methods(http.MethodDelete)

	// Lab results
	labResults := api.PathPrefix("/lab-results").Subrouter()
	labResults.Use(r.authMiddleware.Authenticate)
	labResults.Handle("", middleware.RequireDoctor(http.HandlerFunc(r.labResultHandler.CreateLabResult))).Methods(http.MethodPost)
	labResults.HandleFunc("", r.labResultHandler.GetLabResults).Methods(http.MethodGet)
	labResults.HandleFunc("/{id}", r.labResultHandler.GetLabResult).Methods(http.MethodGet)
	labResults.Handle("/{id}", middleware.RequireDoctor(http.HandlerFunc(r.labResultHandler.UpdateLabResult))).Methods(http.MethodPatch)
	labResults.Handle("/{id}", middleware.RequireDoctor(http.HandlerFunc(r.labResultHandler.DeleteLabResult))).Methods(http.MethodDelete)

	// Doctor directory
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("", r.doctorHandler.GetDoctors).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Audit trail (doctors only)
	auditLogs := api.PathPrefix("/audit-logs").Subrouter()
	auditLogs.Use(r.authMiddleware.Authenticate)
	auditLogs.Use(middleware.RequireDoctor)
	auditLogs.HandleFunc("", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	auditLogs.HandleFunc("/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

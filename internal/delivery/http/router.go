package http

import (
	"net/http"

	"hospital-management-api/internal/delivery/http/handler"
	"hospital-management-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	appointmentHandler  *handler.AppointmentHandler
	prescriptionHandler *handler.PrescriptionHandler
	adminHandler        *handler.AdminHandler
	contactHandler      *handler.ContactHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	adminHandler *handler.AdminHandler,
	contactHandler *handler.ContactHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		appointmentHandler:  appointmentHandler,
		prescriptionHandler: prescriptionHandler,
		adminHandler:        adminHandler,
		contactHandler:      contactHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
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

	// Doctor directory (public, browsable without an account)
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Doctor management (admin creates/deletes; owner or admin updates)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.Handle("", middleware.RequireAdmin(http.HandlerFunc(r.doctorHandler.CreateDoctor))).Methods(http.MethodPost)
	doctors.Handle("/{id}", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.doctorHandler.UpdateDoctor))).Methods(http.MethodPut)
	doctors.Handle("/{id}", middleware.RequireAdmin(http.HandlerFunc(r.doctorHandler.DeleteDoctor))).Methods(http.MethodDelete)

	// Patient routes (protected; ownership enforced in the usecase)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Handle("", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.patientHandler.GetAllPatients))).Methods(http.MethodGet)
	patients.Handle("/me", middleware.RequirePatient(http.HandlerFunc(r.patientHandler.GetMyProfile))).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)

	// Appointment routes (protected; scope resolved per role in the usecase)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	appointments.Handle("", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.CreateAppointment))).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	appointments.Handle("/{id}", middleware.RequireAdmin(http.HandlerFunc(r.appointmentHandler.DeleteAppointment))).Methods(http.MethodDelete)

	// Prescription routes (protected)
	prescriptions := api.PathPrefix("/prescriptions").Subrouter()
	prescriptions.Use(r.authMiddleware.Authenticate)
	prescriptions.Handle("", middleware.RequireDoctor(http.HandlerFunc(r.prescriptionHandler.CreatePrescription))).Methods(http.MethodPost)
	prescriptions.Handle("/me", middleware.RequirePatient(http.HandlerFunc(r.prescriptionHandler.GetMyPrescriptions))).Methods(http.MethodGet)
	prescriptions.HandleFunc("/appointment/{appointmentId}", r.prescriptionHandler.GetPrescriptionByAppointment).Methods(http.MethodGet)
	prescriptions.Handle("/{id}", middleware.RequireDoctor(http.HandlerFunc(r.prescriptionHandler.UpdatePrescription))).Methods(http.MethodPut)

	// Contact routes (public submit, admin inbox)
	api.HandleFunc("/contact", r.contactHandler.SubmitContact).Methods(http.MethodPost)
	contact := api.PathPrefix("/contact").Subrouter()
	contact.Use(r.authMiddleware.Authenticate)
	contact.Use(middleware.RequireAdmin)
	contact.HandleFunc("", r.contactHandler.GetAllContacts).Methods(http.MethodGet)
	contact.HandleFunc("/{id}", r.contactHandler.UpdateContactStatus).Methods(http.MethodPut)
	contact.HandleFunc("/{id}", r.contactHandler.DeleteContact).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/analytics", r.adminHandler.GetAnalytics).Methods(http.MethodGet)
	admin.HandleFunc("/users", r.adminHandler.GetAllUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.adminHandler.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

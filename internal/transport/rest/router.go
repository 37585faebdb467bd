package rest

import (
	"database/sql"

	"github.com/frahmantamala/ld-portal/internal/auth"
	"github.com/frahmantamala/ld-portal/internal/certificate"
	"github.com/frahmantamala/ld-portal/internal/enrollment"
	"github.com/frahmantamala/ld-portal/internal/gamification"
	"github.com/frahmantamala/ld-portal/internal/profile"
	"github.com/frahmantamala/ld-portal/internal/report"
	"github.com/frahmantamala/ld-portal/internal/training"
	"github.com/frahmantamala/ld-portal/internal/transport/middleware"
	"github.com/frahmantamala/ld-portal/internal/transport/swagger"
	"github.com/frahmantamala/ld-portal/internal/user"
	"github.com/frahmantamala/ld-portal/pkg/monitoring"
	"github.com/go-chi/chi"
)

// Handlers groups the HTTP handlers mounted under /api/v1. A nil handler
// leaves its routes unregistered.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Training     *training.Handler
	Enrollment   *enrollment.Handler
	Profile      *profile.Handler
	Gamification *gamification.Handler
	Certificate  *certificate.Handler
	Report       *report.Handler
}

type Options struct {
	AllowedOrigins []string
	OpenAPIPath    string
	MetricsPath    string
	LoginLimiter   *middleware.IPRateLimiter
}

func RegisterAllRoutes(router chi.Router, db *sql.DB, h Handlers, rbac *auth.RBACAuthorization, opts Options) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.BodyLimit(middleware.MaxRequestBody))
	router.Use(middleware.LoggingMiddleware)
	router.Use(monitoring.MetricsMiddleware)
	router.Use(middleware.CORS(opts.AllowedOrigins))

	if opts.MetricsPath != "" {
		router.Handle(opts.MetricsPath, monitoring.PrometheusHandler())
	}
	if opts.OpenAPIPath != "" {
		router.Get(swagger.SpecRoute, swagger.SpecHandler(opts.OpenAPIPath))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth == nil {
			return
		}

		r.With(middleware.RateLimit(opts.LoginLimiter)).Post("/auth/login", h.Auth.Login)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.UserContext)

			admins := rbac.RequireAdmin()
			supervisors := rbac.RequireSupervisor()

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
				pr.Get("/departments", h.User.ListDepartments)

				pr.Group(func(ar chi.Router) {
					ar.Use(admins)
					ar.Post("/users", h.User.CreateUser)
					ar.Get("/users", h.User.ListUsers)
					ar.Post("/users/{id}/reportees", h.User.LinkReportee)
					ar.Post("/departments", h.User.CreateDepartment)
				})
			}

			if h.Training != nil {
				pr.Route("/trainings", func(tr chi.Router) {
					tr.Get("/", h.Training.ListTrainings)
					tr.Get("/mandatory/status", h.Training.MandatoryStatus)

					tr.Group(func(ar chi.Router) {
						ar.Use(admins)
						ar.Post("/", h.Training.CreateTraining)
						ar.Post("/assignments", h.Training.CreateAssignment)
						ar.Get("/assignments", h.Training.ListAssignments)
						ar.Get("/approvals", h.Training.ListApprovals)
					})

					tr.With(rbac.RequireSuperAdmin()).Post("/approvals/{id}/decision", h.Training.DecideApproval)
				})
			}

			if h.Enrollment != nil {
				pr.Route("/enrollments", func(er chi.Router) {
					er.Post("/", h.Enrollment.CreateEnrollment)
					er.Get("/", h.Enrollment.ListMine)
					er.Post("/{id}/complete", h.Enrollment.Complete)
					er.With(supervisors).Post("/attendance", h.Enrollment.RecordAttendance)
				})
			}

			if h.Profile != nil {
				pr.Route("/profiles", func(pfr chi.Router) {
					pfr.Get("/me", h.Profile.GetMyProfile)
					pfr.Patch("/me", h.Profile.UpdateMyProfile)
					pfr.Post("/me/certifications", h.Profile.AddMyCertification)
					pfr.Get("/users/{id}", h.Profile.GetUserProfile)
				})
			}

			if h.Gamification != nil {
				pr.Route("/quizzes", func(qr chi.Router) {
					qr.With(admins).Post("/", h.Gamification.CreateQuiz)
					qr.Get("/by-training/{id}", h.Gamification.ListByTraining)
					qr.Post("/{id}/submit", h.Gamification.SubmitQuiz)
				})
				pr.Get("/badges/me", h.Gamification.ListMyBadges)
			}

			if h.Certificate != nil {
				pr.Get("/certificates/me", h.Certificate.ListMine)
			}

			if h.Report != nil {
				pr.Route("/reports", func(rr chi.Router) {
					rr.With(admins).Get("/departments/mandatory-completion", h.Report.DepartmentMandatoryCompletion)
					rr.With(supervisors).Get("/managers/mandatory-completion", h.Report.ManagerMandatoryCompletion)
				})
			}
		})
	})
}

package profile_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/auth"
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/sqlitetest"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
	"github.com/frahmantamala/ld-portal/internal/profile"
	profilePostgres "github.com/frahmantamala/ld-portal/internal/profile/postgres"
	"github.com/frahmantamala/ld-portal/internal/transport"
	"github.com/frahmantamala/ld-portal/internal/user"
	userPostgres "github.com/frahmantamala/ld-portal/internal/user/postgres"
	"github.com/frahmantamala/ld-portal/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var _ = Describe("Profile Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		users   *user.Service
		service *profile.Service
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = sqlitetest.Open()
		Expect(err).NotTo(HaveOccurred())

		users = user.NewService(userPostgres.NewUserRepository(db), bcrypt.MinCost, logger.Discard())
		service = profile.NewService(profilePostgres.NewProfileRepository(db), users, logger.Discard())
	})

	AfterEach(func() {
		Expect(sqlitetest.Close(db)).To(Succeed())
	})

	newUser := func(email string, role coreuser.Role) *user.User {
		u, err := users.CreateUser(ctx, user.CreateUserDTO{Email: email, FullName: email, Password: "password123", Role: string(role)})
		Expect(err).NotTo(HaveOccurred())
		return u
	}

	Describe("GetOrInit", func() {
		It("returns an unsaved zero profile for a new user", func() {
			p, err := service.GetOrInit(ctx, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).To(BeZero())
			Expect(p.UserID).To(Equal(int64(42)))
			Expect(p.TotalLearningHoursCurrentYear).To(BeZero())

			var count int64
			Expect(db.Table("learning_profiles").Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})
	})

	Describe("RecordCompletion", func() {
		It("appends history and accumulates hours", func() {
			on := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

			total, err := service.RecordCompletion(ctx, 7, 1, 12, on)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(12))

			total, err = service.RecordCompletion(ctx, 7, 2, 5, on)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(17))

			p, err := service.GetProfile(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.TotalLearningHoursCurrentYear).To(Equal(17))
			Expect(p.TrainingHistory).To(HaveLen(2))
			Expect(p.TrainingHistory[0].Status).To(Equal(profile.HistoryStatusCompleted))
			Expect(p.TrainingHistory[0].CompletionDate).To(Equal("2026-03-14"))
			Expect(p.TrainingHistory[1].HoursCredited).To(Equal(5))
		})
	})

	Describe("UpdateProfile", func() {
		It("sets the tech stack and keeps it when omitted", func() {
			stack := " go, postgres "
			p, err := service.UpdateProfile(ctx, 3, profile.UpdateProfileDTO{TechStack: &stack})
			Expect(err).NotTo(HaveOccurred())
			Expect(*p.TechStack).To(Equal("go, postgres"))

			p, err = service.UpdateProfile(ctx, 3, profile.UpdateProfileDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(*p.TechStack).To(Equal("go, postgres"))
		})
	})

	Describe("AddCertification", func() {
		It("stores dates and lists the certification on the profile", func() {
			issue, expiry := "2025-01-10", "2027-01-10"
			cert, err := service.AddCertification(ctx, 5, profile.CreateCertificationDTO{Name: "CKA", IssueDate: &issue, ExpiryDate: &expiry})
			Expect(err).NotTo(HaveOccurred())
			Expect(*cert.IssueDate).To(Equal("2025-01-10"))

			p, err := service.GetProfile(ctx, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Certifications).To(HaveLen(1))
			Expect(p.Certifications[0].Name).To(Equal("CKA"))
		})

		It("rejects an expiry before the issue date", func() {
			issue, expiry := "2025-01-10", "2024-01-10"
			_, err := service.AddCertification(ctx, 5, profile.CreateCertificationDTO{Name: "CKA", IssueDate: &issue, ExpiryDate: &expiry})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("rejects malformed dates", func() {
			issue := "10/01/2025"
			_, err := service.AddCertification(ctx, 5, profile.CreateCertificationDTO{Name: "CKA", IssueDate: &issue})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Handler", func() {
		var (
			router                     *chi.Mux
			manager, reportee, another *user.User
		)

		BeforeEach(func() {
			manager = newUser("manager@example.com", coreuser.RoleManager)
			reportee = newUser("reportee@example.com", coreuser.RoleEmployee)
			another = newUser("another@example.com", coreuser.RoleEmployee)
			_, err := users.LinkReportee(ctx, manager.ID, user.LinkReporteeDTO{ReporteeID: reportee.ID})
			Expect(err).NotTo(HaveOccurred())

			handler := profile.NewHandler(transport.NewBaseHandler(logger.Discard()), service, auth.NewABACPolicy(users))
			router = chi.NewRouter()
			router.Get("/profiles/me", handler.GetMyProfile)
			router.Patch("/profiles/me", handler.UpdateMyProfile)
			router.Get("/profiles/users/{id}", handler.GetUserProfile)
		})

		get := func(viewer *user.User, path string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req = req.WithContext(auth.ContextWithUser(req.Context(), &auth.User{ID: viewer.ID, Email: viewer.Email, Role: viewer.Role}))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			return rec
		}

		It("lets a manager read a reportee's profile", func() {
			rec := get(manager, fmt.Sprintf("/profiles/users/%d", reportee.ID))
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("forbids a manager from reading a non reportee's profile", func() {
			rec := get(manager, fmt.Sprintf("/profiles/users/%d", another.ID))
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("forbids an employee from reading a colleague's profile", func() {
			rec := get(reportee, fmt.Sprintf("/profiles/users/%d", another.ID))
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("returns 404 to an admin for an unknown user", func() {
			admin := newUser("admin@example.com", coreuser.RoleAdmin)
			rec := get(admin, "/profiles/users/9999")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("patches the caller's profile", func() {
			req := httptest.NewRequest(http.MethodPatch, "/profiles/me", bytes.NewReader([]byte(`{"tech_stack":"go"}`)))
			req = req.WithContext(auth.ContextWithUser(req.Context(), &auth.User{ID: another.ID, Role: another.Role}))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var body profile.Profile
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(*body.TechStack).To(Equal("go"))
			Expect(body.Certifications).To(BeEmpty())
		})
	})
})

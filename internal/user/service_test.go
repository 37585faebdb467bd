package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/auth"
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/sqlitetest"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
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

var _ = Describe("User Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		service *user.Service
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = sqlitetest.Open()
		Expect(err).NotTo(HaveOccurred())

		service = user.NewService(userPostgres.NewUserRepository(db), bcrypt.MinCost, logger.Discard())
	})

	AfterEach(func() {
		Expect(sqlitetest.Close(db)).To(Succeed())
	})

	newUser := func(email string, role coreuser.Role) *user.User {
		u, err := service.CreateUser(ctx, user.CreateUserDTO{
			Email:    email,
			FullName: "Test " + email,
			Password: "password123",
			Role:     string(role),
		})
		Expect(err).NotTo(HaveOccurred())
		return u
	}

	Describe("CreateUser", func() {
		It("stores a bcrypt hash and defaults to an active employee", func() {
			u, err := service.CreateUser(ctx, user.CreateUserDTO{
				Email:    "  Alice@Example.com ",
				FullName: "Alice",
				Password: "password123",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(BeNumerically(">", 0))
			Expect(u.Email).To(Equal("alice@example.com"))
			Expect(u.Role).To(Equal(coreuser.RoleEmployee))
			Expect(u.IsActive).To(BeTrue())
			Expect(auth.CheckPassword(u.PasswordHash, "password123")).To(BeTrue())
		})

		It("keeps an explicit inactive flag", func() {
			inactive := false
			u, err := service.CreateUser(ctx, user.CreateUserDTO{
				Email: "bob@example.com", FullName: "Bob", Password: "password123", IsActive: &inactive,
			})
			Expect(err).NotTo(HaveOccurred())

			stored, err := service.GetByID(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsActive).To(BeFalse())
		})

		It("rejects a duplicate email", func() {
			newUser("carol@example.com", coreuser.RoleEmployee)

			_, err := service.CreateUser(ctx, user.CreateUserDTO{
				Email: "CAROL@example.com", FullName: "Carol 2", Password: "password123",
			})
			Expect(err).To(MatchError(internal.ErrEmailTaken))
		})

		It("rejects an unknown department", func() {
			missing := int64(999)
			_, err := service.CreateUser(ctx, user.CreateUserDTO{
				Email: "dave@example.com", FullName: "Dave", Password: "password123", DepartmentID: &missing,
			})
			Expect(err).To(MatchError(internal.ErrDepartmentNotFound))
		})

		It("validates the payload", func() {
			_, err := service.CreateUser(ctx, user.CreateUserDTO{Email: "not-an-email", FullName: "", Password: "short", Role: "BOSS"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
			details := appErr.Details.(internal.ValidationErrors)
			fields := []string{}
			for _, e := range details.Errors {
				fields = append(fields, e.Field)
			}
			Expect(fields).To(ConsistOf("email", "full_name", "password", "role"))
		})
	})

	Describe("departments", func() {
		It("creates and lists departments", func() {
			_, err := service.CreateDepartment(ctx, user.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateDepartment(ctx, user.CreateDepartmentDTO{Name: "Analytics"})
			Expect(err).NotTo(HaveOccurred())

			departments, err := service.ListDepartments(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(departments).To(HaveLen(2))
			Expect(departments[0].Name).To(Equal("Analytics"))
		})

		It("rejects duplicate names", func() {
			_, err := service.CreateDepartment(ctx, user.CreateDepartmentDTO{Name: "HR"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateDepartment(ctx, user.CreateDepartmentDTO{Name: "HR"})
			Expect(err).To(MatchError(internal.ErrDepartmentExists))
		})
	})

	Describe("LinkReportee", func() {
		var manager, reportee *user.User

		BeforeEach(func() {
			manager = newUser("manager@example.com", coreuser.RoleManager)
			reportee = newUser("reportee@example.com", coreuser.RoleEmployee)
		})

		It("links a reportee and answers IsReportee", func() {
			link, err := service.LinkReportee(ctx, manager.ID, user.LinkReporteeDTO{ReporteeID: reportee.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(link.ManagerID).To(Equal(manager.ID))

			ok, err := service.IsReportee(ctx, manager.ID, reportee.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = service.IsReportee(ctx, reportee.ID, manager.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("rejects self management", func() {
			_, err := service.LinkReportee(ctx, manager.ID, user.LinkReporteeDTO{ReporteeID: manager.ID})
			Expect(err).To(MatchError(internal.ErrSelfReporting))
		})

		It("rejects linking the same pair twice", func() {
			_, err := service.LinkReportee(ctx, manager.ID, user.LinkReporteeDTO{ReporteeID: reportee.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.LinkReportee(ctx, manager.ID, user.LinkReporteeDTO{ReporteeID: reportee.ID})
			Expect(err).To(MatchError(internal.ErrReporteeLinked))
		})

		It("rejects unknown users", func() {
			_, err := service.LinkReportee(ctx, manager.ID, user.LinkReporteeDTO{ReporteeID: 4242})
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})
	})

	Describe("Handler", func() {
		var (
			handler *user.Handler
			router  *chi.Mux
		)

		BeforeEach(func() {
			handler = user.NewHandler(transport.NewBaseHandler(logger.Discard()), service)
			router = chi.NewRouter()
			router.Get("/users/me", handler.GetCurrentUser)
			router.Post("/users", handler.CreateUser)
			router.Post("/users/{id}/reportees", handler.LinkReportee)
		})

		It("returns the caller on GET /users/me", func() {
			u := newUser("me@example.com", coreuser.RoleEmployee)

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req = req.WithContext(auth.ContextWithUser(req.Context(), &auth.User{ID: u.ID, Email: u.Email, Role: u.Role}))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["email"]).To(Equal("me@example.com"))
			Expect(body).NotTo(HaveKey("password_hash"))
		})

		It("answers 400 with the error envelope for a duplicate email", func() {
			newUser("dup@example.com", coreuser.RoleEmployee)

			payload, _ := json.Marshal(map[string]string{"email": "dup@example.com", "full_name": "Dup", "password": "password123"})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(payload)))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("Email already registered"))
		})

		It("rejects a non numeric manager id", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/abc/reportees", bytes.NewReader([]byte(`{"reportee_id":1}`))))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})
})

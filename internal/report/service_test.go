package report_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/ld-portal/internal/auth"
	enrollmentDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/enrollment"
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/sqlitetest"
	trainingDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/training"
	userDatamodel "github.com/frahmantamala/ld-portal/internal/core/datamodel/user"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
	"github.com/frahmantamala/ld-portal/internal/report"
	reportPostgres "github.com/frahmantamala/ld-portal/internal/report/postgres"
	"github.com/frahmantamala/ld-portal/internal/transport"
	"github.com/frahmantamala/ld-portal/pkg/logger"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var _ = Describe("Report Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		service *report.Service

		engineering, sales, empty  userDatamodel.Department
		manager, alice, bob, carol userDatamodel.User
	)

	mustCreate := func(v interface{}) {
		Expect(db.Create(v).Error).To(Succeed())
	}

	newUser := func(email string, dept *int64, role string) userDatamodel.User {
		u := userDatamodel.User{Email: email, FullName: email, PasswordHash: "x", Role: role, DepartmentID: dept, IsActive: true}
		mustCreate(&u)
		return u
	}

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = sqlitetest.Open()
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		service = report.NewService(reportPostgres.NewReportRepository(sqlx.NewDb(sqlDB, "sqlite3")), logger.Discard())

		engineering = userDatamodel.Department{Name: "Engineering"}
		sales = userDatamodel.Department{Name: "Sales"}
		empty = userDatamodel.Department{Name: "Empty"}
		mustCreate(&engineering)
		mustCreate(&sales)
		mustCreate(&empty)

		manager = newUser("manager@example.com", &engineering.ID, "MANAGER")
		alice = newUser("alice@example.com", &engineering.ID, "EMPLOYEE")
		bob = newUser("bob@example.com", &engineering.ID, "EMPLOYEE")
		carol = newUser("carol@example.com", &sales.ID, "EMPLOYEE")

		compliance := trainingDatamodel.Training{Title: "Compliance", DurationHours: 1, Mode: "ONLINE", IsMandatory: true, CreatedByID: manager.ID}
		security := trainingDatamodel.Training{Title: "Security", DurationHours: 1, Mode: "ONLINE", IsMandatory: true, CreatedByID: manager.ID}
		elective := trainingDatamodel.Training{Title: "Elective", DurationHours: 1, Mode: "ONLINE", CreatedByID: manager.ID}
		mustCreate(&compliance)
		mustCreate(&security)
		mustCreate(&elective)

		// alice: both mandatory done; bob: one mandatory in progress plus an elective done;
		// carol: one mandatory done.
		mustCreate(&enrollmentDatamodel.Enrollment{TrainingID: compliance.ID, UserID: alice.ID, Status: "COMPLETED"})
		mustCreate(&enrollmentDatamodel.Enrollment{TrainingID: security.ID, UserID: alice.ID, Status: "COMPLETED"})
		mustCreate(&enrollmentDatamodel.Enrollment{TrainingID: compliance.ID, UserID: bob.ID, Status: "ENROLLED"})
		mustCreate(&enrollmentDatamodel.Enrollment{TrainingID: elective.ID, UserID: bob.ID, Status: "COMPLETED"})
		mustCreate(&enrollmentDatamodel.Enrollment{TrainingID: security.ID, UserID: carol.ID, Status: "COMPLETED"})

		mustCreate(&userDatamodel.ManagerRelationship{ManagerID: manager.ID, ReporteeID: alice.ID})
		mustCreate(&userDatamodel.ManagerRelationship{ManagerID: manager.ID, ReporteeID: bob.ID})
	})

	AfterEach(func() {
		Expect(sqlitetest.Close(db)).To(Succeed())
	})

	It("aggregates mandatory completion per department", func() {
		rows, err := service.DepartmentCompletion(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(Equal([]report.DepartmentCompletion{
			{DepartmentID: engineering.ID, DepartmentName: "Engineering", TotalEmployees: 3, EmployeesCompletedMandatoryAny: 1},
			{DepartmentID: sales.ID, DepartmentName: "Sales", TotalEmployees: 1, EmployeesCompletedMandatoryAny: 1},
		}))
	})

	It("counts distinct completed mandatory trainings per reportee", func() {
		rows, err := service.ReporteeCompletion(ctx, manager.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(Equal([]report.ReporteeCompletion{
			{UserID: alice.ID, Name: alice.FullName, Email: alice.Email, CompletedMandatory: 2, TotalMandatory: 2},
			{UserID: bob.ID, Name: bob.FullName, Email: bob.Email, CompletedMandatory: 0, TotalMandatory: 2},
		}))
	})

	It("returns an empty list for a manager without reportees", func() {
		rows, err := service.ReporteeCompletion(ctx, carol.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).NotTo(BeNil())
		Expect(rows).To(BeEmpty())
	})

	Describe("Handler", func() {
		var handler *report.Handler

		BeforeEach(func() {
			handler = report.NewHandler(transport.NewBaseHandler(logger.Discard()), service)
		})

		asManager := func(req *http.Request) *http.Request {
			return req.WithContext(auth.ContextWithUser(req.Context(), &auth.User{ID: manager.ID, Role: coreuser.RoleManager}))
		}

		It("serves JSON by default", func() {
			rec := httptest.NewRecorder()
			handler.ManagerMandatoryCompletion(rec, asManager(httptest.NewRequest(http.MethodGet, "/reports/managers/mandatory-completion", nil)))

			Expect(rec.Code).To(Equal(http.StatusOK))
			var rows []report.ReporteeCompletion
			Expect(json.Unmarshal(rec.Body.Bytes(), &rows)).To(Succeed())
			Expect(rows).To(HaveLen(2))
		})

		It("exports the department report as xlsx", func() {
			rec := httptest.NewRecorder()
			handler.DepartmentMandatoryCompletion(rec, httptest.NewRequest(http.MethodGet, "/reports/departments/mandatory-completion?format=xlsx", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal(report.XLSXContentType))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring(".xlsx"))

			f, err := excelize.OpenReader(rec.Body)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			rows, err := f.GetRows("Report")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0]).To(Equal([]string{"department_id", "department_name", "total_employees", "employees_completed_mandatory_any"}))
			Expect(rows[1][1]).To(Equal("Engineering"))
			Expect(rows[1][2]).To(Equal("3"))
		})

		It("rejects unknown formats", func() {
			rec := httptest.NewRecorder()
			handler.DepartmentMandatoryCompletion(rec, httptest.NewRequest(http.MethodGet, "/reports/departments/mandatory-completion?format=csv", nil))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})
})

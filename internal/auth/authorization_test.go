package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/ld-portal/internal"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
	"github.com/frahmantamala/ld-portal/internal/transport"
	"github.com/frahmantamala/ld-portal/pkg/logger"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type stubReportees struct {
	links map[[2]int64]bool
	err   error
}

func (s *stubReportees) IsReportee(_ context.Context, managerID, reporteeID int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.links[[2]int64{managerID, reporteeID}], nil
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

var _ = ginkgo.Describe("RBACAuthorization", func() {
	var rbac *RBACAuthorization

	ginkgo.BeforeEach(func() {
		rbac = NewRBACAuthorization(NewRoleChecker(), logger.Discard())
	})

	serve := func(mw func(http.Handler) http.Handler, u *User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if u != nil {
			req = req.WithContext(ContextWithUser(req.Context(), u))
		}
		rec := httptest.NewRecorder()
		mw(okHandler).ServeHTTP(rec, req)
		return rec
	}

	ginkgo.DescribeTable("admin routes",
		func(role coreuser.Role, expected int) {
			rec := serve(rbac.RequireAdmin(), &User{ID: 1, Role: role})
			gomega.Expect(rec.Code).To(gomega.Equal(expected))
		},
		ginkgo.Entry("employee is forbidden", coreuser.RoleEmployee, http.StatusForbidden),
		ginkgo.Entry("manager is forbidden", coreuser.RoleManager, http.StatusForbidden),
		ginkgo.Entry("admin passes", coreuser.RoleAdmin, http.StatusNoContent),
		ginkgo.Entry("super admin passes", coreuser.RoleSuperAdmin, http.StatusNoContent),
	)

	ginkgo.DescribeTable("supervisor routes",
		func(role coreuser.Role, expected int) {
			rec := serve(rbac.RequireSupervisor(), &User{ID: 1, Role: role})
			gomega.Expect(rec.Code).To(gomega.Equal(expected))
		},
		ginkgo.Entry("employee is forbidden", coreuser.RoleEmployee, http.StatusForbidden),
		ginkgo.Entry("manager passes", coreuser.RoleManager, http.StatusNoContent),
		ginkgo.Entry("admin passes", coreuser.RoleAdmin, http.StatusNoContent),
	)

	ginkgo.It("lets only super admins decide approvals", func() {
		gomega.Expect(serve(rbac.RequireSuperAdmin(), &User{Role: coreuser.RoleAdmin}).Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(serve(rbac.RequireSuperAdmin(), &User{Role: coreuser.RoleSuperAdmin}).Code).To(gomega.Equal(http.StatusNoContent))
	})

	ginkgo.It("answers 401 when no principal is present", func() {
		rec := serve(rbac.RequireAdmin(), nil)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(`"code":"MISSING_TOKEN"`))
	})
})

var _ = ginkgo.Describe("ABACPolicy", func() {
	var (
		ctx    context.Context
		links  *stubReportees
		policy *ABACPolicy
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		links = &stubReportees{links: map[[2]int64]bool{{10, 20}: true}}
		policy = NewABACPolicy(links)
	})

	ginkgo.It("lets anyone read their own profile", func() {
		gomega.Expect(policy.CanViewProfile(ctx, &User{ID: 20, Role: coreuser.RoleEmployee}, 20)).To(gomega.Succeed())
	})

	ginkgo.It("lets admins read any profile", func() {
		gomega.Expect(policy.CanViewProfile(ctx, &User{ID: 1, Role: coreuser.RoleAdmin}, 20)).To(gomega.Succeed())
		gomega.Expect(policy.CanViewProfile(ctx, &User{ID: 2, Role: coreuser.RoleSuperAdmin}, 99)).To(gomega.Succeed())
	})

	ginkgo.It("lets a manager read a linked reportee", func() {
		gomega.Expect(policy.CanViewProfile(ctx, &User{ID: 10, Role: coreuser.RoleManager}, 20)).To(gomega.Succeed())
	})

	ginkgo.It("forbids a manager reading someone else's reportee", func() {
		err := policy.CanViewProfile(ctx, &User{ID: 11, Role: coreuser.RoleManager}, 20)
		gomega.Expect(err).To(gomega.MatchError(internal.ErrProfileForbidden))
	})

	ginkgo.It("forbids employees reading other profiles", func() {
		err := policy.CanViewProfile(ctx, &User{ID: 21, Role: coreuser.RoleEmployee}, 20)
		gomega.Expect(err).To(gomega.MatchError(internal.ErrProfileForbidden))
	})

	ginkgo.It("surfaces lookup failures", func() {
		links.err = errors.New("db down")
		err := policy.CanViewProfile(ctx, &User{ID: 10, Role: coreuser.RoleManager}, 20)
		gomega.Expect(err).To(gomega.HaveOccurred())
		gomega.Expect(err).ToNot(gomega.MatchError(internal.ErrProfileForbidden))
	})
})

var _ = ginkgo.Describe("Handler", func() {
	var handler *Handler

	ginkgo.BeforeEach(func() {
		repo := newMockRepository()
		svc := NewService(repo, NewJWTTokenGenerator("test-secret-0123456789", time.Hour), logger.Discard())
		handler = NewHandler(transport.NewBaseHandler(logger.Discard()), svc)
	})

	ginkgo.It("logs in with the password form", func() {
		body := strings.NewReader("username=employee%40example.com&password=correct_password")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(`"token_type":"bearer"`))
	})

	ginkgo.It("answers 401 for bad credentials", func() {
		body := strings.NewReader("username=employee%40example.com&password=nope")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()

		handler.Login(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("Incorrect email or password"))
	})

	ginkgo.It("guards routes with the bearer middleware", func() {
		var seen *User
		protected := handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = UserFromContext(r.Context())
			gomega.Expect(internal.UserIDFromContext(r.Context())).To(gomega.Equal(int64(1)))
			w.WriteHeader(http.StatusNoContent)
		}))

		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))

		token, _ := NewJWTTokenGenerator("test-secret-0123456789", time.Hour).GenerateAccessToken("employee@example.com", coreuser.RoleEmployee)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec = httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
		gomega.Expect(seen.Email).To(gomega.Equal("employee@example.com"))
	})
})

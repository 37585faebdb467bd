package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/auth"
	"github.com/frahmantamala/ld-portal/internal/certificate"
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/sqlitetest"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
	"github.com/frahmantamala/ld-portal/internal/transport"
	"github.com/frahmantamala/ld-portal/internal/transport/middleware"
	"github.com/frahmantamala/ld-portal/internal/transport/rest"
	"github.com/frahmantamala/ld-portal/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

type stubAuth struct{}

func (stubAuth) Authenticate(_ context.Context, dto auth.LoginDTO) (auth.AuthTokens, error) {
	if dto.Password != "pw" {
		return auth.AuthTokens{}, internal.ErrInvalidCredentials
	}
	return auth.AuthTokens{AccessToken: "t", TokenType: "bearer"}, nil
}

func (stubAuth) Authorize(_ context.Context, token string) (*auth.User, error) {
	if token != "t" {
		return nil, internal.ErrInvalidToken
	}
	return &auth.User{ID: 1, Role: coreuser.RoleEmployee}, nil
}

var _ = Describe("RegisterAllRoutes", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = sqlitetest.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { Expect(sqlitetest.Close(db)).To(Succeed()) })

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())

		base := transport.NewBaseHandler(logger.Discard())
		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, sqlDB,
			rest.Handlers{
				Auth:        auth.NewHandler(base, stubAuth{}),
				Certificate: certificate.NewHandler(base, nil),
			},
			auth.NewRBACAuthorization(auth.NewRoleChecker(), logger.Discard()),
			rest.Options{
				AllowedOrigins: []string{"http://portal.local"},
				MetricsPath:    "/metrics",
				LoginLimiter:   middleware.NewIPRateLimiter(0.001, 2, time.Minute),
			})
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("reports a healthy database", func() {
		rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))

		var body rest.HealthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Status).To(Equal(rest.HealthHealthy))
		Expect(body.Components).To(HaveKey("database"))
	})

	It("answers ping and tags the response with a trace id", func() {
		rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get(middleware.TraceIDHeader)).NotTo(BeEmpty())
	})

	It("answers CORS preflight only for allowed origins", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/trainings", nil)
		req.Header.Set("Origin", "http://portal.local")
		rec := serve(req)
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://portal.local"))

		req = httptest.NewRequest(http.MethodOptions, "/api/v1/trainings", nil)
		req.Header.Set("Origin", "http://evil.local")
		Expect(serve(req).Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("exposes prometheus metrics", func() {
		rec := serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	It("requires a bearer token on protected routes", func() {
		rec := serve(httptest.NewRequest(http.MethodGet, "/api/v1/certificates/me", nil))
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(rec.Header().Get("WWW-Authenticate")).To(Equal("Bearer"))
	})

	It("rate limits login attempts per client", func() {
		login := func() int {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("username=a@b.co&password=bad"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			return serve(req).Code
		}

		Expect(login()).To(Equal(http.StatusUnauthorized))
		Expect(login()).To(Equal(http.StatusUnauthorized))
		Expect(login()).To(Equal(http.StatusTooManyRequests))
	})

	It("rejects JSON bodies over the size cap with 413", func() {
		payload := `{"username":"a@b.co","password":"` + strings.Repeat("x", int(middleware.MaxRequestBody)) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rec := serve(req)

		Expect(rec.Code).To(Equal(http.StatusRequestEntityTooLarge))
		Expect(rec.Body.String()).To(ContainSubstring(`"code":"BODY_TOO_LARGE"`))
	})

	It("still accepts JSON bodies under the cap", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"a@b.co","password":"pw"}`))
		req.Header.Set("Content-Type", "application/json")
		Expect(serve(req).Code).To(Equal(http.StatusOK))
	})
})

package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/frahmantamala/ld-portal/cmd"
	"github.com/frahmantamala/ld-portal/internal"
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/sqlitetest"
	"github.com/frahmantamala/ld-portal/internal/core/events"
	coreuser "github.com/frahmantamala/ld-portal/internal/core/user"
	"github.com/frahmantamala/ld-portal/internal/user"
	userPostgres "github.com/frahmantamala/ld-portal/internal/user/postgres"
	"github.com/frahmantamala/ld-portal/pkg/logger"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const adminPassword = "super-secret-1"

var _ = Describe("HTTP API", func() {
	var (
		gdb    *gorm.DB
		server *httptest.Server
	)

	BeforeEach(func() {
		var err error
		gdb, err = sqlitetest.Open()
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := gdb.DB()
		Expect(err).NotTo(HaveOccurred())

		cfg := &internal.Config{
			Server: internal.ServerConfig{
				AllowedOrigins: "http://localhost:3000",
				OpenAPIPath:    "api/openapi.yml",
			},
			Security: internal.SecurityConfig{
				JWTSecret:          "integration-test-secret",
				AccessTokenMinutes: 5,
				BCryptCost:         bcrypt.MinCost,
			},
			Observability: internal.ObservabilityConfig{
				Metrics: internal.MetricsConfig{Enabled: true, Path: "/metrics"},
			},
		}

		users := user.NewService(userPostgres.NewUserRepository(gdb), bcrypt.MinCost, logger.Discard())
		_, err = users.CreateUser(context.Background(), user.CreateUserDTO{
			Email:    "root@example.com",
			FullName: "Root",
			Password: adminPassword,
			Role:     string(coreuser.RoleSuperAdmin),
		})
		Expect(err).NotTo(HaveOccurred())

		bus := events.NewEventBus(logger.Discard())
		router := cmd.NewRouter(&cmd.Dependencies{
			Config: cfg,
			DB:     sqlx.NewDb(sqlDB, "sqlite3"),
			Gorm:   gdb,
			Bus:    bus,
			Logger: logger.Discard(),
		})
		server = httptest.NewServer(router)

		DeferCleanup(func() {
			server.Close()
			bus.Wait()
			Expect(sqlitetest.Close(gdb)).To(Succeed())
		})
	})

	login := func(email, password string) string {
		form := url.Values{"username": {email}, "password": {password}}
		resp, err := http.Post(server.URL+"/api/v1/auth/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		var tokens struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		}
		Expect(json.NewDecoder(resp.Body).Decode(&tokens)).To(Succeed())
		Expect(tokens.TokenType).To(Equal("bearer"))
		return tokens.AccessToken
	}

	call := func(method, path, token string, body interface{}, out interface{}) int {
		var payload bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&payload).Encode(body)).To(Succeed())
		}
		req, err := http.NewRequest(method, server.URL+path, &payload)
		Expect(err).NotTo(HaveOccurred())
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()
		if out != nil && resp.StatusCode < 300 {
			Expect(json.NewDecoder(resp.Body).Decode(out)).To(Succeed())
		}
		return resp.StatusCode
	}

	It("serves the probes, metrics and the OpenAPI document without a token", func() {
		for _, path := range []string{"/api/v1/ping", "/api/v1/health", "/metrics", "/openapi.yml"} {
			resp, err := http.Get(server.URL + path)
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusOK), path)
		}
	})

	It("rejects protected routes without a bearer token", func() {
		Expect(call(http.MethodGet, "/api/v1/users/me", "", nil, nil)).To(Equal(http.StatusUnauthorized))
		Expect(call(http.MethodGet, "/api/v1/trainings", "bogus", nil, nil)).To(Equal(http.StatusUnauthorized))
	})

	It("rejects a wrong password", func() {
		form := url.Values{"username": {"root@example.com"}, "password": {"nope"}}
		resp, err := http.Post(server.URL+"/api/v1/auth/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
		Expect(err).NotTo(HaveOccurred())
		resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
	})

	It("runs a training from creation to badge and certificate", func() {
		admin := login("root@example.com", adminPassword)

		var created struct {
			ID int64 `json:"id"`
		}
		Expect(call(http.MethodPost, "/api/v1/trainings", admin, map[string]interface{}{
			"title":          "Kubernetes in depth",
			"duration_hours": 30,
			"is_mandatory":   true,
		}, &created)).To(Equal(http.StatusCreated))

		var approvals []map[string]interface{}
		Expect(call(http.MethodGet, "/api/v1/trainings/approvals?status=PENDING", admin, nil, &approvals)).To(Equal(http.StatusOK))
		Expect(approvals).To(HaveLen(1))

		var enrolled struct {
			ID int64 `json:"id"`
		}
		Expect(call(http.MethodPost, "/api/v1/enrollments", admin, map[string]interface{}{"training_id": created.ID}, &enrolled)).To(Equal(http.StatusCreated))
		Expect(call(http.MethodPost, "/api/v1/enrollments", admin, map[string]interface{}{"training_id": created.ID}, nil)).To(Equal(http.StatusBadRequest))

		var completed struct {
			Status string `json:"status"`
		}
		Expect(call(http.MethodPost, fmt.Sprintf("/api/v1/enrollments/%d/complete", enrolled.ID), admin, nil, &completed)).To(Equal(http.StatusOK))
		Expect(completed.Status).To(Equal("COMPLETED"))

		var me struct {
			Total int `json:"total_learning_hours_current_year"`
		}
		Expect(call(http.MethodGet, "/api/v1/profiles/me", admin, nil, &me)).To(Equal(http.StatusOK))
		Expect(me.Total).To(Equal(30))

		var badges []struct {
			Badge struct {
				Name string `json:"name"`
			} `json:"badge"`
		}
		Expect(call(http.MethodGet, "/api/v1/badges/me", admin, nil, &badges)).To(Equal(http.StatusOK))
		Expect(badges).To(HaveLen(1))
		Expect(badges[0].Badge.Name).To(Equal("SILVER"))

		var certs []map[string]interface{}
		Expect(call(http.MethodGet, "/api/v1/certificates/me", admin, nil, &certs)).To(Equal(http.StatusOK))
		Expect(certs).To(HaveLen(1))

		var status []struct {
			Status string `json:"status"`
		}
		Expect(call(http.MethodGet, "/api/v1/trainings/mandatory/status", admin, nil, &status)).To(Equal(http.StatusOK))
		Expect(status).To(HaveLen(1))
		Expect(status[0].Status).To(Equal("COMPLETED"))
	})

	It("enforces roles on admin and report routes", func() {
		admin := login("root@example.com", adminPassword)

		var dept struct {
			ID int64 `json:"id"`
		}
		Expect(call(http.MethodPost, "/api/v1/departments", admin, map[string]interface{}{"name": "Platform"}, &dept)).To(Equal(http.StatusCreated))

		Expect(call(http.MethodPost, "/api/v1/users", admin, map[string]interface{}{
			"email":         "dev@example.com",
			"full_name":     "Dev",
			"password":      "developer-pass",
			"department_id": dept.ID,
		}, nil)).To(Equal(http.StatusCreated))

		employee := login("dev@example.com", "developer-pass")
		Expect(call(http.MethodGet, "/api/v1/users", employee, nil, nil)).To(Equal(http.StatusForbidden))
		Expect(call(http.MethodPost, "/api/v1/trainings", employee, map[string]interface{}{"title": "x"}, nil)).To(Equal(http.StatusForbidden))
		Expect(call(http.MethodGet, "/api/v1/reports/managers/mandatory-completion", employee, nil, nil)).To(Equal(http.StatusForbidden))
		Expect(call(http.MethodGet, "/api/v1/trainings", employee, nil, nil)).To(Equal(http.StatusOK))

		var rows []struct {
			DepartmentName string `json:"department_name"`
			Total          int64  `json:"total_employees"`
		}
		Expect(call(http.MethodGet, "/api/v1/reports/departments/mandatory-completion", admin, nil, &rows)).To(Equal(http.StatusOK))
		Expect(rows).To(ContainElement(And(
			HaveField("DepartmentName", "Platform"),
			HaveField("Total", int64(1)),
		)))
	})
})

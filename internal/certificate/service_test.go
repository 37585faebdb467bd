package certificate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/ld-portal/internal/auth"
	"github.com/frahmantamala/ld-portal/internal/certificate"
	certificatePostgres "github.com/frahmantamala/ld-portal/internal/certificate/postgres"
	"github.com/frahmantamala/ld-portal/internal/core/datamodel/sqlitetest"
	"github.com/frahmantamala/ld-portal/internal/transport"
	"github.com/frahmantamala/ld-portal/pkg/logger"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Certificate Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		service *certificate.Service
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = sqlitetest.Open()
		Expect(err).NotTo(HaveOccurred())
		service = certificate.NewService(certificatePostgres.NewCertificateRepository(db), logger.Discard())
	})

	AfterEach(func() {
		Expect(sqlitetest.Close(db)).To(Succeed())
	})

	It("issues certificates with a unique serial and badge meta", func() {
		first, err := service.Issue(ctx, 1, 10, "SILVER")
		Expect(err).NotTo(HaveOccurred())
		second, err := service.Issue(ctx, 1, 11, "GOLD")
		Expect(err).NotTo(HaveOccurred())

		Expect(uuid.Validate(first.Serial)).To(Succeed())
		Expect(first.Serial).NotTo(Equal(second.Serial))
		Expect(first.Meta).To(Equal("Certificate for SILVER badge"))
		Expect(first.IssuedAt).NotTo(BeZero())
	})

	It("lists only the caller's certificates", func() {
		_, err := service.Issue(ctx, 1, 10, "SILVER")
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Issue(ctx, 2, 10, "SILVER")
		Expect(err).NotTo(HaveOccurred())

		certs, err := service.ListMine(ctx, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(certs).To(HaveLen(1))
		Expect(certs[0].UserID).To(Equal(int64(1)))
	})

	It("serves GET /certificates/me", func() {
		_, err := service.Issue(ctx, 3, 10, "PLATINUM")
		Expect(err).NotTo(HaveOccurred())

		handler := certificate.NewHandler(transport.NewBaseHandler(logger.Discard()), service)
		req := httptest.NewRequest(http.MethodGet, "/certificates/me", nil)
		req = req.WithContext(auth.ContextWithUser(req.Context(), &auth.User{ID: 3}))
		rec := httptest.NewRecorder()
		handler.ListMine(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		var body []certificate.Certificate
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body).To(HaveLen(1))
		Expect(body[0].TemplateType).To(Equal("PLATINUM"))
	})

	It("answers 401 without an authenticated user", func() {
		handler := certificate.NewHandler(transport.NewBaseHandler(logger.Discard()), service)
		rec := httptest.NewRecorder()
		handler.ListMine(rec, httptest.NewRequest(http.MethodGet, "/certificates/me", nil))
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})
})

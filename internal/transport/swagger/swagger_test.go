package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/frahmantamala/ld-portal/internal/transport/swagger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const specPath = "../../../api/openapi.yml"

var _ = Describe("OpenAPI document", func() {
	It("loads and validates the bundled document", func() {
		doc, err := swagger.LoadSpec(context.Background(), specPath)
		Expect(err).NotTo(HaveOccurred())

		for _, path := range []string{
			"/auth/login",
			"/trainings",
			"/enrollments/{id}/complete",
			"/profiles/users/{id}",
			"/quizzes/{id}/submit",
			"/reports/departments/mandatory-completion",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), path)
		}
	})

	It("rejects a document that does not validate", func() {
		broken := filepath.Join(GinkgoT().TempDir(), "broken.yml")
		Expect(os.WriteFile(broken, []byte("openapi: 3.0.3\ninfo:\n  title: x\npaths: {}\n"), 0o600)).To(Succeed())

		_, err := swagger.LoadSpec(context.Background(), broken)
		Expect(err).To(HaveOccurred())
	})

	It("serves the raw file as yaml", func() {
		rec := httptest.NewRecorder()
		swagger.SpecHandler(specPath)(rec, httptest.NewRequest(http.MethodGet, swagger.SpecRoute, nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/yaml"))
		Expect(rec.Body.String()).To(ContainSubstring("openapi: 3.0.3"))
	})
})

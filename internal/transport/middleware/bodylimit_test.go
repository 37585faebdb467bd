package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/ld-portal/internal/transport/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BodyLimit", func() {
	var (
		readErr error
		read    []byte
		handler http.Handler
	)

	BeforeEach(func() {
		readErr, read = nil, nil
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			read, readErr = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusNoContent)
		})
		handler = middleware.BodyLimit(16)(middleware.LoggingMiddleware(inner))
	})

	post := func(body string) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/enrollments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	It("passes small bodies through the logger untouched", func() {
		post(`{"id":1}`)
		Expect(readErr).NotTo(HaveOccurred())
		Expect(string(read)).To(Equal(`{"id":1}`))
	})

	It("surfaces the size error to the handler after logging", func() {
		post(`{"training_id":` + strings.Repeat("9", 64) + `}`)

		var tooLarge *http.MaxBytesError
		Expect(errors.As(readErr, &tooLarge)).To(BeTrue())
		Expect(tooLarge.Limit).To(Equal(int64(16)))
		Expect(len(read)).To(BeNumerically("<=", 16))
	})

	It("exposes a one mebibyte default", func() {
		Expect(middleware.MaxRequestBody).To(Equal(int64(1 << 20)))
	})
})

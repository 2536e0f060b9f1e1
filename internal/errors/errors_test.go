package errors

import (
	"errors"
	"net/http"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestErrors(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Errors Suite")
}

var _ = Describe("AppError", func() {
	Context("basic error creation", func() {
		It("creates an error with the right defaults", func() {
			err := New(ErrorTypeValidation, "test message")

			Expect(err.Type).To(Equal(ErrorTypeValidation))
			Expect(err.Message).To(Equal("test message"))
			Expect(err.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(err.Details).To(BeEmpty())
			Expect(err.Cause).To(BeNil())
		})

		It("implements the error interface", func() {
			err := New(ErrorTypeValidation, "test message")
			Expect(err.Error()).To(Equal("validation: test message"))
		})

		It("includes details in the error string when present", func() {
			err := New(ErrorTypeValidation, "test message").WithDetails("extra info")
			Expect(err.Error()).To(Equal("validation: test message (extra info)"))
		})
	})

	Context("wrapping", func() {
		It("wraps an underlying error", func() {
			original := errors.New("original error")
			wrapped := Wrap(original, ErrorTypeDatabase, "operation failed")

			Expect(wrapped.Type).To(Equal(ErrorTypeDatabase))
			Expect(wrapped.Cause).To(Equal(original))
			Expect(wrapped.Unwrap()).To(Equal(original))
		})

		It("formats wrapped messages", func() {
			original := errors.New("connection refused")
			wrapped := Wrapf(original, ErrorTypeNetwork, "failed to connect to %s:%d", "localhost", 5432)

			Expect(wrapped.Message).To(Equal("failed to connect to localhost:5432"))
		})
	})

	Context("status code mapping", func() {
		It("maps every error type to its HTTP status", func() {
			cases := []struct {
				t    ErrorType
				code int
			}{
				{ErrorTypeValidation, http.StatusBadRequest},
				{ErrorTypeAuth, http.StatusUnauthorized},
				{ErrorTypePermission, http.StatusForbidden},
				{ErrorTypeNotFound, http.StatusNotFound},
				{ErrorTypeConflict, http.StatusConflict},
				{ErrorTypeIntegrity, http.StatusBadRequest},
				{ErrorTypeTimeout, http.StatusRequestTimeout},
				{ErrorTypeRateLimit, http.StatusTooManyRequests},
				{ErrorTypeUpstream, http.StatusBadGateway},
				{ErrorTypeDatabase, http.StatusInternalServerError},
				{ErrorTypeNetwork, http.StatusInternalServerError},
				{ErrorTypeInternal, http.StatusInternalServerError},
			}
			for _, c := range cases {
				Expect(New(c.t, "x").StatusCode).To(Equal(c.code))
			}
		})
	})

	Context("predefined constructors", func() {
		It("builds a not-found error with a standard message", func() {
			err := NewNotFoundError("case")
			Expect(err.Type).To(Equal(ErrorTypeNotFound))
			Expect(err.Message).To(Equal("case not found"))
		})

		It("builds a database error wrapping the cause", func() {
			cause := errors.New("connection lost")
			err := NewDatabaseError("query", cause)
			Expect(err.Message).To(ContainSubstring("database operation failed: query"))
			Expect(err.Cause).To(Equal(cause))
		})
	})

	Context("type checking", func() {
		It("identifies wrapped AppErrors by type", func() {
			validationErr := NewValidationError("bad input")
			authErr := NewAuthError("nope")

			Expect(IsType(validationErr, ErrorTypeValidation)).To(BeTrue())
			Expect(IsType(validationErr, ErrorTypeAuth)).To(BeFalse())
			Expect(IsType(authErr, ErrorTypeAuth)).To(BeTrue())
		})

		It("returns false for non-AppError values", func() {
			Expect(IsType(errors.New("plain"), ErrorTypeValidation)).To(BeFalse())
		})

		It("extracts the AppError through errors.As", func() {
			wrapped := Wrap(errors.New("root"), ErrorTypeUpstream, "fetch failed")
			extracted, ok := As(wrapped)
			Expect(ok).To(BeTrue())
			Expect(extracted.Type).To(Equal(ErrorTypeUpstream))
		})
	})
})

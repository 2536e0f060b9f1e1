// Package validation wraps go-playground/validator with the domain
// invariants spec.md §3 calls out for device-list and MAC-list rows, and
// translates validator.ValidationErrors into internal/errors.AppError.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/coolguazitech/network-dashboard-sub002/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("mac", isMACAddress)
	return v
}

// isMACAddress accepts colon- or hyphen-separated hex MAC forms; callers
// should still run NormalizeMAC before persisting.
func isMACAddress(fl validator.FieldLevel) bool {
	_, err := NormalizeMAC(fl.Field().String())
	return err == nil
}

// Struct validates v's tags and, on failure, returns a single
// ErrorTypeValidation AppError whose Details lists every failing field.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			details := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, fmt.Sprintf("%s: failed on %q", fe.Namespace(), fe.Tag()))
			}
			return apperrors.NewValidationError("validation failed").WithDetails(strings.Join(details, "; "))
		}
		return apperrors.Wrap(err, apperrors.ErrorTypeValidation, "validation failed")
	}
	return nil
}

// NormalizeMAC upper-cases and colon-separates a MAC address in any of the
// common input forms (colon, hyphen, or bare hex), per spec.md §3's "MAC
// uniquely normalised to upper-case colon form".
func NormalizeMAC(raw string) (string, error) {
	cleaned := strings.ToUpper(strings.NewReplacer("-", "", ":", "", ".", "", " ", "").Replace(raw))
	if len(cleaned) != 12 {
		return "", apperrors.NewValidationError("invalid MAC address").WithDetailsf("got %q", raw)
	}
	for _, r := range cleaned {
		if !isHexDigit(r) {
			return "", apperrors.NewValidationError("invalid MAC address").WithDetailsf("got %q", raw)
		}
	}
	var b strings.Builder
	for i := 0; i < 12; i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(cleaned[i : i+2])
	}
	return b.String(), nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')
}

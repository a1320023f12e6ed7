package checkout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dnminh/vshop/internal/app/model"
)

// Form is the checkout form as submitted: the shipping fields plus the
// payment method and, for online payment, the card fields.
type Form struct {
	model.ShippingAddress
	PaymentMethod model.PaymentMethod
	CardNumber    string
	CardExpiry    string
	CardCVV       string
}

// ValidationError reports per-field failures; recoverable by correction
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the form before any order submission. Card number, expiry
// and CVV are only checked for presence, not format.
func Validate(form Form) error {
	fields := map[string]string{}

	required := map[string]string{
		"firstName": form.FirstName,
		"lastName":  form.LastName,
		"email":     form.Email,
		"phone":     form.Phone,
		"address":   form.Address,
		"city":      form.City,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[name] = "required"
		}
	}

	if form.Email != "" && !emailPattern.MatchString(form.Email) {
		fields["email"] = "invalid email"
	}

	if form.Phone != "" {
		digits := strings.Join(strings.Fields(form.Phone), "")
		if len(digits) < 10 || len(digits) > 11 || !isDigits(digits) {
			fields["phone"] = "phone must be 10-11 digits"
		}
	}

	if form.PaymentMethod == model.PaymentOnline {
		if strings.TrimSpace(form.CardNumber) == "" {
			fields["cardNumber"] = "required"
		}
		if strings.TrimSpace(form.CardExpiry) == "" {
			fields["cardExpiry"] = "required"
		}
		if strings.TrimSpace(form.CardCVV) == "" {
			fields["cardCVV"] = "required"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if form.PaymentMethod == model.PaymentCOD && !CODEligible(form.City) {
		return ErrCODIneligible
	}

	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package services

import (
	"strings"
	"time"

	"github.com/terramonte/ridgeline/internal/models"
)

// Guard bounds for payment dates. Not a business rule, just a fence against
// fat-fingered input.
const (
	MinPaymentYear = 1850
	MaxPaymentYear = 2850
)

// IsFeeCurrent reports whether the credited fee year satisfies the current
// membership cycle: the present year, or the following year for an early
// renewal paid in November/December. Last year's fee is never current.
func IsFeeCurrent(details *models.MembershipDetails, now time.Time) bool {
	if details == nil || details.FeePaymentYear == nil {
		return false
	}
	year := now.Year()
	return *details.FeePaymentYear == year || *details.FeePaymentYear == year+1
}

// PaymentClassification carries messaging hints only; neither flag changes
// validity. ExistingMemberRenewal distinguishes a member renewing early in
// Nov/Dec from someone joining late in the year, derived purely from whether
// a current fee year was already on record before this payment.
type PaymentClassification struct {
	IsRenewalPayment      bool
	ExistingMemberRenewal bool
}

func ClassifyPayment(previousFeeYear *int, paymentDate time.Time, now time.Time) PaymentClassification {
	month := paymentDate.Month()
	renewalWindow := month == time.November || month == time.December
	alreadyCurrent := previousFeeYear != nil && *previousFeeYear >= now.Year()
	return PaymentClassification{
		IsRenewalPayment:      renewalWindow,
		ExistingMemberRenewal: renewalWindow && alreadyCurrent,
	}
}

// ParseStoredDate parses an ISO-8601 date or datetime. Legacy rows may carry
// stray quote characters around the T/Z literals (artifact of an old
// formatting bug), so quotes are stripped before parsing.
func ParseStoredDate(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, `"`, "")
	cleaned = strings.ReplaceAll(cleaned, `'`, "")
	if cleaned == "" {
		return time.Time{}, NewValidationError("date is required")
	}

	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, cleaned, location); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, NewValidationError("invalid date %q", raw)
}

// ValidatePaymentDate checks a proposed payment date: a real calendar date,
// year within the guard bounds, not after now.
func ValidatePaymentDate(raw string, now time.Time) (time.Time, error) {
	parsed, err := ParseStoredDate(raw, now.Location())
	if err != nil {
		return time.Time{}, err
	}

	year := parsed.Year()
	if year < MinPaymentYear || year > MaxPaymentYear {
		return time.Time{}, NewValidationError("payment year %d outside allowed range %d-%d", year, MinPaymentYear, MaxPaymentYear)
	}

	paymentDay := dateOnly(parsed)
	today := dateOnly(now)
	if paymentDay.After(today) {
		return time.Time{}, NewValidationError("payment date %s is in the future", paymentDay.Format("2006-01-02"))
	}
	return paymentDay, nil
}

// ValidateCreditedYear checks that the year a payment is credited toward
// matches the payment date: the date's own year, or the following year for a
// November/December early renewal.
func ValidateCreditedYear(creditedYear int, paymentDate time.Time) error {
	paymentYear := paymentDate.Year()
	if creditedYear == paymentYear {
		return nil
	}
	month := paymentDate.Month()
	if creditedYear == paymentYear+1 && (month == time.November || month == time.December) {
		return nil
	}
	return NewValidationError("fee year %d cannot be credited by a payment on %s", creditedYear, paymentDate.Format("2006-01-02"))
}

func dateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

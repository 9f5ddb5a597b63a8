package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terramonte/ridgeline/internal/models"
)

func TestIsFeeCurrentWindow(t *testing.T) {
	now := mustParseDay("2025-06-15")

	cases := []struct {
		name    string
		feeYear *int
		want    bool
	}{
		{"no details year", nil, false},
		{"current year", intPtr(2025), true},
		{"next year early renewal", intPtr(2026), true},
		{"previous year", intPtr(2024), false},
		{"two years ahead", intPtr(2027), false},
	}

	for _, tc := range cases {
		details := &models.MembershipDetails{FeePaymentYear: tc.feeYear}
		if got := IsFeeCurrent(details, now); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}

	if IsFeeCurrent(nil, now) {
		t.Fatal("expected nil details to be invalid")
	}
}

func TestClassifyPaymentRenewalWindow(t *testing.T) {
	now := mustParseDay("2025-11-15")

	// Existing member paying for next year in November: early renewal.
	classification := ClassifyPayment(intPtr(2025), mustParseDay("2025-11-15"), now)
	if !classification.IsRenewalPayment {
		t.Fatal("expected November payment to be flagged as renewal")
	}
	if !classification.ExistingMemberRenewal {
		t.Fatal("expected member already current to be an existing-member renewal")
	}

	// New member joining late in the year: renewal window but not a renewal.
	classification = ClassifyPayment(nil, mustParseDay("2025-12-01"), now)
	if !classification.IsRenewalPayment {
		t.Fatal("expected December payment to be flagged as renewal")
	}
	if classification.ExistingMemberRenewal {
		t.Fatal("expected member with no prior fee year to be a late joiner")
	}

	// Stale prior year does not count as already current.
	classification = ClassifyPayment(intPtr(2024), mustParseDay("2025-11-20"), now)
	if classification.ExistingMemberRenewal {
		t.Fatal("expected stale fee year to not count as existing renewal")
	}

	// Outside Nov/Dec nothing is a renewal.
	classification = ClassifyPayment(intPtr(2025), mustParseDay("2025-06-01"), now)
	if classification.IsRenewalPayment {
		t.Fatal("expected June payment to not be a renewal")
	}
}

func TestParseStoredDateToleratesLegacyQuotes(t *testing.T) {
	cases := []string{
		"2024-05-01",
		`2024-05-01"T"00:00:00"Z"`,
		`2024-05-01'T'10:30:00'Z'`,
		"2024-05-01T10:30:00Z",
	}
	for _, raw := range cases {
		parsed, err := ParseStoredDate(raw, time.UTC)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", raw, err)
		}
		if parsed.Year() != 2024 || parsed.Month() != time.May || parsed.Day() != 1 {
			t.Fatalf("expected %q to land on 2024-05-01, got %v", raw, parsed)
		}
	}
}

func TestParseStoredDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "2024-02-30"} {
		if _, err := ParseStoredDate(raw, time.UTC); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestValidatePaymentDate(t *testing.T) {
	now := mustParseDay("2025-06-15")

	if _, err := ValidatePaymentDate("2025-06-15", now); err != nil {
		t.Fatalf("expected same-day payment to be valid, got %v", err)
	}
	if _, err := ValidatePaymentDate("2025-06-16", now); err == nil {
		t.Fatal("expected future payment date to be rejected")
	}
	if _, err := ValidatePaymentDate("1812-01-01", now); err == nil {
		t.Fatal("expected payment year below guard bound to be rejected")
	}

	var validation *ValidationError
	_, err := ValidatePaymentDate("2999-01-01", now)
	if !errors.As(err, &validation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestValidateCreditedYear(t *testing.T) {
	if err := ValidateCreditedYear(2025, mustParseDay("2025-06-15")); err != nil {
		t.Fatalf("expected same-year credit to be valid, got %v", err)
	}
	if err := ValidateCreditedYear(2026, mustParseDay("2025-11-15")); err != nil {
		t.Fatalf("expected November next-year credit to be valid, got %v", err)
	}
	if err := ValidateCreditedYear(2026, mustParseDay("2025-06-15")); err == nil {
		t.Fatal("expected next-year credit outside Nov/Dec to be rejected")
	}
	if err := ValidateCreditedYear(2024, mustParseDay("2025-06-15")); err == nil {
		t.Fatal("expected past-year credit to be rejected")
	}
}

func intPtr(value int) *int {
	return &value
}

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}

package services

import (
	"testing"

	"github.com/terramonte/ridgeline/internal/models"
)

func TestResolveDisplayStatusNoDetails(t *testing.T) {
	member := models.Member{Status: models.StatusPending}
	periods := []models.MembershipPeriod{openPeriod(1, "2025-01-01")}
	now := mustParseDay("2025-06-15")

	status := ResolveDisplayStatus(member, periods, nil, now)
	if status.Status != DisplayPending {
		t.Fatalf("expected pending, got %s", status.Status)
	}
	if status.Reason != ReasonPaymentNotRecorded {
		t.Fatalf("expected %q, got %q", ReasonPaymentNotRecorded, status.Reason)
	}
	if status.FeeValid {
		t.Fatal("expected fee to be invalid with no details")
	}
}

func TestResolveDisplayStatusAllConditionsMet(t *testing.T) {
	member := models.Member{Status: models.StatusPending}
	periods := []models.MembershipPeriod{openPeriod(1, "2025-01-01")}
	details := &models.MembershipDetails{FeePaymentYear: intPtr(2025), CardStampIssued: true}
	now := mustParseDay("2025-06-15")

	status := ResolveDisplayStatus(member, periods, details, now)
	if status.Status != DisplayRegistered {
		t.Fatalf("expected registered, got %s", status.Status)
	}
	if status.Reason != ReasonAllConditionsMet {
		t.Fatalf("expected %q, got %q", ReasonAllConditionsMet, status.Reason)
	}
}

func TestResolveDisplayStatusStampGating(t *testing.T) {
	member := models.Member{Status: models.StatusPending}
	periods := []models.MembershipPeriod{openPeriod(1, "2025-01-01")}
	now := mustParseDay("2025-06-15")

	// Fee paid but stamp not handed out yet.
	details := &models.MembershipDetails{FeePaymentYear: intPtr(2025)}
	status := ResolveDisplayStatus(member, periods, details, now)
	if status.Reason != ReasonStampNotIssued {
		t.Fatalf("expected %q, got %q", ReasonStampNotIssued, status.Reason)
	}

	// Early renewal requires the next-year stamp, not the current one.
	details = &models.MembershipDetails{FeePaymentYear: intPtr(2026), CardStampIssued: true}
	status = ResolveDisplayStatus(member, periods, details, now)
	if status.Reason != ReasonStampNotIssued {
		t.Fatalf("expected next-year stamp to gate, got %q", status.Reason)
	}

	details.NextYearStampIssued = true
	status = ResolveDisplayStatus(member, periods, details, now)
	if status.Status != DisplayRegistered {
		t.Fatalf("expected registered with next-year stamp, got %s", status.Status)
	}
}

func TestResolveDisplayStatusGracePeriodReason(t *testing.T) {
	member := models.Member{Status: models.StatusRegistered}
	periods := []models.MembershipPeriod{openPeriod(1, "2024-01-01")}
	details := &models.MembershipDetails{FeePaymentYear: intPtr(2024), CardStampIssued: true}
	now := mustParseDay("2025-03-15")

	status := ResolveDisplayStatus(member, periods, details, now)
	if status.Status != DisplayPending {
		t.Fatalf("expected stale registered cache to fall back to pending, got %s", status.Status)
	}
	if status.Reason != ReasonPaymentYearMismatch {
		t.Fatalf("expected %q, got %q", ReasonPaymentYearMismatch, status.Reason)
	}
}

func TestResolveDisplayStatusEndedIsTerminal(t *testing.T) {
	// Scenario: history replaced with a single fully closed period while the
	// persisted status still says registered.
	member := models.Member{Status: models.StatusRegistered}
	reason := models.EndReasonWithdrawal
	end := mustParseDay("2024-06-01")
	periods := []models.MembershipPeriod{{
		ID: 1, StartDate: mustParseDay("2024-01-01"), EndDate: &end, EndReason: &reason,
	}}
	details := &models.MembershipDetails{FeePaymentYear: intPtr(2025), CardStampIssued: true}
	now := mustParseDay("2025-06-15")

	status := ResolveDisplayStatus(member, periods, details, now)
	if status.Status != DisplayEnded {
		t.Fatalf("expected ended, got %s", status.Status)
	}
	if status.EndReason != models.EndReasonWithdrawal {
		t.Fatalf("expected end reason withdrawal, got %q", status.EndReason)
	}
}

func TestResolveDisplayStatusNoActivePeriod(t *testing.T) {
	member := models.Member{Status: models.StatusPending}
	details := &models.MembershipDetails{FeePaymentYear: intPtr(2025), CardStampIssued: true}
	now := mustParseDay("2025-06-15")

	status := ResolveDisplayStatus(member, nil, details, now)
	if status.Reason != ReasonNoActivePeriod {
		t.Fatalf("expected %q, got %q", ReasonNoActivePeriod, status.Reason)
	}
}

func openPeriod(id uint, start string) models.MembershipPeriod {
	return models.MembershipPeriod{ID: id, StartDate: mustParseDay(start)}
}

package services

import (
	"time"

	"github.com/terramonte/ridgeline/internal/models"
)

const (
	DisplayEnded      = "ended"
	DisplayRegistered = "registered"
	DisplayPending    = "pending"
	DisplayInactive   = "inactive"
)

const (
	ReasonStampNotIssued      = "stamp not issued"
	ReasonPaymentNotRecorded  = "payment not recorded"
	ReasonPaymentYearMismatch = "payment year mismatch (grace period)"
	ReasonNoActivePeriod      = "no active period"
	ReasonAllConditionsMet    = "all conditions met"
)

// DisplayStatus is the derived, user-facing membership state. The persisted
// Member.Status is a sometimes-stale cache; this resolver is the single
// authority for what a member's state actually is, and it never writes back.
type DisplayStatus struct {
	Status    string `json:"status"`
	Reason    string `json:"reason"`
	EndReason string `json:"end_reason,omitempty"`
	FeeValid  bool   `json:"fee_valid"`
}

// ResolveDisplayStatus derives the display state from raw inputs. A fully
// closed most recent period is terminal regardless of the persisted status.
// Otherwise fee validity plus the required stamp plus an open period make the
// member registered; anything else falls back to the persisted status with a
// reason from the fixed taxonomy. Missing optional data degrades to
// conservative defaults, never an error.
func ResolveDisplayStatus(member models.Member, periods []models.MembershipPeriod, details *models.MembershipDetails, now time.Time) DisplayStatus {
	feeValid := IsFeeCurrent(details, now)

	if latest, exists := latestPeriod(periods); exists && latest.EndDate != nil && latest.EndReason != nil {
		return DisplayStatus{Status: DisplayEnded, Reason: ReasonNoActivePeriod, EndReason: *latest.EndReason, FeeValid: feeValid}
	}

	openExists := false
	for _, period := range periods {
		if period.IsOpen() {
			openExists = true
			break
		}
	}

	stampIssued := requiredStampIssued(details, now)
	if feeValid && stampIssued && openExists {
		return DisplayStatus{Status: DisplayRegistered, Reason: ReasonAllConditionsMet, FeeValid: true}
	}

	fallback := member.Status
	if fallback != models.StatusInactive {
		fallback = DisplayPending
	}

	return DisplayStatus{Status: fallback, Reason: fallbackReason(details, feeValid, stampIssued, openExists), FeeValid: feeValid}
}

func fallbackReason(details *models.MembershipDetails, feeValid bool, stampIssued bool, openExists bool) string {
	if details == nil || details.FeePaymentYear == nil {
		return ReasonPaymentNotRecorded
	}
	if !feeValid {
		return ReasonPaymentYearMismatch
	}
	if !stampIssued {
		return ReasonStampNotIssued
	}
	if !openExists {
		return ReasonNoActivePeriod
	}
	return ReasonAllConditionsMet
}

// requiredStampIssued picks which physical stamp gates validity: the current
// card stamp for a present-year fee, the next-year stamp for an early
// renewal credited to the following year.
func requiredStampIssued(details *models.MembershipDetails, now time.Time) bool {
	if details == nil || details.FeePaymentYear == nil {
		return false
	}
	switch *details.FeePaymentYear {
	case now.Year():
		return details.CardStampIssued
	case now.Year() + 1:
		return details.NextYearStampIssued
	}
	return false
}

func latestPeriod(periods []models.MembershipPeriod) (models.MembershipPeriod, bool) {
	if len(periods) == 0 {
		return models.MembershipPeriod{}, false
	}
	latest := periods[0]
	for _, period := range periods[1:] {
		if period.StartDate.After(latest.StartDate) ||
			(period.StartDate.Equal(latest.StartDate) && period.ID > latest.ID) {
			latest = period
		}
	}
	return latest, true
}

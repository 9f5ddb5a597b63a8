package models

import "time"

const (
	EndReasonWithdrawal = "withdrawal"
	EndReasonNonPayment = "non_payment"
	EndReasonExpulsion  = "expulsion"
	EndReasonDeath      = "death"
)

// MembershipPeriod is one tenure interval. EndDate nil means the period is
// open, which is what "current membership" means; at most one open period may
// exist per member. Closed periods keep their EndReason for the audit trail
// and are never physically deleted outside admin history editing.
type MembershipPeriod struct {
	ID        uint       `gorm:"primaryKey"`
	MemberID  uint       `gorm:"not null;index"`
	StartDate time.Time  `gorm:"type:date;not null"`
	EndDate   *time.Time `gorm:"type:date"`
	EndReason *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (period MembershipPeriod) IsOpen() bool {
	return period.EndDate == nil
}

func IsKnownEndReason(reason string) bool {
	switch reason {
	case EndReasonWithdrawal, EndReasonNonPayment, EndReasonExpulsion, EndReasonDeath:
		return true
	}
	return false
}

// MembershipDetails is the per-member fee/card singleton. FeePaymentYear is
// the year the payment is credited toward, not the calendar year it was paid
// in: November/December payments may credit the following year.
type MembershipDetails struct {
	ID                  uint       `gorm:"primaryKey"`
	MemberID            uint       `gorm:"not null;uniqueIndex"`
	FeePaymentYear      *int       `gorm:"type:integer"`
	FeePaymentDate      *time.Time `gorm:"type:date"`
	CardNumber          *string    `gorm:"uniqueIndex"`
	CardStampIssued     bool       `gorm:"not null;default:false"`
	NextYearStampIssued bool       `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

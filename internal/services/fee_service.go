package services

import (
	"strings"
	"time"

	"github.com/terramonte/ridgeline/internal/clock"
	"github.com/terramonte/ridgeline/internal/models"
)

type FeeMemberRepository interface {
	FindByID(memberID uint) (models.Member, bool, error)
	FindDetails(memberID uint) (models.MembershipDetails, bool, error)
	SaveDetails(details *models.MembershipDetails) error
	CardNumberBoundToOther(cardNumber string, memberID uint) (bool, error)
	RecordFeePayment(memberID uint, creditedYear int, paymentDate time.Time) error
}

type FeeService struct {
	members FeeMemberRepository
	clock   clock.Clock
}

func NewFeeService(members FeeMemberRepository, clk clock.Clock) *FeeService {
	return &FeeService{members: members, clock: clk}
}

type PaymentReceipt struct {
	MemberID              uint      `json:"member_id"`
	PaymentDate           time.Time `json:"payment_date"`
	CreditedYear          int       `json:"credited_year"`
	IsRenewalPayment      bool      `json:"is_renewal_payment"`
	ExistingMemberRenewal bool      `json:"existing_member_renewal"`
}

// RecordPayment validates and persists one fee payment. The classification is
// derived from the fee year on record before the payment is written.
func (service *FeeService) RecordPayment(memberID uint, rawPaymentDate string, creditedYear int) (PaymentReceipt, error) {
	now := service.clock.Now()

	if _, found, err := service.members.FindByID(memberID); err != nil {
		return PaymentReceipt{}, NewStoreError("load member", err)
	} else if !found {
		return PaymentReceipt{}, NewNotFoundError("member")
	}

	paymentDate, err := ValidatePaymentDate(rawPaymentDate, now)
	if err != nil {
		return PaymentReceipt{}, err
	}
	if err := ValidateCreditedYear(creditedYear, paymentDate); err != nil {
		return PaymentReceipt{}, err
	}

	var previousFeeYear *int
	if details, found, err := service.members.FindDetails(memberID); err != nil {
		return PaymentReceipt{}, NewStoreError("load membership details", err)
	} else if found {
		previousFeeYear = details.FeePaymentYear
	}

	classification := ClassifyPayment(previousFeeYear, paymentDate, now)

	if err := service.members.RecordFeePayment(memberID, creditedYear, paymentDate); err != nil {
		return PaymentReceipt{}, NewStoreError("record fee payment", err)
	}

	return PaymentReceipt{
		MemberID:              memberID,
		PaymentDate:           paymentDate,
		CreditedYear:          creditedYear,
		IsRenewalPayment:      classification.IsRenewalPayment,
		ExistingMemberRenewal: classification.ExistingMemberRenewal,
	}, nil
}

// AssignCard binds a card number to the member. A number already bound to a
// different member is a conflict; the unique index on card_number is the
// final arbiter under concurrent assignment.
func (service *FeeService) AssignCard(memberID uint, rawCardNumber string) (models.MembershipDetails, error) {
	cardNumber := strings.TrimSpace(rawCardNumber)
	if cardNumber == "" {
		return models.MembershipDetails{}, NewValidationError("card number is required")
	}

	if _, found, err := service.members.FindByID(memberID); err != nil {
		return models.MembershipDetails{}, NewStoreError("load member", err)
	} else if !found {
		return models.MembershipDetails{}, NewNotFoundError("member")
	}

	bound, err := service.members.CardNumberBoundToOther(cardNumber, memberID)
	if err != nil {
		return models.MembershipDetails{}, NewStoreError("check card number", err)
	}
	if bound {
		return models.MembershipDetails{}, NewConflictError("card number already assigned")
	}

	details, found, err := service.members.FindDetails(memberID)
	if err != nil {
		return models.MembershipDetails{}, NewStoreError("load membership details", err)
	}
	if !found {
		details = models.MembershipDetails{MemberID: memberID}
	}
	details.CardNumber = &cardNumber
	if err := service.members.SaveDetails(&details); err != nil {
		return models.MembershipDetails{}, NewStoreError("save card number", err)
	}
	return details, nil
}

// SetStamps records issuance of the current-year card stamp and the
// next-year stamp handed out during early renewal.
func (service *FeeService) SetStamps(memberID uint, cardStampIssued bool, nextYearStampIssued bool) (models.MembershipDetails, error) {
	if _, found, err := service.members.FindByID(memberID); err != nil {
		return models.MembershipDetails{}, NewStoreError("load member", err)
	} else if !found {
		return models.MembershipDetails{}, NewNotFoundError("member")
	}

	details, found, err := service.members.FindDetails(memberID)
	if err != nil {
		return models.MembershipDetails{}, NewStoreError("load membership details", err)
	}
	if !found {
		details = models.MembershipDetails{MemberID: memberID}
	}
	details.CardStampIssued = cardStampIssued
	details.NextYearStampIssued = nextYearStampIssued
	if err := service.members.SaveDetails(&details); err != nil {
		return models.MembershipDetails{}, NewStoreError("save stamps", err)
	}
	return details, nil
}

package services

import (
	"strings"
	"time"

	"github.com/terramonte/ridgeline/internal/clock"
	"github.com/terramonte/ridgeline/internal/models"
)

type MembershipMemberRepository interface {
	FindByID(memberID uint) (models.Member, bool, error)
	List() ([]models.Member, error)
	ExistsByEmail(email string) (bool, error)
	CreateWithOpenPeriod(member *models.Member, startDate time.Time) error
	FindDetails(memberID uint) (models.MembershipDetails, bool, error)
}

type MembershipPeriodLister interface {
	ListByMember(memberID uint) ([]models.MembershipPeriod, error)
}

// MembershipService assembles member snapshots for the API layer. All status
// reads go through the resolver; nothing here trusts Member.Status.
type MembershipService struct {
	members MembershipMemberRepository
	periods MembershipPeriodLister
	clock   clock.Clock
}

func NewMembershipService(members MembershipMemberRepository, periods MembershipPeriodLister, clk clock.Clock) *MembershipService {
	return &MembershipService{members: members, periods: periods, clock: clk}
}

type MemberSnapshot struct {
	Member            models.Member             `json:"member"`
	Details           *models.MembershipDetails `json:"details"`
	Periods           []models.MembershipPeriod `json:"periods"`
	DisplayStatus     DisplayStatus             `json:"display_status"`
	TotalDurationDays int                       `json:"total_duration_days"`
	StampType         string                    `json:"stamp_type"`
}

type NewMemberInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Category  string `json:"category"`
}

func (service *MembershipService) Register(input NewMemberInput) (models.Member, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if firstName == "" || lastName == "" {
		return models.Member{}, NewValidationError("first and last name are required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return models.Member{}, NewValidationError("a valid email is required")
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = models.CategoryAdult
	}
	switch category {
	case models.CategoryAdult, models.CategoryStudent, models.CategorySenior:
	default:
		return models.Member{}, NewValidationError("unknown member category %q", category)
	}

	if exists, err := service.members.ExistsByEmail(email); err != nil {
		return models.Member{}, NewStoreError("check member email", err)
	} else if exists {
		return models.Member{}, NewConflictError("a member with this email already exists")
	}

	member := models.Member{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Category:  category,
		Status:    models.StatusPending,
	}
	if err := service.members.CreateWithOpenPeriod(&member, dateOnly(service.clock.Now())); err != nil {
		return models.Member{}, NewStoreError("register member", err)
	}
	return member, nil
}

func (service *MembershipService) List() ([]models.Member, error) {
	members, err := service.members.List()
	if err != nil {
		return nil, NewStoreError("list members", err)
	}
	return members, nil
}

func (service *MembershipService) Snapshot(memberID uint) (MemberSnapshot, error) {
	member, found, err := service.members.FindByID(memberID)
	if err != nil {
		return MemberSnapshot{}, NewStoreError("load member", err)
	}
	if !found {
		return MemberSnapshot{}, NewNotFoundError("member")
	}

	periods, err := service.periods.ListByMember(memberID)
	if err != nil {
		return MemberSnapshot{}, NewStoreError("list periods", err)
	}

	var details *models.MembershipDetails
	if loaded, detailsFound, err := service.members.FindDetails(memberID); err != nil {
		return MemberSnapshot{}, NewStoreError("load membership details", err)
	} else if detailsFound {
		details = &loaded
	}

	now := service.clock.Now()
	return MemberSnapshot{
		Member:            member,
		Details:           details,
		Periods:           periods,
		DisplayStatus:     ResolveDisplayStatus(member, periods, details, now),
		TotalDurationDays: TotalDurationDays(periods, now),
		StampType:         member.StampType(),
	}, nil
}

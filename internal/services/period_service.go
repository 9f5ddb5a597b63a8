package services

import (
	"time"

	"github.com/terramonte/ridgeline/internal/clock"
	"github.com/terramonte/ridgeline/internal/models"
)

type PeriodRepository interface {
	ListByMember(memberID uint) ([]models.MembershipPeriod, error)
	FindOpenByMember(memberID uint) (models.MembershipPeriod, bool, error)
	FindByID(periodID uint) (models.MembershipPeriod, bool, error)
	Create(period *models.MembershipPeriod) error
	CloseAndDeactivate(period *models.MembershipPeriod) error
	ReplaceAllForMember(memberID uint, periods []models.MembershipPeriod, promoteToRegistered bool) error
}

type PeriodMemberRepository interface {
	FindByID(memberID uint) (models.Member, bool, error)
}

type PeriodService struct {
	periods PeriodRepository
	members PeriodMemberRepository
	clock   clock.Clock
}

func NewPeriodService(periods PeriodRepository, members PeriodMemberRepository, clk clock.Clock) *PeriodService {
	return &PeriodService{periods: periods, members: members, clock: clk}
}

func (service *PeriodService) Periods(memberID uint) ([]models.MembershipPeriod, error) {
	if err := service.requireMember(memberID); err != nil {
		return nil, err
	}
	periods, err := service.periods.ListByMember(memberID)
	if err != nil {
		return nil, NewStoreError("list periods", err)
	}
	return periods, nil
}

func (service *PeriodService) OpenPeriod(memberID uint) (models.MembershipPeriod, bool, error) {
	period, found, err := service.periods.FindOpenByMember(memberID)
	if err != nil {
		return models.MembershipPeriod{}, false, NewStoreError("find open period", err)
	}
	return period, found, nil
}

// Create opens a new membership period, the renewal path after a closed
// history. A member may hold at most one open period.
func (service *PeriodService) Create(memberID uint, startDate time.Time) (models.MembershipPeriod, error) {
	if err := service.requireMember(memberID); err != nil {
		return models.MembershipPeriod{}, err
	}

	if _, open, err := service.periods.FindOpenByMember(memberID); err != nil {
		return models.MembershipPeriod{}, NewStoreError("find open period", err)
	} else if open {
		return models.MembershipPeriod{}, NewConflictError("member already has an open membership period")
	}

	period := models.MembershipPeriod{MemberID: memberID, StartDate: dateOnly(startDate)}
	if err := service.periods.Create(&period); err != nil {
		return models.MembershipPeriod{}, NewStoreError("create period", err)
	}
	return period, nil
}

// Close ends a period with an audit reason and flips the member's persisted
// status to inactive in the same transaction.
func (service *PeriodService) Close(periodID uint, endDate time.Time, endReason string) (models.MembershipPeriod, error) {
	if !models.IsKnownEndReason(endReason) {
		return models.MembershipPeriod{}, NewValidationError("unknown end reason %q", endReason)
	}

	period, found, err := service.periods.FindByID(periodID)
	if err != nil {
		return models.MembershipPeriod{}, NewStoreError("find period", err)
	}
	if !found {
		return models.MembershipPeriod{}, NewNotFoundError("membership period")
	}

	endDay := dateOnly(endDate)
	if endDay.Before(dateOnly(period.StartDate)) {
		return models.MembershipPeriod{}, NewValidationError("end date %s precedes period start %s",
			endDay.Format("2006-01-02"), period.StartDate.Format("2006-01-02"))
	}

	period.EndDate = &endDay
	period.EndReason = &endReason
	if err := service.periods.CloseAndDeactivate(&period); err != nil {
		return models.MembershipPeriod{}, NewStoreError("close period", err)
	}
	return period, nil
}

// ReplaceAll is the admin history edit: the member's entire period history is
// swapped for the supplied set in one transaction. Status is only ever
// promoted to registered here (when the new history holds an open period),
// never demoted; a fully closed history leaves the persisted status alone and
// the display resolver independently reports the ended membership.
func (service *PeriodService) ReplaceAll(memberID uint, periods []models.MembershipPeriod) ([]models.MembershipPeriod, error) {
	if err := service.requireMember(memberID); err != nil {
		return nil, err
	}

	openCount := 0
	for _, period := range periods {
		if period.StartDate.IsZero() {
			return nil, NewValidationError("period start date is required")
		}
		if period.EndDate == nil {
			if period.EndReason != nil {
				return nil, NewValidationError("end reason given without an end date")
			}
			openCount++
			continue
		}
		if period.EndDate.Before(period.StartDate) {
			return nil, NewValidationError("period end %s precedes start %s",
				period.EndDate.Format("2006-01-02"), period.StartDate.Format("2006-01-02"))
		}
		if period.EndReason == nil || !models.IsKnownEndReason(*period.EndReason) {
			return nil, NewValidationError("closed period requires a valid end reason")
		}
	}
	if openCount > 1 {
		return nil, NewConflictError("at most one membership period may be open")
	}

	if err := service.periods.ReplaceAllForMember(memberID, periods, openCount == 1); err != nil {
		return nil, NewStoreError("replace periods", err)
	}

	replaced, err := service.periods.ListByMember(memberID)
	if err != nil {
		return nil, NewStoreError("list periods", err)
	}
	return replaced, nil
}

// TotalDurationDays sums whole days across the periods, substituting now for
// the open period's missing end. A corrupt span with end before start
// contributes zero rather than reducing the total.
func TotalDurationDays(periods []models.MembershipPeriod, now time.Time) int {
	total := 0
	for _, period := range periods {
		end := now
		if period.EndDate != nil {
			end = *period.EndDate
		}
		span := int(end.Sub(period.StartDate).Hours() / 24)
		if span > 0 {
			total += span
		}
	}
	return total
}

func (service *PeriodService) requireMember(memberID uint) error {
	_, found, err := service.members.FindByID(memberID)
	if err != nil {
		return NewStoreError("load member", err)
	}
	if !found {
		return NewNotFoundError("member")
	}
	return nil
}

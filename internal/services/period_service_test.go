package services

import (
	"errors"
	"testing"

	"github.com/terramonte/ridgeline/internal/clock"
	"github.com/terramonte/ridgeline/internal/models"
)

type fakePeriodRepo struct {
	periods     []models.MembershipPeriod
	nextID      uint
	lastPromote bool
	closed      *models.MembershipPeriod
}

func (repo *fakePeriodRepo) ListByMember(memberID uint) ([]models.MembershipPeriod, error) {
	var out []models.MembershipPeriod
	for _, period := range repo.periods {
		if period.MemberID == memberID {
			out = append(out, period)
		}
	}
	return out, nil
}

func (repo *fakePeriodRepo) FindOpenByMember(memberID uint) (models.MembershipPeriod, bool, error) {
	for _, period := range repo.periods {
		if period.MemberID == memberID && period.IsOpen() {
			return period, true, nil
		}
	}
	return models.MembershipPeriod{}, false, nil
}

func (repo *fakePeriodRepo) FindByID(periodID uint) (models.MembershipPeriod, bool, error) {
	for _, period := range repo.periods {
		if period.ID == periodID {
			return period, true, nil
		}
	}
	return models.MembershipPeriod{}, false, nil
}

func (repo *fakePeriodRepo) Create(period *models.MembershipPeriod) error {
	repo.nextID++
	period.ID = repo.nextID
	repo.periods = append(repo.periods, *period)
	return nil
}

func (repo *fakePeriodRepo) CloseAndDeactivate(period *models.MembershipPeriod) error {
	repo.closed = period
	for i := range repo.periods {
		if repo.periods[i].ID == period.ID {
			repo.periods[i] = *period
		}
	}
	return nil
}

func (repo *fakePeriodRepo) ReplaceAllForMember(memberID uint, periods []models.MembershipPeriod, promoteToRegistered bool) error {
	repo.lastPromote = promoteToRegistered
	var kept []models.MembershipPeriod
	for _, period := range repo.periods {
		if period.MemberID != memberID {
			kept = append(kept, period)
		}
	}
	for _, period := range periods {
		repo.nextID++
		period.ID = repo.nextID
		period.MemberID = memberID
		kept = append(kept, period)
	}
	repo.periods = kept
	return nil
}

type fakeMemberLookup struct {
	members map[uint]models.Member
}

func (repo *fakeMemberLookup) FindByID(memberID uint) (models.Member, bool, error) {
	member, found := repo.members[memberID]
	return member, found, nil
}

func newPeriodFixture() (*PeriodService, *fakePeriodRepo) {
	repo := &fakePeriodRepo{}
	members := &fakeMemberLookup{members: map[uint]models.Member{
		1: {ID: 1, Status: models.StatusPending},
	}}
	clk := clock.Fixed(mustParseDay("2025-06-15"))
	return NewPeriodService(repo, members, clk), repo
}

func TestCreatePeriodRejectsSecondOpen(t *testing.T) {
	service, _ := newPeriodFixture()

	if _, err := service.Create(1, mustParseDay("2025-01-01")); err != nil {
		t.Fatalf("expected first open period to succeed, got %v", err)
	}

	var conflict *ConflictError
	_, err := service.Create(1, mustParseDay("2025-06-01"))
	if !errors.As(err, &conflict) {
		t.Fatalf("expected a conflict on second open period, got %v", err)
	}
}

func TestCreatePeriodAfterClosedHistory(t *testing.T) {
	service, repo := newPeriodFixture()

	end := mustParseDay("2024-12-31")
	reason := models.EndReasonWithdrawal
	repo.periods = append(repo.periods, models.MembershipPeriod{
		ID: 1, MemberID: 1, StartDate: mustParseDay("2024-01-01"), EndDate: &end, EndReason: &reason,
	})
	repo.nextID = 1

	period, err := service.Create(1, mustParseDay("2025-03-01"))
	if err != nil {
		t.Fatalf("expected renewal after closed history to succeed, got %v", err)
	}
	if !period.IsOpen() {
		t.Fatal("expected newly created period to be open")
	}
}

func TestCreatePeriodUnknownMember(t *testing.T) {
	service, _ := newPeriodFixture()

	var notFound *NotFoundError
	_, err := service.Create(99, mustParseDay("2025-01-01"))
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found for unknown member, got %v", err)
	}
}

func TestClosePeriodValidation(t *testing.T) {
	service, repo := newPeriodFixture()
	repo.periods = append(repo.periods, models.MembershipPeriod{
		ID: 1, MemberID: 1, StartDate: mustParseDay("2025-03-01"),
	})

	var validation *ValidationError
	if _, err := service.Close(1, mustParseDay("2025-06-01"), "rage_quit"); !errors.As(err, &validation) {
		t.Fatalf("expected unknown end reason to be rejected, got %v", err)
	}
	if _, err := service.Close(1, mustParseDay("2025-02-01"), models.EndReasonWithdrawal); !errors.As(err, &validation) {
		t.Fatalf("expected end before start to be rejected, got %v", err)
	}

	var notFound *NotFoundError
	if _, err := service.Close(42, mustParseDay("2025-06-01"), models.EndReasonWithdrawal); !errors.As(err, &notFound) {
		t.Fatalf("expected missing period to be reported, got %v", err)
	}

	period, err := service.Close(1, mustParseDay("2025-06-01"), models.EndReasonWithdrawal)
	if err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}
	if period.IsOpen() {
		t.Fatal("expected period to be closed")
	}
	if repo.closed == nil {
		t.Fatal("expected close to go through the deactivating store call")
	}
}

func TestReplaceAllValidation(t *testing.T) {
	service, _ := newPeriodFixture()
	end := mustParseDay("2024-06-01")
	reason := models.EndReasonWithdrawal

	var validation *ValidationError
	var conflict *ConflictError

	// Closed period without a reason.
	_, err := service.ReplaceAll(1, []models.MembershipPeriod{
		{StartDate: mustParseDay("2024-01-01"), EndDate: &end},
	})
	if !errors.As(err, &validation) {
		t.Fatalf("expected closed period without reason to be rejected, got %v", err)
	}

	// Reason without an end date.
	_, err = service.ReplaceAll(1, []models.MembershipPeriod{
		{StartDate: mustParseDay("2024-01-01"), EndReason: &reason},
	})
	if !errors.As(err, &validation) {
		t.Fatalf("expected reason without end date to be rejected, got %v", err)
	}

	// Two open periods.
	_, err = service.ReplaceAll(1, []models.MembershipPeriod{
		{StartDate: mustParseDay("2024-01-01")},
		{StartDate: mustParseDay("2025-01-01")},
	})
	if !errors.As(err, &conflict) {
		t.Fatalf("expected two open periods to conflict, got %v", err)
	}
}

func TestReplaceAllPromotesOnlyWithOpenPeriod(t *testing.T) {
	service, repo := newPeriodFixture()
	end := mustParseDay("2024-06-01")
	reason := models.EndReasonWithdrawal

	// Fully closed history: no promotion.
	_, err := service.ReplaceAll(1, []models.MembershipPeriod{
		{StartDate: mustParseDay("2024-01-01"), EndDate: &end, EndReason: &reason},
	})
	if err != nil {
		t.Fatalf("expected closed history replace to succeed, got %v", err)
	}
	if repo.lastPromote {
		t.Fatal("expected no promotion for a fully closed history")
	}

	// History with one open period: promotion.
	replaced, err := service.ReplaceAll(1, []models.MembershipPeriod{
		{StartDate: mustParseDay("2024-01-01"), EndDate: &end, EndReason: &reason},
		{StartDate: mustParseDay("2025-01-01")},
	})
	if err != nil {
		t.Fatalf("expected mixed history replace to succeed, got %v", err)
	}
	if !repo.lastPromote {
		t.Fatal("expected promotion when the new history holds an open period")
	}
	if len(replaced) != 2 {
		t.Fatalf("expected 2 periods after replace, got %d", len(replaced))
	}
}

func TestTotalDurationDays(t *testing.T) {
	now := mustParseDay("2025-06-15")
	end := mustParseDay("2024-03-01")
	badEnd := mustParseDay("2023-01-01")

	periods := []models.MembershipPeriod{
		// 60 days closed.
		{StartDate: mustParseDay("2024-01-01"), EndDate: &end},
		// Open, counted up to now: 165 days from 2025-01-01.
		{StartDate: mustParseDay("2025-01-01")},
		// Corrupt span, contributes zero.
		{StartDate: mustParseDay("2024-06-01"), EndDate: &badEnd},
	}

	got := TotalDurationDays(periods, now)
	if got != 225 {
		t.Fatalf("expected 225 days, got %d", got)
	}

	if TotalDurationDays(nil, now) != 0 {
		t.Fatal("expected empty history to total zero days")
	}
}

package services

import (
	"errors"
	"testing"

	"github.com/terramonte/ridgeline/internal/models"
)

type fakeActivityRepo struct {
	activities map[uint]models.Activity
	types      map[uint]models.ActivityType
	nextID     uint
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{
		activities: make(map[uint]models.Activity),
		types:      make(map[uint]models.ActivityType),
	}
}

func (repo *fakeActivityRepo) FindByID(activityID uint) (models.Activity, bool, error) {
	activity, found := repo.activities[activityID]
	return activity, found, nil
}

func (repo *fakeActivityRepo) List() ([]models.Activity, error) {
	var out []models.Activity
	for _, activity := range repo.activities {
		out = append(out, activity)
	}
	return out, nil
}

func (repo *fakeActivityRepo) ListCompletedByMember(memberID uint) ([]models.Activity, error) {
	var out []models.Activity
	for _, activity := range repo.activities {
		if activity.Status != models.ActivityCompleted {
			continue
		}
		for _, participation := range activity.Participations {
			if participation.MemberID == memberID {
				out = append(out, activity)
				break
			}
		}
	}
	return out, nil
}

func (repo *fakeActivityRepo) Create(activity *models.Activity) error {
	repo.nextID++
	activity.ID = repo.nextID
	activity.Type = repo.types[activity.TypeID]
	repo.activities[activity.ID] = *activity
	return nil
}

func (repo *fakeActivityRepo) Save(activity *models.Activity) error {
	repo.activities[activity.ID] = *activity
	return nil
}

func (repo *fakeActivityRepo) FindTypeByID(typeID uint) (models.ActivityType, bool, error) {
	activityType, found := repo.types[typeID]
	return activityType, found, nil
}

func (repo *fakeActivityRepo) CreateType(activityType *models.ActivityType) error {
	repo.nextID++
	activityType.ID = repo.nextID
	repo.types[activityType.ID] = *activityType
	return nil
}

func (repo *fakeActivityRepo) ListTypes() ([]models.ActivityType, error) {
	var out []models.ActivityType
	for _, activityType := range repo.types {
		out = append(out, activityType)
	}
	return out, nil
}

func (repo *fakeActivityRepo) ReplaceParticipants(activityID uint, participations []models.ActivityParticipation) error {
	activity := repo.activities[activityID]
	activity.Participations = participations
	repo.activities[activityID] = activity
	return nil
}

type fakeActivityMembers struct {
	members         map[uint]models.Member
	recognizedHours map[uint]float64
}

func (repo *fakeActivityMembers) FindByID(memberID uint) (models.Member, bool, error) {
	member, found := repo.members[memberID]
	return member, found, nil
}

func (repo *fakeActivityMembers) SetRecognizedHours(memberID uint, hours float64) error {
	repo.recognizedHours[memberID] = hours
	return nil
}

func newActivityFixture() (*ActivityService, *fakeActivityRepo, *fakeActivityMembers) {
	repo := newFakeActivityRepo()
	repo.types[1] = models.ActivityType{ID: 1, Name: "hike"}
	members := &fakeActivityMembers{
		members: map[uint]models.Member{
			1: {ID: 1}, 2: {ID: 2}, 3: {ID: 3},
		},
		recognizedHours: make(map[uint]float64),
	}
	return NewActivityService(repo, members), repo, members
}

func TestCreateActivityValidation(t *testing.T) {
	service, _, _ := newActivityFixture()
	var validation *ValidationError

	_, err := service.Create(ActivityInput{TypeID: 1, Name: "  ", StartDate: "2025-05-10"})
	if !errors.As(err, &validation) {
		t.Fatalf("expected blank name to be rejected, got %v", err)
	}

	_, err = service.Create(ActivityInput{TypeID: 99, Name: "Tura", StartDate: "2025-05-10"})
	if !errors.As(err, &validation) {
		t.Fatalf("expected unknown type to be rejected, got %v", err)
	}

	negative := -2.0
	_, err = service.Create(ActivityInput{TypeID: 1, Name: "Tura", StartDate: "2025-05-10", ManualHours: &negative})
	if !errors.As(err, &validation) {
		t.Fatalf("expected negative manual hours to be rejected, got %v", err)
	}

	activity, err := service.Create(ActivityInput{TypeID: 1, Name: "Tura", StartDate: "2025-05-10"})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if activity.Status != models.ActivityPlanned {
		t.Fatalf("expected default status planned, got %q", activity.Status)
	}
	if activity.RecognitionPercentage != models.DefaultRecognitionPercentage {
		t.Fatalf("expected default recognition percentage, got %d", activity.RecognitionPercentage)
	}
}

func TestSetParticipantsGuideExclusivity(t *testing.T) {
	service, _, _ := newActivityFixture()
	activity, err := service.Create(ActivityInput{TypeID: 1, Name: "Tura", StartDate: "2025-05-10"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := service.SetParticipants(activity.ID, []ParticipantInput{
		{MemberID: 1, Role: models.RoleGuide},
		{MemberID: 2, Role: models.RoleRegular},
		{MemberID: 3, Role: models.RoleGuide},
	})
	if err != nil {
		t.Fatalf("set participants failed: %v", err)
	}

	roles := make(map[uint]string)
	for _, participation := range updated.Participations {
		roles[participation.MemberID] = participation.Role
	}
	if roles[3] != models.RoleGuide {
		t.Fatalf("expected last guide assignment to win, got %q", roles[3])
	}
	if roles[1] != models.RoleRegular {
		t.Fatalf("expected earlier guide to be demoted to regular, got %q", roles[1])
	}
}

func TestSetParticipantsRejectsDuplicates(t *testing.T) {
	service, _, _ := newActivityFixture()
	activity, err := service.Create(ActivityInput{TypeID: 1, Name: "Tura", StartDate: "2025-05-10"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var conflict *ConflictError
	_, err = service.SetParticipants(activity.ID, []ParticipantInput{
		{MemberID: 1}, {MemberID: 1},
	})
	if !errors.As(err, &conflict) {
		t.Fatalf("expected duplicate member to conflict, got %v", err)
	}

	var notFound *NotFoundError
	_, err = service.SetParticipants(activity.ID, []ParticipantInput{{MemberID: 42}})
	if !errors.As(err, &notFound) {
		t.Fatalf("expected unknown member to be reported, got %v", err)
	}

	var validation *ValidationError
	_, err = service.SetParticipants(activity.ID, []ParticipantInput{{MemberID: 1, Role: "sherpa"}})
	if !errors.As(err, &validation) {
		t.Fatalf("expected unknown role to be rejected, got %v", err)
	}
}

func TestMemberHoursAggregationAndCacheRefresh(t *testing.T) {
	service, _, members := newActivityFixture()

	first, err := service.Create(ActivityInput{
		TypeID: 1, Name: "Spring tour", Status: models.ActivityCompleted,
		StartDate: "2024-05-10", ManualHours: floatPtr(8),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.SetParticipants(first.ID, []ParticipantInput{{MemberID: 1, Role: models.RoleGuide}}); err != nil {
		t.Fatalf("set participants failed: %v", err)
	}

	second, err := service.Create(ActivityInput{
		TypeID: 1, Name: "Autumn tour", Status: models.ActivityCompleted,
		StartDate: "2025-10-04", ManualHours: floatPtr(4),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.SetParticipants(second.ID, []ParticipantInput{{MemberID: 1, Role: models.RoleRegular}}); err != nil {
		t.Fatalf("set participants failed: %v", err)
	}

	summary, err := service.MemberHours(1, nil)
	if err != nil {
		t.Fatalf("member hours failed: %v", err)
	}
	if summary.TotalHours != 8.4 {
		t.Fatalf("expected 8.4 total hours, got %v", summary.TotalHours)
	}
	if summary.Activities != 2 {
		t.Fatalf("expected 2 credited activities, got %d", summary.Activities)
	}
	if summary.ByYear[2024] != 8 || summary.ByYear[2025] != 0.4 {
		t.Fatalf("unexpected per-year breakdown: %v", summary.ByYear)
	}
	if members.recognizedHours[1] != 8.4 {
		t.Fatalf("expected recognized hours cache at 8.4, got %v", members.recognizedHours[1])
	}

	// A year filter narrows the summary but the cache keeps the full total.
	year := 2024
	summary, err = service.MemberHours(1, &year)
	if err != nil {
		t.Fatalf("member hours failed: %v", err)
	}
	if summary.TotalHours != 8 {
		t.Fatalf("expected 8 hours for 2024, got %v", summary.TotalHours)
	}
	if members.recognizedHours[1] != 8.4 {
		t.Fatalf("expected cache to stay at 8.4, got %v", members.recognizedHours[1])
	}
}

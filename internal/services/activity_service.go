package services

import (
	"strings"
	"time"

	"github.com/terramonte/ridgeline/internal/models"
)

type ActivityRepository interface {
	FindByID(activityID uint) (models.Activity, bool, error)
	List() ([]models.Activity, error)
	ListCompletedByMember(memberID uint) ([]models.Activity, error)
	Create(activity *models.Activity) error
	Save(activity *models.Activity) error
	FindTypeByID(typeID uint) (models.ActivityType, bool, error)
	CreateType(activityType *models.ActivityType) error
	ListTypes() ([]models.ActivityType, error)
	ReplaceParticipants(activityID uint, participations []models.ActivityParticipation) error
}

type ActivityMemberRepository interface {
	FindByID(memberID uint) (models.Member, bool, error)
	SetRecognizedHours(memberID uint, hours float64) error
}

type ActivityService struct {
	activities ActivityRepository
	members    ActivityMemberRepository
}

func NewActivityService(activities ActivityRepository, members ActivityMemberRepository) *ActivityService {
	return &ActivityService{activities: activities, members: members}
}

type ActivityInput struct {
	TypeID                uint       `json:"type_id"`
	Name                  string     `json:"name"`
	Status                string     `json:"status"`
	StartDate             string     `json:"start_date"`
	ActualStartTime       *time.Time `json:"actual_start_time"`
	ActualEndTime         *time.Time `json:"actual_end_time"`
	ManualHours           *float64   `json:"manual_hours"`
	RecognitionPercentage *int       `json:"recognition_percentage"`
}

func (service *ActivityService) Create(input ActivityInput) (models.Activity, error) {
	activity, err := service.buildActivity(input, models.Activity{})
	if err != nil {
		return models.Activity{}, err
	}
	if err := service.activities.Create(&activity); err != nil {
		return models.Activity{}, NewStoreError("create activity", err)
	}
	return activity, nil
}

func (service *ActivityService) Update(activityID uint, input ActivityInput) (models.Activity, error) {
	existing, found, err := service.activities.FindByID(activityID)
	if err != nil {
		return models.Activity{}, NewStoreError("load activity", err)
	}
	if !found {
		return models.Activity{}, NewNotFoundError("activity")
	}

	updated, err := service.buildActivity(input, existing)
	if err != nil {
		return models.Activity{}, err
	}
	if err := service.activities.Save(&updated); err != nil {
		return models.Activity{}, NewStoreError("save activity", err)
	}
	return updated, nil
}

func (service *ActivityService) buildActivity(input ActivityInput, base models.Activity) (models.Activity, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Activity{}, NewValidationError("activity name is required")
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = models.ActivityPlanned
	}
	if !models.IsKnownActivityStatus(status) {
		return models.Activity{}, NewValidationError("unknown activity status %q", status)
	}

	if _, found, err := service.activities.FindTypeByID(input.TypeID); err != nil {
		return models.Activity{}, NewStoreError("load activity type", err)
	} else if !found {
		return models.Activity{}, NewValidationError("activity has no identifiable type")
	}

	startDate, err := ParseStoredDate(input.StartDate, time.UTC)
	if err != nil {
		return models.Activity{}, err
	}

	if input.ManualHours != nil && *input.ManualHours < 0 {
		return models.Activity{}, NewValidationError("manual hours cannot be negative")
	}
	if input.ActualStartTime != nil && input.ActualEndTime != nil &&
		input.ActualEndTime.Before(*input.ActualStartTime) {
		return models.Activity{}, NewValidationError("actual end time precedes actual start time")
	}

	recognition := models.DefaultRecognitionPercentage
	if input.RecognitionPercentage != nil {
		recognition = *input.RecognitionPercentage
	}
	if recognition < 0 || recognition > 100 {
		return models.Activity{}, NewValidationError("recognition percentage must be between 0 and 100")
	}

	base.TypeID = input.TypeID
	base.Name = name
	base.Status = status
	base.StartDate = dateOnly(startDate)
	base.ActualStartTime = input.ActualStartTime
	base.ActualEndTime = input.ActualEndTime
	base.ManualHours = input.ManualHours
	base.RecognitionPercentage = recognition
	base.Participations = nil
	return base, nil
}

func (service *ActivityService) List() ([]models.Activity, error) {
	activities, err := service.activities.List()
	if err != nil {
		return nil, NewStoreError("list activities", err)
	}
	return activities, nil
}

func (service *ActivityService) Find(activityID uint) (models.Activity, error) {
	activity, found, err := service.activities.FindByID(activityID)
	if err != nil {
		return models.Activity{}, NewStoreError("load activity", err)
	}
	if !found {
		return models.Activity{}, NewNotFoundError("activity")
	}
	return activity, nil
}

func (service *ActivityService) CreateType(name string) (models.ActivityType, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return models.ActivityType{}, NewValidationError("activity type name is required")
	}
	activityType := models.ActivityType{Name: trimmed}
	if err := service.activities.CreateType(&activityType); err != nil {
		return models.ActivityType{}, NewStoreError("create activity type", err)
	}
	return activityType, nil
}

func (service *ActivityService) ListTypes() ([]models.ActivityType, error) {
	types, err := service.activities.ListTypes()
	if err != nil {
		return nil, NewStoreError("list activity types", err)
	}
	return types, nil
}

type ParticipantInput struct {
	MemberID            uint     `json:"member_id"`
	Role                string   `json:"role"`
	ManualHours         *float64 `json:"manual_hours"`
	RecognitionOverride *int     `json:"recognition_override"`
}

// SetParticipants replaces the activity's participant set. The guide role is
// exclusive: when the input names more than one guide, the last assignment
// wins and every earlier guide is demoted to regular, all in one write.
func (service *ActivityService) SetParticipants(activityID uint, inputs []ParticipantInput) (models.Activity, error) {
	if _, found, err := service.activities.FindByID(activityID); err != nil {
		return models.Activity{}, NewStoreError("load activity", err)
	} else if !found {
		return models.Activity{}, NewNotFoundError("activity")
	}

	participations := make([]models.ActivityParticipation, 0, len(inputs))
	seenMembers := make(map[uint]struct{}, len(inputs))
	lastGuideIndex := -1

	for _, input := range inputs {
		if _, duplicate := seenMembers[input.MemberID]; duplicate {
			return models.Activity{}, NewConflictError("member %d listed twice for this activity", input.MemberID)
		}
		seenMembers[input.MemberID] = struct{}{}

		if _, found, err := service.members.FindByID(input.MemberID); err != nil {
			return models.Activity{}, NewStoreError("load member", err)
		} else if !found {
			return models.Activity{}, NewNotFoundError("member")
		}

		role := strings.TrimSpace(input.Role)
		if role == "" {
			role = models.RoleRegular
		}
		if !models.IsKnownParticipantRole(role) {
			return models.Activity{}, NewValidationError("unknown participant role %q", role)
		}
		if input.ManualHours != nil && *input.ManualHours < 0 {
			return models.Activity{}, NewValidationError("manual hours cannot be negative")
		}
		if input.RecognitionOverride != nil && (*input.RecognitionOverride < 0 || *input.RecognitionOverride > 100) {
			return models.Activity{}, NewValidationError("recognition override must be between 0 and 100")
		}

		if role == models.RoleGuide {
			if lastGuideIndex >= 0 {
				participations[lastGuideIndex].Role = models.RoleRegular
			}
			lastGuideIndex = len(participations)
		}

		participations = append(participations, models.ActivityParticipation{
			MemberID:            input.MemberID,
			Role:                role,
			ManualHours:         input.ManualHours,
			RecognitionOverride: input.RecognitionOverride,
		})
	}

	if err := service.activities.ReplaceParticipants(activityID, participations); err != nil {
		return models.Activity{}, NewStoreError("replace participants", err)
	}
	return service.Find(activityID)
}

type ActivityHoursReport struct {
	ActivityID   uint             `json:"activity_id"`
	Hours        float64          `json:"hours"`
	Participants map[uint]float64 `json:"participants"`
}

func (service *ActivityService) HoursReport(activityID uint) (ActivityHoursReport, error) {
	activity, err := service.Find(activityID)
	if err != nil {
		return ActivityHoursReport{}, err
	}

	report := ActivityHoursReport{
		ActivityID:   activity.ID,
		Hours:        ActivityHours(activity),
		Participants: make(map[uint]float64, len(activity.Participations)),
	}
	for _, participation := range activity.Participations {
		report.Participants[participation.MemberID] = ParticipantHours(activity, participation)
	}
	return report, nil
}

type MemberHoursSummary struct {
	MemberID   uint               `json:"member_id"`
	TotalHours float64            `json:"total_hours"`
	ByType     map[string]float64 `json:"by_type"`
	ByYear     map[int]float64    `json:"by_year"`
	Activities int                `json:"activities"`
}

// MemberHours aggregates credited hours across the member's completed
// activities, optionally filtered to one year, and refreshes the member's
// denormalized recognized_hours cache with the unfiltered total.
func (service *ActivityService) MemberHours(memberID uint, year *int) (MemberHoursSummary, error) {
	if _, found, err := service.members.FindByID(memberID); err != nil {
		return MemberHoursSummary{}, NewStoreError("load member", err)
	} else if !found {
		return MemberHoursSummary{}, NewNotFoundError("member")
	}

	activities, err := service.activities.ListCompletedByMember(memberID)
	if err != nil {
		return MemberHoursSummary{}, NewStoreError("list completed activities", err)
	}

	summary := MemberHoursSummary{
		MemberID: memberID,
		ByType:   make(map[string]float64),
		ByYear:   make(map[int]float64),
	}

	fullTotal := 0.0
	for _, activity := range activities {
		for _, participation := range activity.Participations {
			if participation.MemberID != memberID {
				continue
			}
			credited := ParticipantHours(activity, participation)
			fullTotal += credited

			activityYear := activity.StartDate.Year()
			if year != nil && activityYear != *year {
				continue
			}
			summary.TotalHours += credited
			summary.ByType[activity.Type.Name] = roundHours(summary.ByType[activity.Type.Name] + credited)
			summary.ByYear[activityYear] = roundHours(summary.ByYear[activityYear] + credited)
			summary.Activities++
		}
	}
	summary.TotalHours = roundHours(summary.TotalHours)

	if err := service.members.SetRecognizedHours(memberID, roundHours(fullTotal)); err != nil {
		return MemberHoursSummary{}, NewStoreError("refresh recognized hours", err)
	}
	return summary, nil
}

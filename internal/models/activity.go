package models

import "time"

const (
	ActivityPlanned   = "planned"
	ActivityActive    = "active"
	ActivityCompleted = "completed"
	ActivityCancelled = "cancelled"
)

const (
	RoleGuide          = "guide"
	RoleAssistantGuide = "assistant_guide"
	RoleDriver         = "driver"
	RoleRegular        = "regular"
)

const DefaultRecognitionPercentage = 100

type ActivityType struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

// Activity hours are derived lazily from the raw fields below; they are only
// meaningful while Status is completed. ManualHours, when set, overrides the
// timestamp-derived duration.
type Activity struct {
	ID                    uint      `gorm:"primaryKey"`
	TypeID                uint      `gorm:"not null;index"`
	Name                  string    `gorm:"not null"`
	Status                string    `gorm:"not null;default:planned"`
	StartDate             time.Time `gorm:"type:date;not null"`
	ActualStartTime       *time.Time
	ActualEndTime         *time.Time
	ManualHours           *float64
	RecognitionPercentage int `gorm:"not null;default:100"`
	CreatedAt             time.Time
	UpdatedAt             time.Time

	Type           ActivityType            `gorm:"foreignKey:TypeID"`
	Participations []ActivityParticipation `gorm:"foreignKey:ActivityID"`
}

func IsKnownActivityStatus(status string) bool {
	switch status {
	case ActivityPlanned, ActivityActive, ActivityCompleted, ActivityCancelled:
		return true
	}
	return false
}

// ActivityParticipation joins members to activities. RecognitionOverride
// takes precedence over role and activity level percentages when present.
type ActivityParticipation struct {
	ID                  uint   `gorm:"primaryKey"`
	ActivityID          uint   `gorm:"not null;index;uniqueIndex:uidx_activity_member"`
	MemberID            uint   `gorm:"not null;index;uniqueIndex:uidx_activity_member"`
	Role                string `gorm:"not null;default:regular"`
	ManualHours         *float64
	RecognitionOverride *int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func IsKnownParticipantRole(role string) bool {
	switch role {
	case RoleGuide, RoleAssistantGuide, RoleDriver, RoleRegular:
		return true
	}
	return false
}

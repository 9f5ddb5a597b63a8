package models

import "time"

const (
	StatusPending    = "pending"
	StatusRegistered = "registered"
	StatusInactive   = "inactive"
)

const (
	CategoryAdult   = "adult"
	CategoryStudent = "student"
	CategorySenior  = "senior"
)

const (
	StampTypeRegular = "regular"
	StampTypeStudent = "student"
	StampTypeSenior  = "senior"
)

// Member.Status is a cache of derived membership logic. Business decisions go
// through services.ResolveDisplayStatus; only the expiration sweeper and the
// period operations write this field.
type Member struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Category  string `gorm:"not null;default:adult"`
	Status    string `gorm:"not null;default:pending"`
	// RecognizedHours is a denormalized total, recomputable from completed
	// activities at any time.
	RecognizedHours float64 `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StampType maps the member's life-status category to the annual card sticker
// variant handed out for it.
func (member Member) StampType() string {
	switch member.Category {
	case CategoryStudent:
		return StampTypeStudent
	case CategorySenior:
		return StampTypeSenior
	default:
		return StampTypeRegular
	}
}

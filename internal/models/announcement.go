package models

import "time"

// Announcement is an admin message to the membership. BodyHTML is rendered
// from BodyMarkdown at write time.
type Announcement struct {
	ID           uint   `gorm:"primaryKey"`
	PublicID     string `gorm:"uniqueIndex;not null"`
	Title        string `gorm:"not null"`
	BodyMarkdown string `gorm:"not null"`
	BodyHTML     string `gorm:"not null"`
	AuthorEmail  string `gorm:"not null"`
	PublishedAt  time.Time
	CreatedAt    time.Time
}

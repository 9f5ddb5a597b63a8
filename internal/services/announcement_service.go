package services

import (
	"bytes"
	"strings"

	"github.com/google/uuid"
	"github.com/terramonte/ridgeline/internal/clock"
	"github.com/terramonte/ridgeline/internal/models"
	"github.com/yuin/goldmark"
)

type AnnouncementRepository interface {
	List() ([]models.Announcement, error)
	FindByPublicID(publicID string) (models.Announcement, bool, error)
	Create(announcement *models.Announcement) error
	DeleteByPublicID(publicID string) (int64, error)
}

// AnnouncementService handles admin messages to the membership. Markdown is
// rendered to HTML once, at publish time.
type AnnouncementService struct {
	announcements AnnouncementRepository
	clock         clock.Clock
	markdown      goldmark.Markdown
}

func NewAnnouncementService(announcements AnnouncementRepository, clk clock.Clock) *AnnouncementService {
	return &AnnouncementService{
		announcements: announcements,
		clock:         clk,
		markdown:      goldmark.New(),
	}
}

func (service *AnnouncementService) Publish(title string, bodyMarkdown string, authorEmail string) (models.Announcement, error) {
	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return models.Announcement{}, NewValidationError("announcement title is required")
	}
	trimmedBody := strings.TrimSpace(bodyMarkdown)
	if trimmedBody == "" {
		return models.Announcement{}, NewValidationError("announcement body is required")
	}

	var rendered bytes.Buffer
	if err := service.markdown.Convert([]byte(trimmedBody), &rendered); err != nil {
		return models.Announcement{}, NewValidationError("announcement body could not be rendered: %v", err)
	}

	announcement := models.Announcement{
		PublicID:     uuid.NewString(),
		Title:        trimmedTitle,
		BodyMarkdown: trimmedBody,
		BodyHTML:     rendered.String(),
		AuthorEmail:  strings.TrimSpace(authorEmail),
		PublishedAt:  service.clock.Now(),
	}
	if err := service.announcements.Create(&announcement); err != nil {
		return models.Announcement{}, NewStoreError("create announcement", err)
	}
	return announcement, nil
}

func (service *AnnouncementService) List() ([]models.Announcement, error) {
	announcements, err := service.announcements.List()
	if err != nil {
		return nil, NewStoreError("list announcements", err)
	}
	return announcements, nil
}

func (service *AnnouncementService) Find(publicID string) (models.Announcement, error) {
	announcement, found, err := service.announcements.FindByPublicID(publicID)
	if err != nil {
		return models.Announcement{}, NewStoreError("load announcement", err)
	}
	if !found {
		return models.Announcement{}, NewNotFoundError("announcement")
	}
	return announcement, nil
}

func (service *AnnouncementService) Delete(publicID string) error {
	deleted, err := service.announcements.DeleteByPublicID(publicID)
	if err != nil {
		return NewStoreError("delete announcement", err)
	}
	if deleted == 0 {
		return NewNotFoundError("announcement")
	}
	return nil
}

package db

import (
	"github.com/terramonte/ridgeline/internal/models"
	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	database *gorm.DB
}

func NewAnnouncementRepository(database *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{database: database}
}

func (repo *AnnouncementRepository) List() ([]models.Announcement, error) {
	announcements := make([]models.Announcement, 0)
	if err := repo.database.Order("published_at DESC, id DESC").Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

func (repo *AnnouncementRepository) FindByPublicID(publicID string) (models.Announcement, bool, error) {
	var announcement models.Announcement
	result := repo.database.Where("public_id = ?", publicID).Limit(1).Find(&announcement)
	if result.Error != nil {
		return models.Announcement{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Announcement{}, false, nil
	}
	return announcement, true, nil
}

func (repo *AnnouncementRepository) Create(announcement *models.Announcement) error {
	return repo.database.Create(announcement).Error
}

func (repo *AnnouncementRepository) DeleteByPublicID(publicID string) (int64, error) {
	result := repo.database.Where("public_id = ?", publicID).Delete(&models.Announcement{})
	return result.RowsAffected, result.Error
}

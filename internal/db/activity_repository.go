package db

import (
	"github.com/terramonte/ridgeline/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository struct {
	database *gorm.DB
}

func NewActivityRepository(database *gorm.DB) *ActivityRepository {
	return &ActivityRepository{database: database}
}

func (repo *ActivityRepository) FindByID(activityID uint) (models.Activity, bool, error) {
	var activity models.Activity
	result := repo.database.
		Preload("Participations").
		Preload("Type").
		Where("id = ?", activityID).
		Limit(1).
		Find(&activity)
	if result.Error != nil {
		return models.Activity{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Activity{}, false, nil
	}
	return activity, true, nil
}

func (repo *ActivityRepository) List() ([]models.Activity, error) {
	activities := make([]models.Activity, 0)
	if err := repo.database.
		Preload("Participations").
		Preload("Type").
		Order("start_date DESC, id DESC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// ListCompletedByMember loads every completed activity the member took part
// in, with all participations preloaded (driver tiering needs the full set).
func (repo *ActivityRepository) ListCompletedByMember(memberID uint) ([]models.Activity, error) {
	activities := make([]models.Activity, 0)
	if err := repo.database.
		Preload("Participations").
		Preload("Type").
		Where("status = ?", models.ActivityCompleted).
		Where("id IN (?)", repo.database.Model(&models.ActivityParticipation{}).
			Select("activity_id").
			Where("member_id = ?", memberID)).
		Order("start_date ASC, id ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// Create and Save write the activity row only; participations go through
// ReplaceParticipants and types through CreateType.
func (repo *ActivityRepository) Create(activity *models.Activity) error {
	return repo.database.Omit(clause.Associations).Create(activity).Error
}

func (repo *ActivityRepository) Save(activity *models.Activity) error {
	return repo.database.Omit(clause.Associations).Save(activity).Error
}

func (repo *ActivityRepository) FindTypeByID(typeID uint) (models.ActivityType, bool, error) {
	var activityType models.ActivityType
	result := repo.database.Where("id = ?", typeID).Limit(1).Find(&activityType)
	if result.Error != nil {
		return models.ActivityType{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.ActivityType{}, false, nil
	}
	return activityType, true, nil
}

func (repo *ActivityRepository) CreateType(activityType *models.ActivityType) error {
	return repo.database.Create(activityType).Error
}

func (repo *ActivityRepository) ListTypes() ([]models.ActivityType, error) {
	types := make([]models.ActivityType, 0)
	if err := repo.database.Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// ReplaceParticipants swaps the activity's participant set atomically.
func (repo *ActivityRepository) ReplaceParticipants(activityID uint, participations []models.ActivityParticipation) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", activityID).Delete(&models.ActivityParticipation{}).Error; err != nil {
			return err
		}
		for index := range participations {
			participations[index].ID = 0
			participations[index].ActivityID = activityID
			if err := tx.Create(&participations[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

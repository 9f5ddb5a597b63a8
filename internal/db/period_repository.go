package db

import (
	"github.com/terramonte/ridgeline/internal/models"
	"gorm.io/gorm"
)

type PeriodRepository struct {
	database *gorm.DB
}

func NewPeriodRepository(database *gorm.DB) *PeriodRepository {
	return &PeriodRepository{database: database}
}

func (repo *PeriodRepository) ListByMember(memberID uint) ([]models.MembershipPeriod, error) {
	periods := make([]models.MembershipPeriod, 0)
	if err := repo.database.
		Where("member_id = ?", memberID).
		Order("start_date ASC, id ASC").
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

func (repo *PeriodRepository) FindOpenByMember(memberID uint) (models.MembershipPeriod, bool, error) {
	var period models.MembershipPeriod
	result := repo.database.
		Where("member_id = ? AND end_date IS NULL", memberID).
		Order("start_date DESC, id DESC").
		Limit(1).
		Find(&period)
	if result.Error != nil {
		return models.MembershipPeriod{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MembershipPeriod{}, false, nil
	}
	return period, true, nil
}

func (repo *PeriodRepository) FindByID(periodID uint) (models.MembershipPeriod, bool, error) {
	var period models.MembershipPeriod
	result := repo.database.Where("id = ?", periodID).Limit(1).Find(&period)
	if result.Error != nil {
		return models.MembershipPeriod{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MembershipPeriod{}, false, nil
	}
	return period, true, nil
}

func (repo *PeriodRepository) Create(period *models.MembershipPeriod) error {
	return repo.database.Create(period).Error
}

func (repo *PeriodRepository) Save(period *models.MembershipPeriod) error {
	return repo.database.Save(period).Error
}

// CloseAndDeactivate sets the period's end date and reason and flips the
// member's persisted status to inactive in the same transaction. Period-close
// operations and the expiration sweep are the only writers of that field.
func (repo *PeriodRepository) CloseAndDeactivate(period *models.MembershipPeriod) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(period).Error; err != nil {
			return err
		}
		return tx.Model(&models.Member{}).
			Where("id = ?", period.MemberID).
			Update("status", models.StatusInactive).Error
	})
}

// ReplaceAllForMember deletes every period of the member and inserts the
// supplied set atomically. When the new history contains an open period the
// member's status is promoted to registered inside the same transaction;
// status is never demoted here.
func (repo *PeriodRepository) ReplaceAllForMember(memberID uint, periods []models.MembershipPeriod, promoteToRegistered bool) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", memberID).Delete(&models.MembershipPeriod{}).Error; err != nil {
			return err
		}

		for index := range periods {
			periods[index].ID = 0
			periods[index].MemberID = memberID
			if err := tx.Create(&periods[index]).Error; err != nil {
				return err
			}
		}

		if promoteToRegistered {
			return tx.Model(&models.Member{}).
				Where("id = ?", memberID).
				Update("status", models.StatusRegistered).Error
		}
		return nil
	})
}

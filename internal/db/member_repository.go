package db

import (
	"time"

	"github.com/terramonte/ridgeline/internal/models"
	"gorm.io/gorm"
)

type MemberRepository struct {
	database *gorm.DB
}

func NewMemberRepository(database *gorm.DB) *MemberRepository {
	return &MemberRepository{database: database}
}

func (repo *MemberRepository) FindByID(memberID uint) (models.Member, bool, error) {
	var member models.Member
	result := repo.database.Where("id = ?", memberID).Limit(1).Find(&member)
	if result.Error != nil {
		return models.Member{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Member{}, false, nil
	}
	return member, true, nil
}

// CreateWithOpenPeriod registers a new member: the member row, an open
// membership period starting at the registration date and an empty details
// row are created in one transaction.
func (repo *MemberRepository) CreateWithOpenPeriod(member *models.Member, startDate time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		period := models.MembershipPeriod{MemberID: member.ID, StartDate: startDate}
		if err := tx.Create(&period).Error; err != nil {
			return err
		}
		details := models.MembershipDetails{MemberID: member.ID}
		return tx.Create(&details).Error
	})
}

func (repo *MemberRepository) List() ([]models.Member, error) {
	members := make([]models.Member, 0)
	if err := repo.database.Order("last_name ASC, first_name ASC, id ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (repo *MemberRepository) ExistsByEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Member{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *MemberRepository) Create(member *models.Member) error {
	return repo.database.Create(member).Error
}

func (repo *MemberRepository) Save(member *models.Member) error {
	return repo.database.Save(member).Error
}

func (repo *MemberRepository) UpdateStatus(memberID uint, status string) error {
	return repo.database.Model(&models.Member{}).Where("id = ?", memberID).Update("status", status).Error
}

func (repo *MemberRepository) SetRecognizedHours(memberID uint, hours float64) error {
	return repo.database.Model(&models.Member{}).Where("id = ?", memberID).Update("recognized_hours", hours).Error
}

func (repo *MemberRepository) FindDetails(memberID uint) (models.MembershipDetails, bool, error) {
	var details models.MembershipDetails
	result := repo.database.Where("member_id = ?", memberID).Limit(1).Find(&details)
	if result.Error != nil {
		return models.MembershipDetails{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MembershipDetails{}, false, nil
	}
	return details, true, nil
}

func (repo *MemberRepository) SaveDetails(details *models.MembershipDetails) error {
	return repo.database.Save(details).Error
}

// CardNumberBoundToOther reports whether the card number is already assigned
// to a different member. Checked inside the same transaction that writes the
// assignment, so the unique index is the final arbiter.
func (repo *MemberRepository) CardNumberBoundToOther(cardNumber string, memberID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.MembershipDetails{}).
		Where("card_number = ? AND member_id <> ?", cardNumber, memberID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// RecordFeePayment persists the credited year, payment date and details row
// updates for one payment in a single transaction.
func (repo *MemberRepository) RecordFeePayment(memberID uint, creditedYear int, paymentDate time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var details models.MembershipDetails
		result := tx.Where("member_id = ?", memberID).Limit(1).Find(&details)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			details = models.MembershipDetails{MemberID: memberID}
		}
		details.FeePaymentYear = &creditedYear
		details.FeePaymentDate = &paymentDate
		return tx.Save(&details).Error
	})
}

// ExpireRegisteredBefore is the expiration sweep: members still registered
// whose credited fee year predates the given year (or who have no payment
// recorded) are flipped to inactive, their hour counters reset, and their
// open periods closed with reason non_payment. One transaction; re-running
// with the same year finds nothing left in registered status.
func (repo *MemberRepository) ExpireRegisteredBefore(year int, now time.Time) (int, error) {
	expired := 0
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		members := make([]models.Member, 0)
		if err := tx.
			Where("status = ?", models.StatusRegistered).
			Where("id NOT IN (?)", tx.Model(&models.MembershipDetails{}).
				Select("member_id").
				Where("fee_payment_year IS NOT NULL AND fee_payment_year >= ?", year)).
			Find(&members).Error; err != nil {
			return err
		}

		for _, member := range members {
			if err := tx.Model(&models.Member{}).Where("id = ?", member.ID).Updates(map[string]any{
				"status":           models.StatusInactive,
				"recognized_hours": 0,
			}).Error; err != nil {
				return err
			}

			if err := tx.Model(&models.MembershipPeriod{}).
				Where("member_id = ? AND end_date IS NULL", member.ID).
				Updates(map[string]any{
					"end_date":   now,
					"end_reason": models.EndReasonNonPayment,
				}).Error; err != nil {
				return err
			}
		}

		expired = len(members)
		return nil
	})
	return expired, err
}

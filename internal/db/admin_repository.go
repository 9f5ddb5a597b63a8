package db

import (
	"github.com/terramonte/ridgeline/internal/models"
	"gorm.io/gorm"
)

type AdminRepository struct {
	database *gorm.DB
}

func NewAdminRepository(database *gorm.DB) *AdminRepository {
	return &AdminRepository{database: database}
}

func (repo *AdminRepository) CountAdmins() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *AdminRepository) FindByNormalizedEmail(email string) (models.AdminUser, error) {
	var admin models.AdminUser
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&admin).Error; err != nil {
		return models.AdminUser{}, err
	}
	return admin, nil
}

func (repo *AdminRepository) FindByID(adminID uint) (models.AdminUser, error) {
	var admin models.AdminUser
	if err := repo.database.First(&admin, adminID).Error; err != nil {
		return models.AdminUser{}, err
	}
	return admin, nil
}

func (repo *AdminRepository) Create(admin *models.AdminUser) error {
	return repo.database.Create(admin).Error
}

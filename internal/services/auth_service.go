package services

import (
	"errors"
	"strings"

	"github.com/terramonte/ridgeline/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminRepository interface {
	CountAdmins() (int64, error)
	FindByNormalizedEmail(email string) (models.AdminUser, error)
	FindByID(adminID uint) (models.AdminUser, error)
	Create(admin *models.AdminUser) error
}

// AuthService is the thin admin boundary: one credential set, bcrypt
// verified. Authorization beyond "is the admin" is out of scope.
type AuthService struct {
	admins AdminRepository
}

func NewAuthService(admins AdminRepository) *AuthService {
	return &AuthService{admins: admins}
}

// EnsureBootstrapAdmin seeds the admin credential on first boot when none
// exists yet.
func (service *AuthService) EnsureBootstrapAdmin(email string, password string) error {
	count, err := service.admins.CountAdmins()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || strings.TrimSpace(password) == "" {
		return errors.New("bootstrap admin email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return service.admins.Create(&models.AdminUser{Email: normalized, PasswordHash: string(hash)})
}

func (service *AuthService) Authenticate(email string, password string) (models.AdminUser, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || password == "" {
		return models.AdminUser{}, ErrInvalidCredentials
	}

	admin, err := service.admins.FindByNormalizedEmail(normalized)
	if err != nil {
		return models.AdminUser{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return models.AdminUser{}, ErrInvalidCredentials
	}
	return admin, nil
}

func (service *AuthService) FindByID(adminID uint) (models.AdminUser, error) {
	return service.admins.FindByID(adminID)
}

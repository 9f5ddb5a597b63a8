package api

import (
	"time"

	"github.com/terramonte/ridgeline/internal/clock"
	"github.com/terramonte/ridgeline/internal/db"
	"github.com/terramonte/ridgeline/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName  = "ridgeline_auth"
	contextAdminKey = "current_admin"

	authTokenTTL = 7 * 24 * time.Hour
)

type Handler struct {
	secretKey    []byte
	cookieSecure bool
	clock        *clock.Simulated

	auth          *services.AuthService
	membership    *services.MembershipService
	periods       *services.PeriodService
	fees          *services.FeeService
	activities    *services.ActivityService
	expiration    *services.ExpirationService
	announcements *services.AnnouncementService
}

func NewHandler(database *gorm.DB, secretKey string, simulated *clock.Simulated) *Handler {
	repos := db.NewRepositories(database)

	return &Handler{
		secretKey:     []byte(secretKey),
		clock:         simulated,
		auth:          services.NewAuthService(repos.Admins),
		membership:    services.NewMembershipService(repos.Members, repos.Periods, simulated),
		periods:       services.NewPeriodService(repos.Periods, repos.Members, simulated),
		fees:          services.NewFeeService(repos.Members, simulated),
		activities:    services.NewActivityService(repos.Activities, repos.Members),
		expiration:    services.NewExpirationService(repos.Members, simulated),
		announcements: services.NewAnnouncementService(repos.Announcements, simulated),
	}
}

func (handler *Handler) AuthServiceForBootstrap() *services.AuthService {
	return handler.auth
}

package services

import (
	"time"

	"github.com/terramonte/ridgeline/internal/clock"
)

type ExpirationMemberRepository interface {
	ExpireRegisteredBefore(year int, now time.Time) (int, error)
}

// ExpirationService is the explicit administrative sweep that ends
// memberships whose fee year went stale. It is idempotent: members already
// flipped to inactive are not selected again.
type ExpirationService struct {
	members ExpirationMemberRepository
	clock   clock.Clock
}

func NewExpirationService(members ExpirationMemberRepository, clk clock.Clock) *ExpirationService {
	return &ExpirationService{members: members, clock: clk}
}

// EndExpired closes out every still-registered member whose credited fee
// year is older than the given year (or who never paid): status flips to
// inactive, hour counters reset, and open periods close with reason
// non_payment. All of it commits or rolls back together.
func (service *ExpirationService) EndExpired(year int) (int, error) {
	if year < MinPaymentYear || year > MaxPaymentYear {
		return 0, NewValidationError("sweep year %d outside allowed range %d-%d", year, MinPaymentYear, MaxPaymentYear)
	}

	expired, err := service.members.ExpireRegisteredBefore(year, service.clock.Now())
	if err != nil {
		return 0, NewStoreError("expire memberships", err)
	}
	return expired, nil
}

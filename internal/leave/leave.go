package leave

import (
	"context"
	"fmt"
	"time"

	"hrassistant/internal/domain"
)

// StatusPending is the status recorded for a freshly submitted
// application; approval happens outside this system.
const StatusPending = "Pending Approval"

// Service validates and records leave applications. The balance
// decrement and history append are delegated to the user store and are
// best-effort, not transactional.
type Service struct {
	store   domain.UserStore
	minDays float64
	maxDays float64
	now     func() time.Time
}

func NewService(store domain.UserStore, minDays, maxDays float64) *Service {
	return &Service{store: store, minDays: minDays, maxDays: maxDays, now: time.Now}
}

// Validate checks a requested day count against the configured bounds
// and the remaining balance. Checks run in a fixed order: positivity,
// minimum, maximum, sufficient balance. The first failure determines
// the reported reason. Days exactly equal to the remaining balance
// pass.
func (s *Service) Validate(days, remaining float64) error {
	switch {
	case days <= 0:
		return domain.Errorf(domain.ErrValidation, "leave days must be positive")
	case days < s.minDays:
		return domain.Errorf(domain.ErrValidation, "minimum leave is %g day", s.minDays)
	case days > s.maxDays:
		return domain.Errorf(domain.ErrValidation, "maximum leave is %g days", s.maxDays)
	case days > remaining:
		return domain.Errorf(domain.ErrValidation, "not enough remaining leaves")
	}
	return nil
}

// Apply validates the request against the user's current record, then
// decrements the balance and appends a pending history row. Returns the
// new balance.
func (s *Service) Apply(ctx context.Context, username string, days float64) (float64, error) {
	user, err := s.store.FindUser(ctx, username)
	if err != nil {
		return 0, err
	}
	if err := s.Validate(days, user.RemainingLeaves); err != nil {
		return 0, err
	}
	newRemaining := user.RemainingLeaves - days
	if err := s.store.UpdateRemainingLeaves(ctx, username, newRemaining); err != nil {
		return 0, fmt.Errorf("update remaining leaves: %w", err)
	}
	if err := s.store.AppendLeaveHistory(ctx, domain.LeaveRecord{
		Username: user.Username,
		Days:     days,
		Date:     s.now(),
		Status:   StatusPending,
	}); err != nil {
		return 0, fmt.Errorf("append leave history: %w", err)
	}
	return newRemaining, nil
}

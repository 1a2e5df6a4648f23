package premium

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cyberguardng/cyberguard/pkg/config"
	"github.com/cyberguardng/cyberguard/pkg/filestore"
)

const usersFile = "premium_users.json"

// ErrQuotaExceeded is returned when a free account has no checks left today
var ErrQuotaExceeded = errors.New("premium: daily check quota exceeded")

// ErrUnknownPlan is returned for an unrecognized plan id
var ErrUnknownPlan = errors.New("premium: unknown plan")

// Service enforces the free daily check quota and premium subscriptions
type Service struct {
	store           *filestore.Store
	freeDailyChecks int
	now             func() time.Time
}

// NewService creates a premium service
func NewService(store *filestore.Store, cfg *config.PremiumConfig) *Service {
	return &Service{
		store:           store,
		freeDailyChecks: cfg.FreeDailyChecks,
		now:             time.Now,
	}
}

func (s *Service) loadUsers() map[string]*User {
	users := make(map[string]*User)
	s.store.ReadJSON(usersFile, &users)
	return users
}

func (s *Service) saveUsers(users map[string]*User) error {
	return s.store.WriteJSON(usersFile, users)
}

// user returns the stored record, creating a fresh free account when absent
// and resetting the daily counter on date change
func (s *Service) user(users map[string]*User, id string) *User {
	u, ok := users[id]
	if !ok {
		u = &User{ID: id}
		users[id] = u
	}
	today := s.now().Format("2006-01-02")
	if u.CheckDate != today {
		u.CheckDate = today
		u.ChecksToday = 0
	}
	if u.Premium && s.now().After(u.PremiumUntil) {
		u.Premium = false
	}
	return u
}

// Status returns the quota view for a user
func (s *Service) Status(ctx context.Context, userID string) (*Status, error) {
	users := s.loadUsers()
	u := s.user(users, userID)
	if err := s.saveUsers(users); err != nil {
		return nil, err
	}
	return s.statusOf(u), nil
}

func (s *Service) statusOf(u *User) *Status {
	st := &Status{
		UserID:          u.ID,
		Premium:         u.Premium,
		ChecksUsedToday: u.ChecksToday,
		ChecksRemaining: -1,
	}
	if u.Premium {
		st.PremiumUntil = u.PremiumUntil.Format(time.RFC3339)
		return st
	}
	remaining := s.freeDailyChecks - u.ChecksToday
	if remaining < 0 {
		remaining = 0
	}
	st.ChecksRemaining = remaining
	return st
}

// Upgrade activates a plan for a user. An active subscription is extended
// from its current expiry.
func (s *Service) Upgrade(ctx context.Context, userID, plan string) (*Status, error) {
	p, ok := Plans[plan]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlan, plan)
	}

	users := s.loadUsers()
	u := s.user(users, userID)

	from := s.now()
	if u.Premium && u.PremiumUntil.After(from) {
		from = u.PremiumUntil
	}
	u.Premium = true
	u.PremiumUntil = from.AddDate(0, 0, p.Days)

	if err := s.saveUsers(users); err != nil {
		return nil, err
	}
	return s.statusOf(u), nil
}

// Consume spends one check for a free user. Premium users are unmetered.
// Returns ErrQuotaExceeded when the daily allowance is used up.
func (s *Service) Consume(ctx context.Context, userID string) (*Status, error) {
	users := s.loadUsers()
	u := s.user(users, userID)

	if !u.Premium {
		if u.ChecksToday >= s.freeDailyChecks {
			if err := s.saveUsers(users); err != nil {
				return nil, err
			}
			return s.statusOf(u), ErrQuotaExceeded
		}
		u.ChecksToday++
	}

	if err := s.saveUsers(users); err != nil {
		return nil, err
	}
	return s.statusOf(u), nil
}

package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bandoxanh-be/internal/config"
	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/contract"
	"bandoxanh-be/internal/repository/specification"
	"bandoxanh-be/internal/repository/unitofwork"
)

// Gate enforces daily AI usage limits. Counters reset on the first call of
// each calendar day; a negative limit means unlimited.
type Gate struct {
	limits config.QuotaConfig
	guests contract.GuestQuotaRepository
}

func NewGate(limits config.QuotaConfig, guests contract.GuestQuotaRepository) *Gate {
	return &Gate{
		limits: limits,
		guests: guests,
	}
}

// isNewDay reports whether now falls on a different calendar day than
// lastReset. Year, month, and day are compared directly.
func isNewDay(lastReset, now time.Time) bool {
	return now.Year() != lastReset.Year() ||
		now.Month() != lastReset.Month() ||
		now.Day() != lastReset.Day()
}

// nextReset is midnight at the start of tomorrow, local time.
func nextReset(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}

func (g *Gate) limitFor(plan entity.UserPlan) int {
	if plan == entity.UserPlanPro {
		return g.limits.ProDailyLimit
	}
	return g.limits.FreeDailyLimit
}

// ConsumeUser checks the user's remaining quota and, when allowed, records
// one unit of usage. Both the reset and the increment persist to the user
// row so the counter survives restarts.
func (g *Gate) ConsumeUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*dto.QuotaStatus, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	now := time.Now()
	usage := user.AiDailyUsage
	lastReset := user.AiDailyUsageLastReset
	if isNewDay(lastReset, now) {
		usage = 0
		lastReset = now
	}

	limit := g.limitFor(user.Plan)
	if limit >= 0 && usage >= limit {
		return nil, &dto.QuotaExceededError{
			Limit:    limit,
			Used:     usage,
			Guest:    false,
			ResetsAt: nextReset(now),
		}
	}

	usage++
	if err := uow.UserRepository().SetDailyUsage(ctx, user.Id, usage, lastReset); err != nil {
		return nil, err
	}

	return &dto.QuotaStatus{Used: usage, Limit: limit}, nil
}

// ConsumeGuest is the anonymous variant keyed by client IP. The counter
// lives in process memory; concurrent calls from one IP may race and the
// occasional lost update favors the guest.
func (g *Gate) ConsumeGuest(clientKey string) (*dto.QuotaStatus, error) {
	now := time.Now()

	usage, lastReset, ok := g.guests.Get(clientKey)
	if !ok || isNewDay(lastReset, now) {
		usage = 0
		lastReset = now
	}

	limit := g.limits.GuestDailyLimit
	if limit >= 0 && usage >= limit {
		return nil, &dto.QuotaExceededError{
			Limit:    limit,
			Used:     usage,
			Guest:    true,
			ResetsAt: nextReset(now),
		}
	}

	usage++
	g.guests.Set(clientKey, usage, lastReset)

	return &dto.QuotaStatus{Used: usage, Limit: limit}, nil
}

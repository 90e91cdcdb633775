package contract

import "time"

// GuestQuotaRepository tracks per-client AI usage for unauthenticated
// callers. Counters are ephemeral and keyed by client IP.
type GuestQuotaRepository interface {
	Get(key string) (usage int, lastReset time.Time, ok bool)
	Set(key string, usage int, lastReset time.Time)
}

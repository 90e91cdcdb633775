package memory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"bandoxanh-be/internal/repository/contract"
)

type guestQuotaEntry struct {
	Usage     int
	LastReset time.Time
}

// GuestQuotaRepositoryImpl keeps guest usage counters in process memory.
// Entries expire after 48h so stale IPs do not accumulate. Counters are
// lost on restart, which only ever favors the guest.
type GuestQuotaRepositoryImpl struct {
	cache *gocache.Cache
}

func NewGuestQuotaRepository() contract.GuestQuotaRepository {
	return &GuestQuotaRepositoryImpl{
		cache: gocache.New(48*time.Hour, time.Hour),
	}
}

func (r *GuestQuotaRepositoryImpl) Get(key string) (int, time.Time, bool) {
	v, found := r.cache.Get(key)
	if !found {
		return 0, time.Time{}, false
	}
	entry := v.(guestQuotaEntry)
	return entry.Usage, entry.LastReset, true
}

func (r *GuestQuotaRepositoryImpl) Set(key string, usage int, lastReset time.Time) {
	r.cache.Set(key, guestQuotaEntry{Usage: usage, LastReset: lastReset}, gocache.DefaultExpiration)
}

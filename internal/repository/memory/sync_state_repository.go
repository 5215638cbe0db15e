package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// SyncStateRepository keeps the last successful sync watermark per user in
// memory. Entries expire so a long-idle user falls back to a full snapshot.
type SyncStateRepository struct {
	cache *cache.Cache
}

func NewSyncStateRepository(ttl time.Duration) *SyncStateRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &SyncStateRepository{
		cache: c,
	}
}

func (r *SyncStateRepository) LastSync(userId string) (time.Time, bool) {
	if x, found := r.cache.Get(userId); found {
		return x.(time.Time), true
	}
	return time.Time{}, false
}

func (r *SyncStateRepository) RecordSync(userId string, at time.Time) {
	r.cache.Set(userId, at, cache.DefaultExpiration)
}

func (r *SyncStateRepository) Clear(userId string) {
	r.cache.Delete(userId)
}

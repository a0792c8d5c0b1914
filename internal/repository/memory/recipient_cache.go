package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const activeRecipientsKey = "active_recipients"

// RecipientCache keeps the set of active user ids warm so announcement
// fan-out does not hit the database on every event.
type RecipientCache struct {
	cache *cache.Cache
}

func NewRecipientCache(ttl time.Duration) *RecipientCache {
	c := cache.New(ttl, 2*ttl)
	return &RecipientCache{
		cache: c,
	}
}

func (r *RecipientCache) Save(userIds []uuid.UUID) {
	r.cache.Set(activeRecipientsKey, userIds, cache.DefaultExpiration)
}

func (r *RecipientCache) Get() ([]uuid.UUID, bool) {
	if x, found := r.cache.Get(activeRecipientsKey); found {
		return x.([]uuid.UUID), true
	}
	return nil, false
}

func (r *RecipientCache) Invalidate() {
	r.cache.Delete(activeRecipientsKey)
}

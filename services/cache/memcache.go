package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheService implements CacheService using memcache. The watcher uses it
// to persist rate-limit backoff windows across restarts. Keys are namespaced
// so several watchers can share one memcache instance.
type MemcacheService struct {
	client    *memcache.Client
	keyPrefix string
}

// NewMemcacheService creates a new memcache service
func NewMemcacheService(serverAddr, keyPrefix string) *MemcacheService {
	return &MemcacheService{
		client:    memcache.New(serverAddr),
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a value from memcache
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(m.keyPrefix + key)
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

// Set stores a value in memcache with an expiration time
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	return m.client.Set(&memcache.Item{
		Key:        m.keyPrefix + key,
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	})
}

// Delete removes a value from memcache
func (m *MemcacheService) Delete(key string) error {
	return m.client.Delete(m.keyPrefix + key)
}

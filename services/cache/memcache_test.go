package cache

import (
	"testing"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/assert"
)

// This test requires a running memcached instance
// If memcached is not available, the test will be skipped
func TestMemcacheService(t *testing.T) {
	mc := NewMemcacheService("localhost:11211", "flatwatcher_test:")

	// Test if memcached is available
	_, err := mc.client.Get("probe")
	if err != nil && err != memcache.ErrCacheMiss {
		t.Skip("Memcached is not available, skipping test")
	}

	err = mc.Set("backoff", []byte("300"), 1*time.Second)
	assert.NoError(t, err)

	value, err := mc.Get("backoff")
	assert.NoError(t, err)
	assert.Equal(t, "300", string(value))

	// The prefix keeps keys namespaced per application.
	_, err = mc.client.Get("flatwatcher_test:backoff")
	assert.NoError(t, err)

	err = mc.Delete("backoff")
	assert.NoError(t, err)

	_, err = mc.Get("backoff")
	assert.Error(t, err)
}

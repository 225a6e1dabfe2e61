package fetcher

import (
	"testing"
	"time"

	"github.com/kowala-tech/ballot/types"
	"github.com/stretchr/testify/assert"
)

func TestCacheRoundTrip(t *testing.T) {
	cache := NewCache(time.Minute, 8)
	ballots := []*types.Ballot{{ID: "0xb1"}}

	cache.Put("0xd1", ballots)

	entry, ok := cache.Get("0xd1", false)
	assert.True(t, ok)
	assert.Equal(t, ballots, entry.Ballots)
}

func TestCacheForceFreshBypassesEntry(t *testing.T) {
	cache := NewCache(time.Minute, 8)
	cache.Put("0xd1", []*types.Ballot{{ID: "0xb1"}})

	_, ok := cache.Get("0xd1", true)
	assert.False(t, ok)
}

func TestCacheEntryExpires(t *testing.T) {
	cache := NewCache(10*time.Millisecond, 8)
	cache.Put("0xd1", []*types.Ballot{{ID: "0xb1"}})

	time.Sleep(20 * time.Millisecond)

	_, ok := cache.Get("0xd1", false)
	assert.False(t, ok)
}

func TestCachePutReplaces(t *testing.T) {
	cache := NewCache(time.Minute, 8)
	cache.Put("0xd1", []*types.Ballot{{ID: "0xb1"}, {ID: "0xb2"}})
	cache.Put("0xd1", []*types.Ballot{{ID: "0xb3"}})

	entry, ok := cache.Get("0xd1", false)
	assert.True(t, ok)
	assert.Len(t, entry.Ballots, 1)
	assert.Equal(t, types.ObjectID("0xb3"), entry.Ballots[0].ID)
}

func TestCacheInvalidate(t *testing.T) {
	cache := NewCache(time.Minute, 8)
	cache.Put("0xd1", []*types.Ballot{{ID: "0xb1"}})
	cache.Put("0xd2", []*types.Ballot{{ID: "0xb2"}})

	cache.Invalidate("0xd1")

	_, ok := cache.Get("0xd1", false)
	assert.False(t, ok)
	_, ok = cache.Get("0xd2", false)
	assert.True(t, ok)
}

func TestCacheInvalidateAll(t *testing.T) {
	cache := NewCache(time.Minute, 8)
	cache.Put("0xd1", []*types.Ballot{{ID: "0xb1"}})
	cache.Put("0xd2", []*types.Ballot{{ID: "0xb2"}})

	cache.InvalidateAll()

	assert.Equal(t, 0, cache.Len())
}

// Copyright © 2018 Kowala SEZC <info@kowala.tech>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fetcher

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/kowala-tech/ballot/types"
)

// Entry is one cached dashboard fetch result.
type Entry struct {
	Ballots   []*types.Ballot
	FetchedAt time.Time
}

// Cache is a time-bound store of fetched ballot collections keyed by
// dashboard id. Writes are full replacements, never merges, so duplicate
// fetch work is wasteful but safe.
type Cache struct {
	ttl     time.Duration
	entries *lru.Cache // types.ObjectID -> *Entry
}

func NewCache(ttl time.Duration, maxEntries int) *Cache {
	entries, _ := lru.New(maxEntries)
	return &Cache{ttl: ttl, entries: entries}
}

// Get returns the entry for key if one exists, is not stale, and a fresh
// read was not forced.
func (c *Cache) Get(key types.ObjectID, forceFresh bool) (*Entry, bool) {
	if forceFresh {
		return nil, false
	}
	cached, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	entry := cached.(*Entry)
	if time.Since(entry.FetchedAt) >= c.ttl {
		return nil, false
	}
	return entry, true
}

// Put stores a fetch result for key, unconditionally replacing any prior
// entry (last-writer-wins).
func (c *Cache) Put(key types.ObjectID, ballots []*types.Ballot) {
	c.entries.Add(key, &Entry{Ballots: ballots, FetchedAt: time.Now()})
}

// Invalidate drops the entry for key, forcing the next read to bypass
// staleness. Mutating admin actions call this for the affected dashboard.
func (c *Cache) Invalidate(key types.ObjectID) {
	c.entries.Remove(key)
}

// InvalidateAll clears every entry.
func (c *Cache) InvalidateAll() {
	c.entries.Purge()
}

// Len returns the number of cached dashboards.
func (c *Cache) Len() int {
	return c.entries.Len()
}

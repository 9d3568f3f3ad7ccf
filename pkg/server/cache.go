package server

import (
	"math"
	"sync"

	"github.com/bastiangx/openers/pkg/starter"
	"github.com/charmbracelet/log"
)

type cacheKey struct {
	k, slack int
}

// ResultCache keeps the groups of recent starters searches. The corpus never
// changes while the server runs, so a cached answer stays valid; the least
// recently used entry is evicted when the cache is full.
type ResultCache struct {
	groups      map[cacheKey][]starter.Group
	accessTime  map[cacheKey]int64
	accessCount int64
	hits        int
	maxEntries  int
	mu          sync.Mutex
}

// NewResultCache creates a cache of up to maxEntries searches. maxEntries <= 0
// disables caching.
func NewResultCache(maxEntries int) *ResultCache {
	return &ResultCache{
		groups:     make(map[cacheKey][]starter.Group, max(maxEntries, 0)),
		accessTime: make(map[cacheKey]int64, max(maxEntries, 0)),
		maxEntries: maxEntries,
	}
}

// Get returns the cached groups for (k, slack). Callers must not modify them.
func (rc *ResultCache) Get(k, slack int) ([]starter.Group, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	key := cacheKey{k, slack}
	groups, ok := rc.groups[key]
	if ok {
		rc.hits++
		rc.accessTime[key] = rc.nextAccessTime()
	}
	return groups, ok
}

// Put stores groups for (k, slack).
func (rc *ResultCache) Put(k, slack int, groups []starter.Group) {
	if rc.maxEntries <= 0 {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	key := cacheKey{k, slack}
	if _, ok := rc.groups[key]; !ok && len(rc.groups) >= rc.maxEntries {
		rc.evictLRU()
	}
	rc.groups[key] = groups
	rc.accessTime[key] = rc.nextAccessTime()
}

// Stats reports cache occupancy and hits.
func (rc *ResultCache) Stats() map[string]int {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	return map[string]int{
		"entries":    len(rc.groups),
		"maxEntries": rc.maxEntries,
		"hits":       rc.hits,
	}
}

func (rc *ResultCache) nextAccessTime() int64 {
	rc.accessCount++
	return rc.accessCount
}

func (rc *ResultCache) evictLRU() {
	var oldest cacheKey
	var oldestTime int64 = math.MaxInt64
	for key, t := range rc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldest = key
		}
	}
	if oldestTime != math.MaxInt64 {
		delete(rc.groups, oldest)
		delete(rc.accessTime, oldest)
		log.Debugf("Evicted k=%d slack=%d from result cache", oldest.k, oldest.slack)
	}
}

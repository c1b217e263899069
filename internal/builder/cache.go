package builder

import (
	"fmt"
	"sync"
	"time"

	"github.com/sxndmxn/deadlock-build-creator/internal/services/stats"
)

const analysisTTL = time.Hour

// analysisCache keeps finished analyses in memory. Analytics data refreshes
// hourly upstream, so entries expire on the same clock.
type analysisCache struct {
	mu      sync.RWMutex
	entries map[string]*Analysis
}

func newAnalysisCache() *analysisCache {
	return &analysisCache{entries: make(map[string]*Analysis)}
}

func cacheKey(heroID int, filter stats.RankFilter) string {
	return fmt.Sprintf("%d:%d-%d", heroID, filter.MinBadge, filter.MaxBadge)
}

func (c *analysisCache) get(key string) *Analysis {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a := c.entries[key]
	if a == nil || time.Since(a.GeneratedAt) > analysisTTL {
		return nil
	}
	return a
}

func (c *analysisCache) put(key string, a *Analysis) {
	c.mu.Lock()
	c.entries[key] = a
	c.mu.Unlock()
}

func (c *analysisCache) clear() {
	c.mu.Lock()
	c.entries = make(map[string]*Analysis)
	c.mu.Unlock()
}

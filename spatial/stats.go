package spatial

import (
	"fmt"
	"sync"
	"time"

	"geoframe/geohash"
)

// FrameStats tracks aggregate frame query statistics.
type FrameStats struct {
	mu            sync.RWMutex
	Frames        int64
	CellsVisited  int64
	KeysQueried   int64
	ObjectsServed int64
	TotalElapsed  time.Duration
	StartTime     time.Time
}

var frameStats = &FrameStats{StartTime: time.Now()}

// GetFrameStats returns the global frame stats instance.
func GetFrameStats() *FrameStats {
	return frameStats
}

// RecordFrame records one completed frame query.
func (s *FrameStats) RecordFrame(cells, keys, objects int, elapsed time.Duration) {
	s.mu.Lock()
	s.Frames++
	s.CellsVisited += int64(cells)
	s.KeysQueried += int64(keys)
	s.ObjectsServed += int64(objects)
	s.TotalElapsed += elapsed
	s.mu.Unlock()
}

// Summary returns the stats as a JSON-friendly map, including the geohash
// decode cache hit rate.
func (s *FrameStats) Summary() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	avgMs := float64(0)
	if s.Frames > 0 {
		avgMs = float64(s.TotalElapsed.Milliseconds()) / float64(s.Frames)
	}

	hits, misses := geohash.CacheStats()
	hitRate := float64(0)
	if hits+misses > 0 {
		hitRate = float64(hits) / float64(hits+misses) * 100
	}

	return map[string]interface{}{
		"uptime":         formatDuration(time.Since(s.StartTime)),
		"frames":         s.Frames,
		"cells_visited":  s.CellsVisited,
		"keys_queried":   s.KeysQueried,
		"objects_served": s.ObjectsServed,
		"frame_avg_ms":   avgMs,
		"box_cache_hits": hits,
		"box_cache_miss": misses,
		"box_cache_pct":  hitRate,
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

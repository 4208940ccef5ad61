package pond

import "time"

// SceneStats summarizes a scene for debugging and reports.
type SceneStats struct {
	DuckCount int
	Behaviors map[string]int
	Labeled   int
	Time      time.Time
}

// CollectStats counts ducks, the player included, by behavior kind.
func (s *Scene) CollectStats() SceneStats {
	stats := SceneStats{
		Behaviors: make(map[string]int),
		Time:      s.Time,
	}
	for d := range s.All() {
		stats.DuckCount++
		stats.Behaviors[BehaviorName(d.Behavior())]++
		if d.Label != "" {
			stats.Labeled++
		}
	}
	return stats
}

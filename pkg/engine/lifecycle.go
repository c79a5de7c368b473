// pkg/engine/lifecycle.go
package engine

import (
	"github.com/opd-ai/go-wanderer/pkg/entity"
)

// pruneEntities drops faded particles and bullets that are no longer
// strictly inside the screen. Obstacles are never pruned.
func (s *Simulation) pruneEntities() {
	s.Particles = retain(s.Particles, func(p *entity.Particle) bool {
		return !p.Done()
	})
	s.Bullets = retain(s.Bullets, func(b *entity.Bullet) bool {
		return s.Bounds.ContainsStrict(b.Position)
	})
}

// retain filters items in place, keeping order, and zeroes the tail so the
// backing array does not hold stale entities.
func retain[T any](items []T, keep func(*T) bool) []T {
	kept := items[:0]
	for i := range items {
		if keep(&items[i]) {
			kept = append(kept, items[i])
		}
	}
	clear(items[len(kept):])
	return kept
}

// retainIndexed keeps the items whose index is not marked in drop.
func retainIndexed[T any](items []T, drop []bool) []T {
	i := 0
	return retain(items, func(*T) bool {
		keep := !drop[i]
		i++
		return keep
	})
}

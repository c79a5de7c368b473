// pkg/engine/spawner.go
package engine

import (
	"github.com/opd-ai/go-wanderer/pkg/entity"
	"github.com/opd-ai/go-wanderer/pkg/event"
	"github.com/opd-ai/go-wanderer/pkg/random"
)

// maybeSpawnObstacle creates one obstacle just outside a random screen edge
// every ObstacleRate frames, starting with frame 0.
func (s *Simulation) maybeSpawnObstacle() {
	if s.FrameCount%uint64(s.Config.ObstacleRate) != 0 {
		return
	}
	if limit := s.Config.MaxObstacles; limit > 0 && len(s.Obstacles) >= limit {
		if s.logger.DebugEnabled(s.ctx) {
			s.logger.Debug(s.ctx, "obstacle cap reached, skipping spawn",
				"frame", s.FrameCount,
				"obstacles", len(s.Obstacles),
			)
		}
		return
	}

	obstacle := s.newObstacle()
	s.Obstacles = append(s.Obstacles, obstacle)

	s.EventBus.Publish(event.NewObstacleEvent(s, uint64(obstacle.ID), obstacle.Position, obstacle.Size, s.FrameCount))
	if s.logger.DebugEnabled(s.ctx) {
		s.logger.Debug(s.ctx, "obstacle spawned",
			"frame", s.FrameCount,
			"obstacle_id", obstacle.ID,
			"x", obstacle.Position.X,
			"y", obstacle.Position.Y,
			"size", obstacle.Size,
		)
	}
}

func (s *Simulation) newObstacle() entity.Obstacle {
	edge := entity.Edge(s.rng.IntN(entity.EdgeCount))
	position := entity.EdgePosition(edge, s.Bounds, s.rng.Float64(), s.Config.SpawnMargin)

	return entity.Obstacle{
		ID:          s.ids.Next(),
		Position:    position,
		Size:        random.Range(s.rng, s.Config.ObstacleMinSize, s.Config.ObstacleMaxSize),
		VertexCount: s.Config.ObstacleMinVertices + s.rng.IntN(s.Config.ObstacleVertexSpread),
	}
}

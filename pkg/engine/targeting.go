// pkg/engine/targeting.go
package engine

import (
	"github.com/opd-ai/go-wanderer/pkg/event"
)

// evaluateTargeting fires at the first obstacle in range once the blaster
// has cooled down. The cooldown is global, so at most one bullet leaves per
// frame however many obstacles qualify.
func (s *Simulation) evaluateTargeting() {
	if !s.Blaster.Ready(s.FrameCount) {
		return
	}

	origin := s.Agent.Position
	for i := range s.Obstacles {
		target := &s.Obstacles[i]
		if !s.Blaster.InRange(origin, target.Position) {
			continue
		}

		bullet := s.Blaster.Fire(s.ids.Next(), origin, target.Position, s.FrameCount)
		s.Bullets = append(s.Bullets, bullet)

		s.EventBus.Publish(event.NewShotEvent(s, uint64(bullet.ID), uint64(target.ID), bullet.Heading, s.FrameCount))
		if s.logger.DebugEnabled(s.ctx) {
			s.logger.Debug(s.ctx, "bullet fired",
				"frame", s.FrameCount,
				"bullet_id", bullet.ID,
				"target_id", target.ID,
				"heading", bullet.Heading,
			)
		}
		return
	}
}

// pkg/engine/motion.go
package engine

import (
	"github.com/opd-ai/go-wanderer/pkg/entity"
	"github.com/opd-ai/go-wanderer/pkg/physics"
)

// integrateMotion advances every entity by one frame. Obstacles chase the
// agent's position from the start of the frame.
func (s *Simulation) integrateMotion() {
	target := s.Agent.Position
	for i := range s.Obstacles {
		s.Obstacles[i].MoveToward(target, s.Config.ObstacleSpeed)
	}

	for i := range s.Bullets {
		s.Bullets[i].Advance()
	}

	for i := range s.Particles {
		s.Particles[i].Update(s.Config.ParticleDecay)
	}

	s.steerAgent()
}

func (s *Simulation) steerAgent() {
	angle := entity.SteeringAngle(s.noise.At(s.Agent.NoisePhase), s.Config.HeadingTurns)
	force := physics.FromAngle(angle, s.Config.SteeringForce)
	s.Agent.Steer(force, s.Config.Damping, s.Config.NoiseStep)
}

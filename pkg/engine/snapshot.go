// pkg/engine/snapshot.go
package engine

import (
	"slices"

	"github.com/opd-ai/go-wanderer/pkg/entity"
)

// Snapshot is a copy of the world at one frame. It can be read or rendered
// on any goroutine once taken.
type Snapshot struct {
	Frame     uint64
	Width     float64
	Height    float64
	Agent     entity.Agent
	Obstacles []entity.Obstacle
	Bullets   []entity.Bullet
	Particles []entity.Particle
	Trail     *entity.Trail
}

// Counts reports the size of each entity pool.
type Counts struct {
	Obstacles int
	Bullets   int
	Particles int
	Trail     int
}

// view shares the simulation's storage.
func (s *Simulation) view() *Snapshot {
	return &Snapshot{
		Frame:     s.FrameCount,
		Width:     s.Bounds.Width,
		Height:    s.Bounds.Height,
		Agent:     s.Agent,
		Obstacles: s.Obstacles,
		Bullets:   s.Bullets,
		Particles: s.Particles,
		Trail:     s.Trail,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Simulation) Snapshot() *Snapshot {
	snap := s.view()
	snap.Obstacles = slices.Clone(s.Obstacles)
	snap.Bullets = slices.Clone(s.Bullets)
	snap.Particles = slices.Clone(s.Particles)
	snap.Trail = s.Trail.Clone()
	return snap
}

// Counts reports the current pool sizes.
func (s *Simulation) Counts() Counts {
	return s.view().Counts()
}

// Counts reports the pool sizes captured in the snapshot.
func (sn *Snapshot) Counts() Counts {
	return Counts{
		Obstacles: len(sn.Obstacles),
		Bullets:   len(sn.Bullets),
		Particles: len(sn.Particles),
		Trail:     sn.Trail.Len(),
	}
}

// Entities returns everything drawable in back-to-front order: obstacles,
// particles, bullets, the trail, then the agent on top. The entries point
// into the snapshot.
func (sn *Snapshot) Entities() []entity.Entity {
	list := make([]entity.Entity, 0, len(sn.Obstacles)+len(sn.Particles)+len(sn.Bullets)+2)
	for i := range sn.Obstacles {
		list = append(list, &sn.Obstacles[i])
	}
	for i := range sn.Particles {
		list = append(list, &sn.Particles[i])
	}
	for i := range sn.Bullets {
		list = append(list, &sn.Bullets[i])
	}
	return append(list, sn.Trail, &sn.Agent)
}

// Render draws one frame of the snapshot.
func (sn *Snapshot) Render(r entity.Renderer) {
	r.Clear()
	for _, e := range sn.Entities() {
		e.Render(r)
	}
	r.Present()
}

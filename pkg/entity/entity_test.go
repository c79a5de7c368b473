// pkg/entity/entity_test.go
package entity

import (
	"testing"

	"github.com/opd-ai/go-wanderer/pkg/physics"
)

func TestBaseEntity_Advance(t *testing.T) {
	tests := []struct {
		name     string
		position physics.Vector2D
		velocity physics.Vector2D
		expected physics.Vector2D
	}{
		{"stationary", physics.Vector2D{X: 3, Y: 4}, physics.Vector2D{}, physics.Vector2D{X: 3, Y: 4}},
		{"moving_right", physics.Vector2D{X: 0, Y: 0}, physics.Vector2D{X: 5, Y: 0}, physics.Vector2D{X: 5, Y: 0}},
		{"moving_up_left", physics.Vector2D{X: 10, Y: 10}, physics.Vector2D{X: -1, Y: -2}, physics.Vector2D{X: 9, Y: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &BaseEntity{Position: tt.position, Velocity: tt.velocity}
			e.Advance()
			if e.Position != tt.expected {
				t.Errorf("Advance() position = %v, want %v", e.Position, tt.expected)
			}
			if e.Velocity != tt.velocity {
				t.Errorf("Advance() changed velocity to %v", e.Velocity)
			}
		})
	}
}

func TestIDSource_Next(t *testing.T) {
	var ids IDSource
	seen := make(map[ID]bool)
	var last ID
	for i := 0; i < 100; i++ {
		id := ids.Next()
		if id == 0 {
			t.Fatal("Next() returned the zero ID")
		}
		if seen[id] {
			t.Fatalf("Next() returned duplicate ID %d", id)
		}
		if id <= last {
			t.Fatalf("Next() = %d, not greater than previous %d", id, last)
		}
		seen[id] = true
		last = id
	}
}

func TestParticle_Lifecycle(t *testing.T) {
	p := NewParticle(physics.Vector2D{X: 10, Y: 10}, physics.Vector2D{X: 1, Y: -1}, 255)

	// 255 - 25*10 = 5 after 25 updates; the 26th takes it to -5.
	for i := 1; i <= 25; i++ {
		p.Update(10)
		if p.Done() {
			t.Fatalf("particle done after %d updates, lifespan %d", i, p.Lifespan)
		}
	}
	if p.Lifespan != 5 {
		t.Errorf("Lifespan after 25 updates = %d, want 5", p.Lifespan)
	}
	if p.Position != (physics.Vector2D{X: 35, Y: -15}) {
		t.Errorf("Position after 25 updates = %v, want (35, -15)", p.Position)
	}

	p.Update(10)
	if !p.Done() {
		t.Errorf("particle should be done after 26 updates, lifespan %d", p.Lifespan)
	}
}

func TestParticle_Alpha(t *testing.T) {
	tests := []struct {
		lifespan int
		expected uint8
	}{
		{255, 255},
		{300, 255},
		{128, 128},
		{0, 0},
		{-5, 0},
	}

	for _, tt := range tests {
		p := Particle{Lifespan: tt.lifespan}
		if got := p.Alpha(); got != tt.expected {
			t.Errorf("Alpha() with lifespan %d = %d, want %d", tt.lifespan, got, tt.expected)
		}
	}
}

// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-wanderer/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	SimulationStarted Type = "simulation_started"
	ObstacleSpawned   Type = "obstacle_spawned"
	BulletFired       Type = "bullet_fired"
	ObstacleDestroyed Type = "obstacle_destroyed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run synchronously
// on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes the handler registered under id. Unknown IDs are
// ignored.
func (b *Bus) Unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		// Copy so a Publish already holding the old slice is unaffected.
		remaining := make([]subscriber, 0, len(subs)-1)
		remaining = append(remaining, subs[:i]...)
		remaining = append(remaining, subs[i+1:]...)
		if len(remaining) == 0 {
			delete(b.handlers, eventType)
		} else {
			b.handlers[eventType] = remaining
		}
		return
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// ObstacleEvent reports a newly spawned obstacle.
type ObstacleEvent struct {
	BaseEvent
	ObstacleID uint64
	Position   physics.Vector2D
	Size       float64
	Frame      uint64
}

// NewObstacleEvent creates a new obstacle event
func NewObstacleEvent(source interface{}, obstacleID uint64, pos physics.Vector2D, size float64, frame uint64) *ObstacleEvent {
	return &ObstacleEvent{
		BaseEvent: BaseEvent{
			EventType: ObstacleSpawned,
			Source:    source,
		},
		ObstacleID: obstacleID,
		Position:   pos,
		Size:       size,
		Frame:      frame,
	}
}

// ShotEvent reports a bullet fired at an obstacle.
type ShotEvent struct {
	BaseEvent
	BulletID uint64
	TargetID uint64
	Heading  float64
	Frame    uint64
}

// NewShotEvent creates a new shot event
func NewShotEvent(source interface{}, bulletID, targetID uint64, heading float64, frame uint64) *ShotEvent {
	return &ShotEvent{
		BaseEvent: BaseEvent{
			EventType: BulletFired,
			Source:    source,
		},
		BulletID: bulletID,
		TargetID: targetID,
		Heading:  heading,
		Frame:    frame,
	}
}

// CollisionEvent reports an obstacle destroyed by a bullet.
type CollisionEvent struct {
	BaseEvent
	ObstacleID uint64
	BulletID   uint64
	Position   physics.Vector2D
	Frame      uint64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, obstacleID, bulletID uint64, pos physics.Vector2D, frame uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: ObstacleDestroyed,
			Source:    source,
		},
		ObstacleID: obstacleID,
		BulletID:   bulletID,
		Position:   pos,
		Frame:      frame,
	}
}

// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
)

// Button names registered by SetupInputBindings.
const (
	ButtonPause = "pause"
	ButtonQuit  = "quit"
)

// InputSystem maps keyboard input onto the simulation system.
type InputSystem struct {
	sim  *SimulationSystem
	exit func()
}

// NewInputSystem creates an input system controlling sim.
func NewInputSystem(sim *SimulationSystem) *InputSystem {
	return &InputSystem{sim: sim, exit: engo.Exit}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update polls the registered buttons.
func (is *InputSystem) Update(dt float32) {
	is.handle(engo.Input.Button(ButtonPause).JustPressed(), engo.Input.Button(ButtonQuit).JustPressed())
}

func (is *InputSystem) handle(pause, quit bool) {
	if quit {
		is.sim.logger.Info(is.sim.ctx, "quit requested", "frame", is.sim.sim.FrameCount)
		is.exit()
		return
	}
	if pause {
		is.sim.TogglePause()
	}
}

// SetupInputBindings sets up the key bindings for the scene
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonPause, engo.KeyP)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape)
}

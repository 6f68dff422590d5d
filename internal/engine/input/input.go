// Package input turns SDL2 events into texture set viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is something the viewer should do in response to input.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	ActionNext
	ActionPrev
	ActionFirst
	ActionLast
	ActionScreenshot
)

// Input collects the actions of one frame.
type Input struct {
	actions []Action
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		actions: make([]Action, 0, 8),
	}
}

// Update polls pending SDL events and translates them.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.actions = i.actions[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		a := Translate(event)
		if a == ActionNone {
			continue
		}
		i.actions = append(i.actions, a)
		if a == ActionQuit {
			return true
		}
	}
	return false
}

// Actions returns the actions from the last Update.
func (i *Input) Actions() []Action {
	return i.actions
}

// Translate maps one SDL event to an action.
func Translate(event sdl.Event) Action {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return ActionQuit

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return ActionResize
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return ActionNone
		}
		return keyAction(e.Keysym.Sym)

	case *sdl.MouseWheelEvent:
		switch {
		case e.Y > 0:
			return ActionPrev
		case e.Y < 0:
			return ActionNext
		}
	}
	return ActionNone
}

func keyAction(key sdl.Keycode) Action {
	switch key {
	case sdl.K_ESCAPE, sdl.K_q:
		return ActionQuit
	case sdl.K_RIGHT, sdl.K_DOWN, sdl.K_SPACE:
		return ActionNext
	case sdl.K_LEFT, sdl.K_UP, sdl.K_BACKSPACE:
		return ActionPrev
	case sdl.K_HOME:
		return ActionFirst
	case sdl.K_END:
		return ActionLast
	case sdl.K_F12:
		return ActionScreenshot
	}
	return ActionNone
}

// ABOUTME: TUI initialization and playback worker
// ABOUTME: Bridges pad key events to blocking driver calls
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NoteDurationMs is how long a pad keypress sounds.
const NoteDurationMs = 200

// Control carries pad events to the playback worker.
type Control struct {
	Requests chan NoteRequest
	Stops    chan struct{}
}

// NewControl creates the pad's control channels.
func NewControl() *Control {
	return &Control{
		Requests: make(chan NoteRequest, 1),
		Stops:    make(chan struct{}, 1),
	}
}

// Run starts the TUI program.
func Run(ctrl *Control) *tea.Program {
	return tea.NewProgram(NewModel(ctrl), tea.WithAltScreen())
}

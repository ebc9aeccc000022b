// ABOUTME: Bubbletea model for the interactive tone pad
// ABOUTME: Maps a piano-row keymap onto tone requests and renders state
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Note is one playable key on the pad.
type Note struct {
	Key       string
	Name      string
	Frequency int
}

// Notes is the pad's piano row, C4 through C5.
var Notes = []Note{
	{"a", "C4", 262},
	{"s", "D4", 294},
	{"d", "E4", 330},
	{"f", "F4", 349},
	{"g", "G4", 392},
	{"h", "A4", 440},
	{"j", "B4", 494},
	{"k", "C5", 523},
}

// NoteRequest asks the playback worker for one tone.
type NoteRequest struct {
	Note   Note
	Volume int
}

// DoneMsg reports that the worker finished a tone.
type DoneMsg struct{ Note Note }

// StateMsg refreshes the driver state line.
type StateMsg struct {
	State string
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	keyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	busyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// Model is the pad's TUI state.
type Model struct {
	ctrl *Control

	volume   int
	state    string
	lastNote string
	busy     bool
	width    int
}

// NewModel creates the pad model.
func NewModel(ctrl *Control) Model {
	return Model{
		ctrl:   ctrl,
		volume: 80,
		state:  "configured",
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case DoneMsg:
		m.busy = false
	case StateMsg:
		m.state = msg.State
	}

	return m, nil
}

// handleKey maps keys to notes, volume and stop.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up":
		m.volume += 5
		if m.volume > 100 {
			m.volume = 100
		}
		return m, nil

	case "down":
		m.volume -= 5
		if m.volume < 0 {
			m.volume = 0
		}
		return m, nil

	case " ":
		select {
		case m.ctrl.Stops <- struct{}{}:
		default:
		}
		return m, nil
	}

	for _, note := range Notes {
		if key != note.Key {
			continue
		}
		// One tone at a time; driver calls block for their duration.
		if m.busy {
			return m, nil
		}

		select {
		case m.ctrl.Requests <- NoteRequest{Note: note, Volume: m.volume}:
			m.busy = true
			m.lastNote = note.Name
		default:
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("chime tone pad"))
	b.WriteString("\n\n")

	row := make([]string, 0, len(Notes))
	for _, note := range Notes {
		row = append(row, fmt.Sprintf("%s %s", keyStyle.Render(note.Key), note.Name))
	}
	b.WriteString(strings.Join(row, "  "))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("driver: %s   volume: %s %d%%", m.state, volumeBar(m.volume), m.volume))
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(busyStyle.Render(fmt.Sprintf("playing %s...", m.lastNote)))
	case m.lastNote != "":
		b.WriteString(fmt.Sprintf("last note: %s", m.lastNote))
	default:
		b.WriteString("press a key to play")
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("up/down: volume   space: stop   q: quit"))

	return boxStyle.Render(b.String())
}

// volumeBar renders a ten-segment volume indicator.
func volumeBar(volume int) string {
	filled := volume / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/parkwatch/internal/domain"
)

// tickInterval drives the spinner and the "updated Xs ago" clock
const tickInterval = 100 * time.Millisecond

// Model is the main Bubble Tea model for the application.
// It only reads published states; the availability service owns them.
type Model struct {
	Title string
	State domain.State
	Ready bool

	// Dimensions
	Width  int
	Height int

	SpinnerFrame int
	Now          time.Time

	keys    KeyMap
	updates <-chan domain.State
	clock   func() time.Time
}

// NewModel creates a new application model reading states from updates
func NewModel(title string, initial domain.State, updates <-chan domain.State) Model {
	return Model{
		Title:   title,
		State:   initial,
		Now:     time.Now(),
		keys:    DefaultKeyMap(),
		updates: updates,
		clock:   time.Now,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForStateCmd(m.updates),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil

	case StateMsg:
		m.State = msg.State
		return m, WaitForStateCmd(m.updates)

	case TickMsg:
		m.SpinnerFrame++
		m.Now = m.clock()
		return m, TickCmd(tickInterval)
	}

	return m, nil
}

package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mmcdole/parkwatch/internal/domain"
)

// LineRenderer writes one line per settled state, for output that is not a terminal.
// Loading states and repeats of the previous line are skipped.
type LineRenderer struct {
	mu   sync.Mutex
	w    io.Writer
	last string
}

// NewLineRenderer creates a renderer writing to w
func NewLineRenderer(w io.Writer) *LineRenderer {
	return &LineRenderer{w: w}
}

// OnState implements domain.StateObserver
func (r *LineRenderer) OnState(state domain.State) {
	if state.Phase() == domain.PhaseLoading {
		return
	}
	line := FormatLine(state)
	if line == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if line == r.last {
		return
	}
	r.last = line
	fmt.Fprintf(r.w, "%s %s\n", time.Now().Format(time.RFC3339), line)
}

// FormatLine renders a settled state as a single line of text
func FormatLine(state domain.State) string {
	switch {
	case state.HasError() && state.HasData():
		return fmt.Sprintf("libres=%d total=%d (desactualizado) %s", state.AvailableSpaces, state.TotalSpaces, state.ErrorMessage)
	case state.HasError():
		return state.ErrorMessage
	case state.HasData():
		return fmt.Sprintf("libres=%d total=%d", state.AvailableSpaces, state.TotalSpaces)
	default:
		return ""
	}
}

package tui

import "github.com/mmcdole/parkwatch/internal/domain"

// Message types for the TUI

// StateMsg carries a state published by the availability service
type StateMsg struct {
	State domain.State
}

// TickMsg is a general tick message for animations and the staleness clock
type TickMsg struct{}

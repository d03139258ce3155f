package tui

import "github.com/mmcdole/parkwatch/internal/domain"

// ChannelObserver adapts domain.StateObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan domain.State
}

// NewChannelObserver creates a new channel-based observer.
// The channel should be buffered; only the newest pending state is kept.
func NewChannelObserver(ch chan domain.State) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnState sends the state to the channel without blocking. When the channel
// is full the oldest pending state is dropped in favour of the new one.
func (o *ChannelObserver) OnState(state domain.State) {
	select {
	case o.ch <- state:
		return
	default:
	}
	select {
	case <-o.ch:
	default:
	}
	select {
	case o.ch <- state:
	default: // Receiver is slow and another sender won the slot
	}
}

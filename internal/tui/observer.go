package tui

// SelectionObserver adapts selection store callbacks to a channel for Bubble Tea.
type SelectionObserver struct {
	ch chan struct{}
}

// NewSelectionObserver creates a new channel-based observer.
func NewSelectionObserver() *SelectionObserver {
	return &SelectionObserver{ch: make(chan struct{}, 1)}
}

// OnSelect signals a change (non-blocking; pending signals coalesce).
func (o *SelectionObserver) OnSelect() {
	select {
	case o.ch <- struct{}{}:
	default: // A signal is already pending
	}
}

// Changes returns the signal channel.
func (o *SelectionObserver) Changes() <-chan struct{} {
	return o.ch
}

package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

type changedMsg struct{}

// changeFeed turns subscription callbacks into Bubble Tea messages. Bursts
// of notifications collapse into one pending message.
type changeFeed struct {
	ch     chan struct{}
	done   chan struct{}
	cancel func()
	once   sync.Once
}

func newChangeFeed(subscribe func(func()) func()) *changeFeed {
	f := &changeFeed{ch: make(chan struct{}, 1), done: make(chan struct{})}
	f.cancel = subscribe(func() {
		select {
		case f.ch <- struct{}{}:
		default:
		}
	})
	return f
}

// Wait blocks until the next change, or returns nil once the feed closes.
func (f *changeFeed) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.ch:
			return changedMsg{}
		case <-f.done:
			return nil
		}
	}
}

func (f *changeFeed) Close() {
	f.once.Do(func() {
		f.cancel()
		close(f.done)
	})
}

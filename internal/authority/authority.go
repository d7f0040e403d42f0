// Package authority decides which server process owns the spawner.
// Exactly one process should be authoritative at a time; listeners are told
// when this process gains or loses that role.
package authority

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Listener reacts to authority transitions.
type Listener interface {
	OnAuthorityGained()
	OnAuthorityLost()
}

// Elector runs an election loop until the context is canceled.
type Elector interface {
	Start(ctx context.Context) error
}

// notifier fans transitions out to listeners, once per actual change of role.
type notifier struct {
	listeners     []Listener
	authoritative atomic.Bool
}

func (n *notifier) gain() {
	if n.authoritative.Swap(true) {
		return
	}
	slog.Info("authority gained")
	for _, l := range n.listeners {
		l.OnAuthorityGained()
	}
}

func (n *notifier) lose() {
	if !n.authoritative.Swap(false) {
		return
	}
	slog.Info("authority lost")
	for _, l := range n.listeners {
		l.OnAuthorityLost()
	}
}

// Static grants authority as soon as it starts. Used when a single server
// process runs the spawner.
type Static struct {
	notifier
}

// NewStatic creates static elector
func NewStatic(listeners ...Listener) *Static {
	return &Static{notifier: notifier{listeners: listeners}}
}

// Start grants authority and holds it until the context is canceled.
func (s *Static) Start(ctx context.Context) error {
	s.gain()
	<-ctx.Done()
	s.lose()
	return ctx.Err()
}

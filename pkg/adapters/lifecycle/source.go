// Package lifecycle adapts document events to github.com/aretw0/lifecycle.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/gestor/pkg/core"
)

// ErrUnknownEventType is returned by ParseEventTypes for a name that is not
// CREATE, MODIFY or DELETE.
var ErrUnknownEventType = errors.New("unknown event type")

// Option configures a document source.
type Option func(*documentSource)

// WithTypes keeps only events of the given types. No types means all events.
func WithTypes(types ...core.EventType) Option {
	return func(s *documentSource) {
		s.types = append(s.types, types...)
	}
}

// WithBuffer sets the capacity of the output channel. The default is unbuffered.
func WithBuffer(n int) Option {
	return func(s *documentSource) {
		if n > 0 {
			s.buffer = n
		}
	}
}

// documentSource relays core.Event values, which satisfy lifecycle.Event
// through their String method.
type documentSource struct {
	events <-chan core.Event
	types  []core.EventType
	buffer int
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits the document change events
// read from events, filtered by the options.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &documentSource{events: events}
	for _, opt := range opts {
		opt(s)
	}
	s.out = make(chan lifecycle.Event, s.buffer)
	return s
}

func (s *documentSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *documentSource) accepts(e core.Event) bool {
	return len(s.types) == 0 || slices.Contains(s.types, e.Type)
}

// Start relays events until ctx is done or the upstream channel closes,
// then closes the output channel.
func (s *documentSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if !s.accepts(e) {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

// ParseEventTypes converts names such as "create" or "MODIFY" to event types.
// Blank names are skipped.
func ParseEventTypes(names []string) ([]core.EventType, error) {
	var types []core.EventType
	for _, name := range names {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		t := core.EventType(name)
		switch t {
		case core.EventCreate, core.EventModify, core.EventDelete:
			types = append(types, t)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, name)
		}
	}
	return types, nil
}

// Package lifecycle exposes address book change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/abook/pkg/core"
)

type bookSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource wraps the channel returned by Service.Watch. The source output
// is closed once the input is closed or the Start context ends.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &bookSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *bookSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *bookSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.forward)
	return nil
}

func (s *bookSource) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-s.events:
			if !ok {
				return nil
			}
			select {
			case s.out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// Package progress implements the run-wide {percent, message} event sink
// described in spec.md §4.9/§7: the driver emits one event at every
// component boundary and once per completed unit, messages are prefixed
// "Error!" on fatal events and "Done!" on success, and a local websocket
// server (SPEC_FULL.md §2 ambient table) lets a GUI front-end subscribe to
// the same stream live.
package progress

import "sync"

// Event is one progress update.
type Event struct {
	Percent float64 `json:"percent"`
	Message string  `json:"message"`
}

// Sink fans Event out to any number of subscribers with a short critical
// section per publish (spec.md §5 "Locking": "a progress sink ... use[s]
// short critical sections").
type Sink struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
	last Event
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{subs: make(map[chan Event]struct{})}
}

// Publish sends e to every current subscriber, dropping it for any
// subscriber whose channel is full rather than blocking the run on a slow
// or gone GUI client.
func (s *Sink) Publish(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = e
	for ch := range s.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Done publishes the success terminal event (spec.md §7: `"Done!"` message
// convention).
func (s *Sink) Done(message string) {
	s.Publish(Event{Percent: 100, Message: "Done! " + message})
}

// Error publishes the fatal terminal event (spec.md §7: `"Error!"` message
// convention).
func (s *Sink) Error(message string) {
	s.Publish(Event{Percent: s.Last().Percent, Message: "Error! " + message})
}

// Last returns the most recently published event, the zero Event if none
// has been published yet.
func (s *Sink) Last() Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Subscribe registers a new subscriber channel and returns it along with an
// unsubscribe function the caller must call when done.
func (s *Sink) Subscribe(buffer int) (ch chan Event, unsubscribe func()) {
	ch = make(chan Event, buffer)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch, func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
		close(ch)
	}
}

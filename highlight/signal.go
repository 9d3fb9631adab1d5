// Package highlight carries the "active id" shared by the thumbnail grid and
// the overview map. Either widget writes it; both react to it.
package highlight

// Kind distinguishes a passing hover from an explicit focus, which the map
// answers by flying to the pin.
type Kind int

const (
	Hover Kind = iota
	Focus
)

func (k Kind) String() string {
	if k == Focus {
		return "focus"
	}
	return "hover"
}

// Event is what subscribers receive. ID is empty when nothing is active.
type Event struct {
	ID     string
	Kind   Kind
	Source string
}

// Signal is a last-write-wins broadcast of the active id. Writing the value
// it already holds notifies nobody, so a subscriber that writes back the id
// it was just told about cannot start a feedback loop.
//
// Signal is used from the UI goroutine only and does no locking.
type Signal struct {
	current Event
	nextID  int
	subs    []subscription
}

type subscription struct {
	id int
	fn func(Event)
}

// New returns an empty signal.
func New() *Signal {
	return &Signal{}
}

// Subscribe registers fn and returns a func that removes it. Subscribers run
// in registration order.
func (s *Signal) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Set publishes a hover of id ("" clears it).
func (s *Signal) Set(id, source string) bool {
	return s.publish(Event{ID: id, Kind: Hover, Source: source})
}

// Focus publishes an explicit focus of id.
func (s *Signal) Focus(id, source string) bool {
	return s.publish(Event{ID: id, Kind: Focus, Source: source})
}

// Clear drops any active id.
func (s *Signal) Clear(source string) bool {
	return s.Set("", source)
}

// Current returns the active id, or "" if none.
func (s *Signal) Current() string {
	return s.current.ID
}

// Last returns the most recent event.
func (s *Signal) Last() Event {
	return s.current
}

// publish reports whether subscribers were notified.
func (s *Signal) publish(ev Event) bool {
	if ev.ID == s.current.ID && ev.Kind == s.current.Kind {
		return false
	}
	s.current = ev
	// Copy so a subscriber may unsubscribe itself while being notified.
	subs := append([]subscription(nil), s.subs...)
	for _, sub := range subs {
		sub.fn(ev)
		if s.current != ev {
			// A subscriber wrote a newer value; it has already been delivered.
			return true
		}
	}
	return true
}

// Package notify manages transient user-facing notifications with
// auto-dismiss timers, the client-side equivalent of a toast banner stack.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devnarayan/folio/internal/common"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// DefaultDuration is the auto-dismiss delay when the caller passes 0.
const DefaultDuration = 5 * time.Second

// Notification is one live banner.
type Notification struct {
	ID       string
	Message  string
	Level    Level
	Duration time.Duration
	AddedAt  time.Time
}

// Event reports a notification being added or dismissed.
type Event struct {
	Added        bool
	Notification Notification
}

// Service holds the live notification set. Each notification carries an
// auto-dismiss timer, cancellable by an explicit Dismiss or by Close.
type Service struct {
	logger *common.Logger

	mu     sync.Mutex
	active map[string]Notification
	timers map[string]*time.Timer
	subs   []chan Event
	closed bool
}

// NewService creates a notification service.
func NewService(logger *common.Logger) *Service {
	return &Service{
		logger: logger,
		active: make(map[string]Notification),
		timers: make(map[string]*time.Timer),
	}
}

// Subscribe returns a channel of add/dismiss events. Events are dropped for
// subscribers that fall behind.
func (s *Service) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Event, 16)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Service) broadcast(ev Event) {
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Add registers a notification and returns its id. duration 0 uses
// DefaultDuration; a negative duration disables auto-dismiss.
func (s *Service) Add(message string, level Level, duration time.Duration) string {
	if duration == 0 {
		duration = DefaultDuration
	}

	n := Notification{
		ID:       uuid.NewString(),
		Message:  message,
		Level:    level,
		Duration: duration,
		AddedAt:  time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ""
	}

	s.active[n.ID] = n
	if duration > 0 {
		id := n.ID
		s.timers[id] = time.AfterFunc(duration, func() { s.Dismiss(id) })
	}
	s.broadcast(Event{Added: true, Notification: n})
	return n.ID
}

// Success is shorthand for Add with LevelSuccess and the default duration.
func (s *Service) Success(message string) string {
	return s.Add(message, LevelSuccess, 0)
}

// Error is shorthand for Add with LevelError and the default duration.
func (s *Service) Error(message string) string {
	return s.Add(message, LevelError, 0)
}

// Dismiss removes a notification and cancels its timer. Dismissing an
// unknown id is a no-op, so an explicit dismissal racing the auto-dismiss
// timer is harmless.
func (s *Service) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.active[id]
	if !ok {
		return
	}
	delete(s.active, id)
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	s.broadcast(Event{Added: false, Notification: n})
}

// Active returns a snapshot of live notifications.
func (s *Service) Active() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, 0, len(s.active))
	for _, n := range s.active {
		out = append(out, n)
	}
	return out
}

// Close cancels all timers and closes subscriber channels.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.active = make(map[string]Notification)
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

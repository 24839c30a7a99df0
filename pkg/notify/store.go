package notify

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"zeedzad/web/pkg/config"
)

// Kind is the severity of a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Toast is one transient notification.
type Toast struct {
	ID       string        `json:"id"`
	Kind     Kind          `json:"type"`
	Title    string        `json:"title,omitempty"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"duration"` // 0 = sticky
	Closable bool          `json:"closable"`
	Created  time.Time     `json:"created_at"`
}

// Stopper cancels a pending dismissal. *time.Timer implements it.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f after d.
type AfterFunc func(d time.Duration, f func()) Stopper

func defaultAfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Store holds the visible toasts, bounded to a maximum, oldest first.
// It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	toasts  []Toast
	timers  map[string]Stopper
	counter uint64

	max             int
	defaultDuration time.Duration
	afterFunc       AfterFunc
	now             func() time.Time
	logger          *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithMax sets how many toasts are kept before the oldest is evicted.
func WithMax(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.max = n
		}
	}
}

// WithDefaultDuration sets the auto-dismiss delay for non-error toasts.
func WithDefaultDuration(d time.Duration) Option {
	return func(s *Store) {
		s.defaultDuration = d
	}
}

// WithAfterFunc replaces the timer used for auto-dismissal.
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Store) {
		s.afterFunc = fn
	}
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates an empty store. Defaults: 5 toasts, 5s duration.
func NewStore(opts ...Option) *Store {
	s := &Store{
		timers:          make(map[string]Stopper),
		max:             config.DefaultNotificationsMax,
		defaultDuration: config.DefaultNotificationsDuration,
		afterFunc:       defaultAfterFunc,
		now:             time.Now,
		logger:          slog.Default().With("component", "notify"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreFromConfig creates a store from the notifications section.
func NewStoreFromConfig(cfg *config.NotificationsConfig, opts ...Option) *Store {
	base := []Option{WithMax(cfg.Max), WithDefaultDuration(cfg.DefaultDuration)}
	return NewStore(append(base, opts...)...)
}

// ToastOption overrides per-toast defaults.
type ToastOption func(*Toast)

// WithTitle sets a title.
func WithTitle(title string) ToastOption {
	return func(t *Toast) {
		t.Title = title
	}
}

// WithDuration sets the auto-dismiss delay. Zero makes the toast sticky.
func WithDuration(d time.Duration) ToastOption {
	return func(t *Toast) {
		t.Duration = d
	}
}

// WithClosable controls whether the toast can be closed by the user.
func WithClosable(closable bool) ToastOption {
	return func(t *Toast) {
		t.Closable = closable
	}
}

// Add appends a toast and returns its id. An empty or whitespace-only
// message is rejected with a warning and "" is returned.
func (s *Store) Add(kind Kind, message string, opts ...ToastOption) string {
	if strings.TrimSpace(message) == "" {
		s.logger.Warn("toast message cannot be empty", "kind", kind)
		return ""
	}

	toast := Toast{
		Kind:     kind,
		Message:  message,
		Duration: s.defaultDuration,
		Closable: true,
	}
	if kind == KindError {
		toast.Duration = 0
	}
	for _, opt := range opts {
		opt(&toast)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	toast.ID = fmt.Sprintf("toast-%d", s.counter)
	toast.Created = s.now()

	s.toasts = append(s.toasts, toast)
	if over := len(s.toasts) - s.max; over > 0 {
		for _, evicted := range s.toasts[:over] {
			s.stopTimerLocked(evicted.ID)
		}
		s.toasts = append([]Toast(nil), s.toasts[over:]...)
	}

	if toast.Duration > 0 {
		id := toast.ID
		s.timers[id] = s.afterFunc(toast.Duration, func() { s.Remove(id) })
	}

	return toast.ID
}

// Success adds a success toast.
func (s *Store) Success(message string, opts ...ToastOption) string {
	return s.Add(KindSuccess, message, opts...)
}

// Error adds an error toast. Errors are sticky unless a duration is given.
func (s *Store) Error(message string, opts ...ToastOption) string {
	return s.Add(KindError, message, opts...)
}

// Warning adds a warning toast.
func (s *Store) Warning(message string, opts ...ToastOption) string {
	return s.Add(KindWarning, message, opts...)
}

// Info adds an info toast.
func (s *Store) Info(message string, opts ...ToastOption) string {
	return s.Add(KindInfo, message, opts...)
}

// Remove deletes the toast with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			break
		}
	}
	s.stopTimerLocked(id)
}

// Clear removes every toast.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.timers {
		s.stopTimerLocked(id)
	}
	s.toasts = nil
}

// List returns a copy of the visible toasts, oldest first.
func (s *Store) List() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

func (s *Store) stopTimerLocked(id string) {
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
}

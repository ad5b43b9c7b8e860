// internal/pkg/notify/notify.go
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Severity classifies a user-facing notification
type Severity string

const (
	Success Severity = "success"
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Sink receives transient user-facing messages. Delivery is
// fire-and-forget; nothing feeds back into the caller.
type Sink interface {
	Notify(severity Severity, message string)
}

// LogSink forwards notifications to the application logger. In the
// gateway the actual toast rendering happens client-side; the sink
// keeps an auditable trail of what the user was told.
type LogSink struct {
	logger *logrus.Logger
}

// NewLogSink creates a logrus-backed sink
func NewLogSink(logger *logrus.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Notify logs the notification at a level matching its severity
func (s *LogSink) Notify(severity Severity, message string) {
	entry := s.logger.WithField("notification", string(severity))

	switch severity {
	case Error:
		entry.Warn(message)
	case Warning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

// Notification is a recorded (severity, message) pair
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Recorder captures notifications for assertions in tests and for
// echoing back to the client in HTTP responses.
type Recorder struct {
	mu    sync.Mutex
	Notes []Notification
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify records the notification
func (r *Recorder) Notify(severity Severity, message string) {
	r.mu.Lock()
	r.Notes = append(r.Notes, Notification{Severity: severity, Message: message})
	r.mu.Unlock()
}

// Last returns the most recent notification, or nil if none
func (r *Recorder) Last() *Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Notes) == 0 {
		return nil
	}
	n := r.Notes[len(r.Notes)-1]
	return &n
}

// Fanout delivers each notification to every sink
type Fanout []Sink

// Notify forwards to all sinks
func (f Fanout) Notify(severity Severity, message string) {
	for _, s := range f {
		s.Notify(severity, message)
	}
}

package api

import "github.com/sirupsen/logrus"

// CallEvent records metadata about one backend request.
type CallEvent struct {
	Method    string
	Path      string
	Status    int
	LatencyMs int64
	Err       error
}

// Observer receives events about backend calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// LogObserver writes call events to a logrus logger. The terminal stays
// clean for the TUI; the logger is expected to point at the log file.
type LogObserver struct {
	log logrus.FieldLogger
}

// NewLogObserver creates an Observer logging to log.
func NewLogObserver(log logrus.FieldLogger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	entry := o.log.WithFields(logrus.Fields{
		"method":     event.Method,
		"path":       event.Path,
		"status":     event.Status,
		"latency_ms": event.LatencyMs,
	})
	if event.Err != nil {
		entry.WithError(event.Err).Warn("api call failed")
		return
	}
	entry.Debug("api call")
}

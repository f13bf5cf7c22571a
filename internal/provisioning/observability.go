package provisioning

import (
	"fmt"
	"log"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Logger is the minimal printf-style logging surface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer receives the workflow's observational side channel: structured
// events and step-transition progress. Observers never affect control flow.
type Observer interface {
	Logger

	// Event emits a structured event.
	Event(event Event)

	// Progress reports that step index of total is about to start.
	// index is 1-based.
	Progress(step string, index, total int)
}

// Event represents a structured onboarding event.
type Event struct {
	Type      EventType         // Type of event
	Step      string            // Step name, e.g. "link-billing"
	Message   string            // Human-readable message
	Resource  string            // Resource name/ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of onboarding event.
type EventType string

const (
	// EventStepStarted indicates a workflow step has started.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a workflow step committed.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates a workflow step failed.
	EventStepFailed EventType = "step.failed"

	// EventRollbackStarted indicates compensation has begun.
	EventRollbackStarted EventType = "rollback.started"
	// EventRollbackCompleted indicates the compensation succeeded.
	EventRollbackCompleted EventType = "rollback.completed"
	// EventRollbackFailed indicates the compensation itself failed.
	EventRollbackFailed EventType = "rollback.failed"

	// EventServiceEnabling indicates one API service is being enabled.
	EventServiceEnabling EventType = "service.enabling"
	// EventServiceEnabled indicates one API service was enabled.
	EventServiceEnabled EventType = "service.enabled"
)

// LogObserver implements Observer on top of a logr.Logger.
type LogObserver struct {
	log logr.Logger
}

// NewLogObserver creates an Observer writing through the given logger.
func NewLogObserver(log logr.Logger) *LogObserver {
	return &LogObserver{log: log}
}

// NewConsoleObserver creates an Observer writing to the standard log package.
func NewConsoleObserver() *LogObserver {
	return &LogObserver{
		log: funcr.New(func(prefix, args string) {
			if prefix != "" {
				log.Printf("%s: %s", prefix, args)
				return
			}
			log.Print(args)
		}, funcr.Options{}),
	}
}

// Printf implements Logger.
func (o *LogObserver) Printf(format string, v ...interface{}) {
	o.log.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	kv := []interface{}{"type", string(event.Type)}
	if event.Step != "" {
		kv = append(kv, "step", event.Step)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	for k, v := range event.Fields {
		kv = append(kv, k, v)
	}
	o.log.Info(event.Message, kv...)
}

// Progress implements Observer.
func (o *LogObserver) Progress(step string, index, total int) {
	o.log.Info("starting step", "step", step, "index", index, "total", total)
}

// Helper functions for common events

// LogStepStart emits a step start event.
func LogStepStart(observer Observer, step string) {
	observer.Event(Event{
		Type:    EventStepStarted,
		Step:    step,
		Message: "starting",
	})
}

// LogStepComplete emits a step completion event.
func LogStepComplete(observer Observer, step string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventStepCompleted,
		Step:    step,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogStepFailed emits a step failure event.
func LogStepFailed(observer Observer, step string, err error) {
	observer.Event(Event{
		Type:    EventStepFailed,
		Step:    step,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

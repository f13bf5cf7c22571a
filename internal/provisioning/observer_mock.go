package provisioning

import (
	"fmt"
	"sync"
)

// ProgressRecord captures one Progress call made on a MockObserver.
type ProgressRecord struct {
	Step  string
	Index int
	Total int
}

// MockObserver records everything emitted to it. Safe for concurrent use.
type MockObserver struct {
	mu       sync.Mutex
	events   []Event
	progress []ProgressRecord
	lines    []string
}

var _ Observer = (*MockObserver)(nil)

// NewMockObserver creates an empty recording observer.
func NewMockObserver() *MockObserver {
	return &MockObserver{}
}

// Printf implements Logger.
func (o *MockObserver) Printf(format string, v ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *MockObserver) Event(event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

// Progress implements Observer.
func (o *MockObserver) Progress(step string, index, total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.progress = append(o.progress, ProgressRecord{Step: step, Index: index, Total: total})
}

// Events returns a copy of the recorded events.
func (o *MockObserver) Events() []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Event(nil), o.events...)
}

// EventsOfType returns the recorded events of one type, in order.
func (o *MockObserver) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range o.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// ProgressRecords returns a copy of the recorded Progress calls.
func (o *MockObserver) ProgressRecords() []ProgressRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]ProgressRecord(nil), o.progress...)
}

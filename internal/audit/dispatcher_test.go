package audit

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type memRecorder struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (m *memRecorder) Record(ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("db down")
	}
	m.events = append(m.events, ev)
	return nil
}

func TestDispatcher_DeliversOnClose(t *testing.T) {
	rec := &memRecorder{}
	d := NewDispatcher(rec, zap.NewNop())

	id := uint(5)
	d.Dispatch(Event{Action: "appointment_created", Entity: "appointment", EntityID: &id})
	d.Dispatch(Event{Action: "appointment_canceled", Entity: "appointment", EntityID: &id})
	d.Close()

	assert.Len(t, rec.events, 2)
	assert.Equal(t, "appointment_created", rec.events[0].Action)
}

func TestDispatcher_RecorderErrorsAreSwallowed(t *testing.T) {
	rec := &memRecorder{fail: true}
	d := NewDispatcher(rec, zap.NewNop())

	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
	assert.Empty(t, rec.events)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "x"}) })
}

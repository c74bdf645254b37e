package core

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/docsync/relay/internal/crdt"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestRouter(engine crdt.Engine) (*Router, *Manager) {
	logger := testLogger()
	rooms := NewManager(engine, logger)
	return NewRouter(rooms, NewDispatcher(logger), logger), rooms
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event kind %v not received", kind)
			return nil
		}
	}
}

func mustNoEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	default:
	}
}

// rejectEngine refuses every delta, standing in for an engine that deems
// them inapplicable.
type rejectEngine struct{}

func (rejectEngine) NewDocument() crdt.Document { return rejectDoc{} }

type rejectDoc struct{}

func (rejectDoc) Apply([]byte) error { return &crdt.MergeError{Reason: "rejected"} }
func (rejectDoc) Snapshot() []byte   { return nil }

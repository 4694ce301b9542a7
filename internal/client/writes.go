package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/objectfs/posixfs/internal/telemetry"
	"github.com/objectfs/posixfs/pkg/utils"
	"github.com/objectfs/posixfs/pkg/wire"
)

// Event is the completion of one dispatched write.
type Event struct {
	Tag      string
	Response *wire.WriteResponse
	Err      error
}

// CompletionQueue carries write completions from dispatching goroutines to
// waiting callers. It is safe for concurrent use.
type CompletionQueue struct {
	events   chan Event
	done     chan struct{}
	shutdown sync.Once
}

// NewCompletionQueue returns a queue buffering up to capacity events.
func NewCompletionQueue(capacity int) *CompletionQueue {
	if capacity < 0 {
		capacity = 0
	}
	return &CompletionQueue{
		events: make(chan Event, capacity),
		done:   make(chan struct{}),
	}
}

// Push delivers ev, blocking while the queue is full. It returns false once
// the queue is shut down.
func (q *CompletionQueue) Push(ev Event) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.events <- ev:
		return true
	case <-q.done:
		return false
	}
}

// Next blocks until an event arrives. ok is false after shutdown.
func (q *CompletionQueue) Next() (ev Event, ok bool) {
	select {
	case <-q.done:
		return Event{}, false
	default:
	}
	select {
	case ev = <-q.events:
		return ev, true
	case <-q.done:
		return Event{}, false
	}
}

// Shutdown wakes every waiter and rejects further pushes. Repeated calls
// are no-ops.
func (q *CompletionQueue) Shutdown() {
	q.shutdown.Do(func() { close(q.done) })
}

// IsShutdown reports whether Shutdown was called.
func (q *CompletionQueue) IsShutdown() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

type dispatchFunc func(ctx context.Context, req *wire.WriteRequest) (*wire.WriteResponse, error)

// pendingWrite is the in-flight record of one write. req holds everything
// but the payload.
type pendingWrite struct {
	tag    string
	req    wire.WriteRequest
	queue  *CompletionQueue
	routed chan Event
}

// writeCoordinator dispatches writes without blocking and matches
// completions to callers by tag.
type writeCoordinator struct {
	queue    *CompletionQueue
	dispatch dispatchFunc
	pending  sync.Map // tag -> *pendingWrite
	// abandoned holds tags of writes that returned before their completion
	// was consumed; the late completion is discarded.
	abandoned sync.Map // tag -> struct{}
	newTag    func() string
	log       *utils.StructuredLogger
	recorder  Recorder
}

func newWriteCoordinator(queue *CompletionQueue, dispatch dispatchFunc, log *utils.StructuredLogger, recorder Recorder) *writeCoordinator {
	return &writeCoordinator{
		queue:    queue,
		dispatch: dispatch,
		newTag:   uuid.NewString,
		log:      log,
		recorder: recorder,
	}
}

// write dispatches req and blocks until its own completion is popped.
func (w *writeCoordinator) write(ctx context.Context, req *wire.WriteRequest) (*wire.WriteResponse, error) {
	if w.queue.IsShutdown() {
		return nil, ErrShutdown
	}

	p := &pendingWrite{
		tag:    w.newTag(),
		req:    *req,
		queue:  w.queue,
		routed: make(chan Event, 1),
	}
	p.req.Buf = nil
	w.pending.Store(p.tag, p)
	defer w.release(p)
	trace.SpanFromContext(ctx).SetAttributes(attribute.String(telemetry.AttrWriteTag, p.tag))

	w.recorder.WriteStarted()
	defer w.recorder.WriteFinished()

	go func() {
		resp, err := w.dispatch(ctx, req)
		if !p.queue.Push(Event{Tag: p.tag, Response: resp, Err: err}) {
			w.log.Debug("completion dropped after shutdown", map[string]interface{}{
				"tag":  p.tag,
				"path": p.req.Path,
			})
		}
	}()

	ev, err := w.await(p)
	if err != nil {
		return nil, err
	}
	if ev.Err != nil {
		return nil, ev.Err
	}
	if ev.Response == nil {
		return nil, fmt.Errorf("completion %s carries no response", ev.Tag)
	}
	return ev.Response, nil
}

// await pops completions until the one tagged for p shows up. Completions
// for other pending writes are handed to their owners.
func (w *writeCoordinator) await(p *pendingWrite) (Event, error) {
	for {
		select {
		case ev := <-p.routed:
			return ev, nil
		case ev := <-w.queue.events:
			if ev.Tag == p.tag {
				w.pending.Delete(p.tag)
				return ev, nil
			}
			if !w.route(ev) {
				return Event{}, fmt.Errorf("%w %q", ErrUnexpectedTag, ev.Tag)
			}
		case <-w.queue.done:
			return Event{}, ErrNoEvent
		}
	}
}

// release drops the pending record of a finished write. A record still
// present means the completion never reached p, so its tag is marked
// abandoned before the record goes away.
func (w *writeCoordinator) release(p *pendingWrite) {
	w.abandoned.Store(p.tag, struct{}{})
	if _, ok := w.pending.LoadAndDelete(p.tag); !ok {
		w.abandoned.Delete(p.tag)
	}
}

func (w *writeCoordinator) route(ev Event) bool {
	v, ok := w.pending.LoadAndDelete(ev.Tag)
	if !ok {
		if _, late := w.abandoned.LoadAndDelete(ev.Tag); late {
			w.log.Debug("discarding completion of abandoned write", map[string]interface{}{"tag": ev.Tag})
			return true
		}
		w.log.Error("completion for unknown write tag", map[string]interface{}{"tag": ev.Tag})
		return false
	}
	owner := v.(*pendingWrite)
	owner.routed <- ev
	return true
}

func (w *writeCoordinator) inFlight() int {
	n := 0
	w.pending.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

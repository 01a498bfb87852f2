package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/weightrack/internal/xslog"
)

var ErrAutosaverClosed = errors.New("autosaver closed")

type Saver interface {
	Save(ctx context.Context, state State) error
}

type SaveResult struct {
	Seq uint64
	Err error
}

type pendingSave struct {
	seq   uint64
	state State
}

const (
	defaultSaveTimeout = 5 * time.Second
	resultsBuffer      = 128
)

// Autosaver writes every enqueued state, one at a time, in enqueue order.
// Nothing is coalesced or dropped, so the last state enqueued is the last
// one written. Writes that are still queued when Close is called are
// flushed before Close returns.
type Autosaver struct {
	saver   Saver
	logger  *slog.Logger
	ctx     context.Context
	timeout time.Duration

	mu     sync.Mutex
	queue  []pendingSave
	seq    uint64
	closed bool
	wake   chan struct{}

	results   chan SaveResult
	group     errgroup.Group
	closeOnce sync.Once
}

// NewAutosaver starts the write worker. Saves run with the values of ctx
// but are not cancelled with it.
func NewAutosaver(ctx context.Context, saver Saver, logger *slog.Logger) *Autosaver {
	a := &Autosaver{
		saver:   saver,
		logger:  logger,
		ctx:     context.WithoutCancel(ctx),
		timeout: defaultSaveTimeout,
		wake:    make(chan struct{}, 1),
		results: make(chan SaveResult, resultsBuffer),
	}
	a.group.Go(func() error {
		a.run()
		return nil
	})
	return a
}

// Enqueue schedules a full write of state and returns its sequence number.
func (a *Autosaver) Enqueue(state State) (uint64, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return 0, ErrAutosaverClosed
	}
	a.seq++
	seq := a.seq
	a.queue = append(a.queue, pendingSave{seq: seq, state: state})
	a.mu.Unlock()

	a.signal()
	return seq, nil
}

// Results delivers the outcome of each write. It is closed by Close.
func (a *Autosaver) Results() <-chan SaveResult {
	return a.results
}

// Pending reports how many writes have not started yet.
func (a *Autosaver) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queue)
}

func (a *Autosaver) Close() error {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		a.mu.Unlock()
		a.signal()

		_ = a.group.Wait()
		close(a.results)
	})
	return nil
}

func (a *Autosaver) signal() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *Autosaver) run() {
	for {
		a.mu.Lock()
		if len(a.queue) == 0 {
			closed := a.closed
			a.mu.Unlock()
			if closed {
				return
			}
			<-a.wake
			continue
		}
		next := a.queue[0]
		a.queue[0] = pendingSave{}
		a.queue = a.queue[1:]
		a.mu.Unlock()

		a.publish(SaveResult{Seq: next.seq, Err: a.save(next.state)})
	}
}

func (a *Autosaver) save(state State) error {
	ctx, cancel := context.WithTimeout(a.ctx, a.timeout)
	defer cancel()
	return a.saver.Save(ctx, state)
}

func (a *Autosaver) publish(result SaveResult) {
	if result.Err != nil {
		a.logger.WarnContext(a.ctx, "autosave failed", xslog.Seq(result.Seq), xslog.Error(result.Err))
	}
	select {
	case a.results <- result:
	default:
		a.logger.DebugContext(a.ctx, "autosave result dropped, no listener", xslog.Seq(result.Seq))
	}
}

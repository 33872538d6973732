package analysis

import (
	"context"
	"sync"

	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
)

// ErrPoolClosed is returned by Acquire once the pool is closed.
var ErrPoolClosed = errors.NewEngineError("engine pool closed", nil)

// EnginePool bounds how many engine sessions run at once. Each session is
// still a fresh process; the pool only hands out the right to start one.
type EnginePool struct {
	size   int
	slots  chan struct{}
	mu     sync.Mutex
	closed bool
	log    *logger.Logger
}

// NewEnginePool creates a pool that admits size concurrent sessions.
func NewEnginePool(size int) *EnginePool {
	if size <= 0 {
		size = 1
	}
	log := logger.Default().WithPrefix("stockfish-pool")
	log.Debug("engine pool admits %d concurrent sessions", size)

	p := &EnginePool{
		size:  size,
		slots: make(chan struct{}, size),
		log:   log,
	}
	for i := 0; i < size; i++ {
		p.slots <- struct{}{}
	}
	return p
}

// Acquire waits for a free slot. It fails when ctx ends first or the pool
// has been closed.
func (p *EnginePool) Acquire(ctx context.Context) error {
	select {
	case _, ok := <-p.slots:
		if !ok {
			return ErrPoolClosed
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release gives a slot back.
func (p *EnginePool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.slots <- struct{}{}:
	default:
		p.log.Warn("release without matching acquire")
	}
}

// Run holds a slot for the duration of one WithEngine session.
func (p *EnginePool) Run(ctx context.Context, path string, opts Options, fn func(*Engine) error) error {
	if err := p.Acquire(ctx); err != nil {
		return err
	}
	defer p.Release()
	return WithEngine(ctx, path, opts, fn)
}

// Close rejects further Acquire calls. Sessions already running finish
// normally.
func (p *EnginePool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.log.Debug("closing engine pool")
	for drained := false; !drained; {
		select {
		case <-p.slots:
		default:
			drained = true
		}
	}
	close(p.slots)
}

// Available returns how many sessions could start right now.
func (p *EnginePool) Available() int {
	return len(p.slots)
}

// Size is the number of concurrent sessions the pool admits.
func (p *EnginePool) Size() int {
	return p.size
}

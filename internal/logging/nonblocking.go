package logging

import (
	"context"
	"sync"
	"sync/atomic"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

type record struct {
	ctx   context.Context
	lvl   level
	msg   string
	args  []any
	attrs []any
}

type pipe struct {
	sink    Logger
	ch      chan record
	dropped atomic.Int64
	done    chan struct{}
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
}

// NonBlocking forwards records to another Logger from a background goroutine.
// When the buffer is full the record is dropped and counted; callers never
// wait on the sink.
type NonBlocking struct {
	p     *pipe
	attrs []any
}

// NewNonBlocking starts the forwarding goroutine. Close must be called to
// flush and stop it.
func NewNonBlocking(sink Logger, buffer int) *NonBlocking {
	if buffer <= 0 {
		buffer = 256
	}
	p := &pipe{
		sink: sink,
		ch:   make(chan record, buffer),
		done: make(chan struct{}),
	}
	go p.run()
	return &NonBlocking{p: p}
}

func (p *pipe) run() {
	defer close(p.done)
	for r := range p.ch {
		p.forward(r)
	}
}

func (p *pipe) forward(r record) {
	// a panicking sink must not take the forwarder down with it
	defer func() { _ = recover() }()

	l := p.sink
	if len(r.attrs) > 0 {
		l = l.With(r.attrs...)
	}
	switch r.lvl {
	case levelDebug:
		l.Debug(r.ctx, r.msg, r.args...)
	case levelInfo:
		l.Info(r.ctx, r.msg, r.args...)
	case levelWarn:
		l.Warn(r.ctx, r.msg, r.args...)
	default:
		l.Error(r.ctx, r.msg, r.args...)
	}
}

func (n *NonBlocking) enqueue(ctx context.Context, lvl level, msg string, args []any) {
	p := n.p
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.dropped.Add(1)
		return
	}
	// the record outlives the call, detach it from cancellation
	r := record{ctx: context.WithoutCancel(ctx), lvl: lvl, msg: msg, args: args, attrs: n.attrs}
	select {
	case p.ch <- r:
	default:
		p.dropped.Add(1)
	}
}

func (n *NonBlocking) Debug(ctx context.Context, msg string, args ...any) {
	n.enqueue(ctx, levelDebug, msg, args)
}

func (n *NonBlocking) Info(ctx context.Context, msg string, args ...any) {
	n.enqueue(ctx, levelInfo, msg, args)
}

func (n *NonBlocking) Warn(ctx context.Context, msg string, args ...any) {
	n.enqueue(ctx, levelWarn, msg, args)
}

func (n *NonBlocking) Error(ctx context.Context, msg string, args ...any) {
	n.enqueue(ctx, levelError, msg, args)
}

// With shares the buffer and goroutine of n.
func (n *NonBlocking) With(args ...any) Logger {
	attrs := append(append([]any(nil), n.attrs...), args...)
	return &NonBlocking{p: n.p, attrs: attrs}
}

// Dropped reports how many records were discarded.
func (n *NonBlocking) Dropped() int64 {
	return n.p.dropped.Load()
}

// Close stops accepting records and waits for the buffered ones to be written.
func (n *NonBlocking) Close() {
	p := n.p
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.ch)
		p.mu.Unlock()
	})
	<-p.done
}

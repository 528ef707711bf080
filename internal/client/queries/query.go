// Package queries caches data access results per content domain. A Query
// serves its cached value while it is fresh, refetches in the background on a
// fixed interval and is enabled only while an admin session is active.
package queries

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/folioadmin/folio/internal/logging"
)

const (
	DefaultStaleTime       = 5 * time.Minute
	DefaultRefetchInterval = 10 * time.Minute
)

var (
	ErrDisabled = errors.New("query disabled: no active session")
	ErrStopped  = errors.New("query stopped")
)

// Options tunes a Query. Zero durations pick the defaults.
type Options struct {
	StaleTime       time.Duration
	RefetchInterval time.Duration
	Now             func() time.Time
	Log             logging.Logger
}

func (o Options) withDefaults() Options {
	if o.StaleTime <= 0 {
		o.StaleTime = DefaultStaleTime
	}
	if o.RefetchInterval <= 0 {
		o.RefetchInterval = DefaultRefetchInterval
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Log == nil {
		o.Log = logging.Nop()
	}
	return o
}

// Query caches the result of fetch under key.
type Query[T any] struct {
	key   string
	fetch func(ctx context.Context) T
	opt   Options
	log   logging.Logger

	group singleflight.Group

	// life is cancelled by Stop and bounds every fetch.
	life   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	value     T
	has       bool
	fetchedAt time.Time
	enabled   bool
	started   bool
	stopped   bool
	// gen changes whenever cached data must be discarded; a fetch that
	// started under an older generation is not stored.
	gen uint64
}

// New returns a disabled Query.
func New[T any](key string, fetch func(ctx context.Context) T, opt Options) *Query[T] {
	opt = opt.withDefaults()
	life, cancel := context.WithCancel(context.Background())
	return &Query[T]{
		key:    key,
		fetch:  fetch,
		opt:    opt,
		log:    opt.Log.With("query", key),
		life:   life,
		cancel: cancel,
	}
}

func (q *Query[T]) Key() string { return q.key }

// Get returns the cached value while it is fresh and fetches otherwise.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	q.mu.Lock()
	if err := q.usableLocked(); err != nil {
		q.mu.Unlock()
		var zero T
		return zero, err
	}
	if q.has && q.opt.Now().Sub(q.fetchedAt) < q.opt.StaleTime {
		v := q.value
		q.mu.Unlock()
		return v, nil
	}
	q.mu.Unlock()
	return q.Refresh(ctx)
}

// Cached returns the cached value without fetching.
func (q *Query[T]) Cached() (v T, fetchedAt time.Time, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.value, q.fetchedAt, q.has
}

// Refresh fetches regardless of staleness. Concurrent calls share one fetch.
// ctx only bounds the wait; the fetch itself runs until it finishes or the
// query is stopped.
func (q *Query[T]) Refresh(ctx context.Context) (T, error) {
	var zero T

	q.mu.Lock()
	if err := q.usableLocked(); err != nil {
		q.mu.Unlock()
		return zero, err
	}
	gen := q.gen
	q.mu.Unlock()

	// Keyed by generation so a fetch from before a disable is never joined.
	ch := q.group.DoChan(q.key+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		return q.fetch(q.life), nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-q.life.Done():
		return zero, ErrStopped
	case res := <-ch:
		v := res.Val.(T)
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.stopped {
			return zero, ErrStopped
		}
		if gen != q.gen || !q.enabled {
			return zero, ErrDisabled
		}
		q.value, q.has, q.fetchedAt = v, true, q.opt.Now()
		return v, nil
	}
}

func (q *Query[T]) usableLocked() error {
	if q.stopped {
		return ErrStopped
	}
	if !q.enabled {
		return ErrDisabled
	}
	return nil
}

// SetEnabled turns the query on or off. Enabling fetches in the background;
// disabling drops the cache and discards fetches already in flight.
func (q *Query[T]) SetEnabled(on bool) {
	q.mu.Lock()
	if q.stopped || q.enabled == on {
		q.mu.Unlock()
		return
	}
	q.enabled = on
	q.gen++
	if !on {
		var zero T
		q.value, q.has, q.fetchedAt = zero, false, time.Time{}
		q.mu.Unlock()
		q.log.Debug(q.life, "query disabled")
		return
	}
	q.wg.Add(1)
	q.mu.Unlock()

	q.log.Debug(q.life, "query enabled")
	q.background(func() {
		if _, err := q.Refresh(q.life); err != nil && !errors.Is(err, ErrStopped) {
			q.log.Debug(q.life, "initial fetch discarded", "error", err)
		}
	})
}

// Enabled reports whether the query currently fetches.
func (q *Query[T]) Enabled() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.enabled
}

// Start runs the refetch loop until ctx is done or Stop is called. Calling
// it again is a no-op.
func (q *Query[T]) Start(ctx context.Context) {
	q.mu.Lock()
	if q.started || q.stopped {
		q.mu.Unlock()
		return
	}
	q.started = true
	q.wg.Add(1)
	q.mu.Unlock()

	q.background(func() {
		t := time.NewTicker(q.opt.RefetchInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-q.life.Done():
				return
			case <-t.C:
				if !q.Enabled() {
					continue
				}
				if _, err := q.Refresh(ctx); err != nil {
					q.log.Debug(ctx, "background refetch failed", "error", err)
				}
			}
		}
	})
}

// Stop cancels in-flight fetches, ends the refetch loop and waits for
// background work to return. Results that arrive later are discarded.
func (q *Query[T]) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	q.enabled = false
	q.gen++
	q.mu.Unlock()

	q.cancel()
	q.wg.Wait()
}

// background runs fn on its own goroutine. The caller must have done
// q.wg.Add(1) while holding q.mu and seeing stopped == false.
func (q *Query[T]) background(fn func()) {
	go func() {
		defer q.wg.Done()
		fn()
	}()
}

package filter

import (
	"context"
	"net/url"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

// Fetcher loads the list for a complete query
type Fetcher[T any] func(ctx context.Context, q url.Values) (T, error)

// Snapshot is what a page renders
type Snapshot[T any] struct {
	Page       string `json:"page"`
	Stage      Stage  `json:"stage"`
	Prompt     string `json:"prompt,omitempty"`
	Filters    State  `json:"filters"`
	Query      string `json:"query,omitempty"`
	HasData    bool   `json:"hasData"`
	Data       T      `json:"data"`
	Error      string `json:"error,omitempty"`
	Generation uint64 `json:"generation"`
}

// Controller is the filter state machine of one page instance. Every
// committed change that yields a complete query issues exactly one fetch;
// a response is only rendered if its generation is still current.
type Controller[T any] struct {
	schema Schema
	fetch  Fetcher[T]
	log    *logger.Logger

	mu       sync.Mutex
	state    State
	gen      uint64
	identity string
	snap     Snapshot[T]
	touched  time.Time

	wg sync.WaitGroup
}

// NewController creates a controller with an empty state. Nothing is
// fetched until Start or a committed change.
func NewController[T any](schema Schema, fetch Fetcher[T], log *logger.Logger) *Controller[T] {
	if log == nil {
		log = logger.NewNop()
	}
	c := &Controller[T]{
		schema:  schema,
		fetch:   fetch,
		log:     log.Named("filter").WithField("page", schema.Name),
		state:   State{},
		touched: time.Now(),
	}
	d := Evaluate(schema, c.state)
	c.snap = Snapshot[T]{Page: schema.Name, Stage: d.Stage, Prompt: d.Prompt, Filters: State{}}
	return c
}

// Start evaluates the initial state, fetching when it is already complete
func (c *Controller[T]) Start(ctx context.Context) Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transition(ctx, false)
	return c.copySnap()
}

// Schema returns the schema the controller was built with
func (c *Controller[T]) Schema() Schema { return c.schema }

// Set commits a single value
func (c *Controller[T]) Set(ctx context.Context, key, value string) Snapshot[T] {
	return c.SetAll(ctx, State{key: value})
}

// SetAll commits several values as one transition. The discriminator is
// applied first so its dependents are cleared before the other values land.
func (c *Controller[T]) SetAll(ctx context.Context, values State) Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touched = time.Now()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		di, dj := keys[i] == c.schema.Discriminator, keys[j] == c.schema.Discriminator
		if di != dj {
			return di
		}
		if (keys[i] == KeyPage) != (keys[j] == KeyPage) {
			return keys[j] == KeyPage
		}
		return keys[i] < keys[j]
	})

	st, changed := c.state, false
	for _, k := range keys {
		var ch bool
		st, ch = Apply(c.schema, st, k, values[k])
		changed = changed || ch
	}
	if !changed {
		return c.copySnap()
	}
	c.state = st
	c.transition(ctx, false)
	return c.copySnap()
}

// Refresh re-issues the fetch for the current state, e.g. after a mutation
func (c *Controller[T]) Refresh(ctx context.Context) Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touched = time.Now()
	c.transition(ctx, true)
	return c.copySnap()
}

// Snapshot returns the current render state
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copySnap()
}

// Wait blocks until every issued fetch has resolved
func (c *Controller[T]) Wait() {
	c.wg.Wait()
}

func (c *Controller[T]) lastTouched() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched
}

// transition must be called with mu held
func (c *Controller[T]) transition(ctx context.Context, force bool) {
	d := Evaluate(c.schema, c.state)
	c.snap.Filters = c.state.Clone()

	if !d.Fetch {
		c.gen++
		c.identity = ""
		var zero T
		c.snap.Stage = d.Stage
		c.snap.Prompt = d.Prompt
		c.snap.Query = ""
		c.snap.Data = zero
		c.snap.HasData = false
		c.snap.Error = ""
		c.snap.Generation = c.gen
		return
	}

	id := Identity(d.Query)
	if id == c.identity && !force {
		return
	}

	c.gen++
	c.identity = id
	gen := c.gen
	c.snap.Stage = StageLoading
	c.snap.Prompt = ""
	c.snap.Query = id
	c.snap.Error = ""
	c.snap.Generation = gen

	c.log.Debug("Fetching page data", zap.String("query", id), zap.Uint64("generation", gen))

	c.wg.Add(1)
	go func(q url.Values) {
		defer c.wg.Done()
		start := time.Now()
		data, err := c.fetch(ctx, q)
		c.resolve(gen, data, err, time.Since(start))
	}(d.Query)
}

func (c *Controller[T]) resolve(gen uint64, data T, err error, took time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		c.log.Debug("Discarding stale response",
			zap.Uint64("generation", gen),
			zap.Uint64("current", c.gen),
			zap.Duration("duration", took))
		return
	}

	if err != nil {
		c.log.Warn("Page fetch failed", zap.Error(err), zap.Duration("duration", took))
		c.snap.Stage = StageError
		c.snap.Error = apperrors.MessageOf(err, "failed to load "+c.schema.Name)
		return
	}

	c.snap.Stage = StageLoaded
	c.snap.Data = data
	c.snap.HasData = true
	c.snap.Error = ""
}

func (c *Controller[T]) copySnap() Snapshot[T] {
	s := c.snap
	s.Filters = c.snap.Filters.Clone()
	return s
}

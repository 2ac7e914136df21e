package controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/pkg"
	"github.com/simp-lee/forumclient/internal/transport"
)

// State is the load lifecycle of a list controller.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateErrored
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// Fetcher loads one page of a resource for the given filter. Resource
// services provide these as method values.
type Fetcher[T any] func(ctx context.Context, f domain.Filter) transport.Result[domain.PaginatedData[T]]

// ListController owns the filter and page state of one resource listing.
// Changing any filter field resets the page to 1 before fetching; explicit
// page navigation does not. At most one fetch is in flight: starting a new
// one cancels the previous, and a superseded response is never applied.
// A failed fetch keeps the previously loaded items so the screen does not
// blank out under a flaky connection.
//
// All methods are safe for concurrent use.
type ListController[T domain.Identifiable] struct {
	fetch  Fetcher[T]
	logger *slog.Logger

	mu         sync.Mutex
	filter     domain.Filter
	state      State
	items      []T
	total      int
	lastErr    *domain.APIError
	generation uint64
	cancel     context.CancelFunc
}

// NewListController creates a controller over fetch with the given initial
// filter. Zero page/limit fall back to the defaults.
func NewListController[T domain.Identifiable](fetch Fetcher[T], initial domain.Filter, logger *slog.Logger) *ListController[T] {
	if fetch == nil {
		panic("controller.NewListController: fetch must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	initial.Page = pkg.ClampPage(initial.Page)
	initial.Limit = pkg.ClampLimit(initial.Limit)
	return &ListController[T]{fetch: fetch, filter: initial, logger: logger}
}

// Reload fetches the current page with the current filter.
func (c *ListController[T]) Reload(ctx context.Context) *domain.APIError {
	c.mu.Lock()
	return c.load(ctx)
}

// SetSearch updates the search term, resets to page 1 and fetches.
func (c *ListController[T]) SetSearch(ctx context.Context, search string) *domain.APIError {
	c.mu.Lock()
	c.filter.Search = search
	c.filter.Page = 1
	return c.load(ctx)
}

// SetStatus updates the status filter, resets to page 1 and fetches.
func (c *ListController[T]) SetStatus(ctx context.Context, status string) *domain.APIError {
	c.mu.Lock()
	c.filter.Status = status
	c.filter.Page = 1
	return c.load(ctx)
}

// SetExtra updates a resource-specific filter field, resets to page 1 and
// fetches. An empty value removes the field.
func (c *ListController[T]) SetExtra(ctx context.Context, key, value string) *domain.APIError {
	c.mu.Lock()
	if c.filter.Extra == nil {
		c.filter.Extra = make(map[string]string)
	}
	if value == "" {
		delete(c.filter.Extra, key)
	} else {
		c.filter.Extra[key] = value
	}
	c.filter.Page = 1
	return c.load(ctx)
}

// SetLimit changes the page size, resets to page 1 and fetches.
func (c *ListController[T]) SetLimit(ctx context.Context, limit int) *domain.APIError {
	c.mu.Lock()
	c.filter.Limit = pkg.ClampLimit(limit)
	c.filter.Page = 1
	return c.load(ctx)
}

// SetPage navigates to a page without touching the filter.
func (c *ListController[T]) SetPage(ctx context.Context, page int) *domain.APIError {
	c.mu.Lock()
	c.filter.Page = pkg.ClampPage(page)
	return c.load(ctx)
}

// load runs a fetch for the current filter. The caller must hold mu;
// load releases it. A nil return means the result was applied or the
// fetch was superseded by a newer one.
func (c *ListController[T]) load(ctx context.Context) *domain.APIError {
	c.generation++
	gen := c.generation
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	prev := c.state
	c.state = StateLoading
	// The fetch reads the filter outside the lock, so it must not share
	// the Extra map with later SetExtra calls.
	filter := cloneFilter(c.filter)
	c.mu.Unlock()

	res := c.fetch(fetchCtx, filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// A newer fetch took over while this one ran; its outcome wins.
		c.logger.Debug("discarding superseded fetch", slog.Uint64("generation", gen))
		return nil
	}
	cancel()
	c.cancel = nil

	if !res.Success {
		if domain.IsAborted(res.Err) {
			// Cancellation is not a user-facing failure; keep the prior state.
			c.state = prev
			return nil
		}
		c.state = StateErrored
		c.lastErr = res.Err
		c.logger.Warn("list fetch failed", slog.String("error", res.Err.Error()))
		return res.Err
	}

	c.state = StateLoaded
	c.lastErr = nil
	c.items = res.Data.Items
	c.total = res.Data.Total
	return nil
}

// Items returns a copy of the current page.
func (c *ListController[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Total returns the backend-reported item count across all pages.
func (c *ListController[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// TotalPages derives the page count from the total and the page size.
func (c *ListController[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := domain.PaginatedData[T]{Total: c.total, Limit: c.filter.Limit}
	return p.TotalPages()
}

// Page returns the current 1-indexed page.
func (c *ListController[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter.Page
}

// Filter returns a copy of the current filter.
func (c *ListController[T]) Filter() domain.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneFilter(c.filter)
}

// cloneFilter copies a filter including its Extra map.
func cloneFilter(f domain.Filter) domain.Filter {
	if f.Extra != nil {
		extra := make(map[string]string, len(f.Extra))
		for k, v := range f.Extra {
			extra[k] = v
		}
		f.Extra = extra
	}
	return f
}

// State returns the current load state.
func (c *ListController[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error of the last failed fetch, or nil.
func (c *ListController[T]) Err() *domain.APIError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// PatchItem replaces the item with the given id by fn's return value.
// Untouched items keep their identity. Reports whether a match was found.
func (c *ListController[T]) PatchItem(id domain.ID, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item.EntityID() == id {
			c.items[i] = fn(item)
			return true
		}
	}
	return false
}

// RemoveItem drops the item with the given id from the page and decrements
// the total. Reports whether a match was found.
func (c *ListController[T]) RemoveItem(id domain.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item.EntityID() == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			if c.total > 0 {
				c.total--
			}
			return true
		}
	}
	return false
}

// Item returns the item with the given id from the current page.
func (c *ListController[T]) Item(id domain.ID) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

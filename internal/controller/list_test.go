package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/transport"
)

type row struct {
	ID     domain.ID
	Status string
}

func (r row) EntityID() domain.ID { return r.ID }

// fakeFetcher records every filter it is called with and replays queued
// results in order, repeating the last one when the queue runs dry.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []domain.Filter
	results []transport.Result[domain.PaginatedData[row]]
}

func (f *fakeFetcher) fetch(_ context.Context, filter domain.Filter) transport.Result[domain.PaginatedData[row]] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, filter)
	res := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return res
}

func (f *fakeFetcher) lastCall(t *testing.T) domain.Filter {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		t.Fatal("fetcher was never called")
	}
	return f.calls[len(f.calls)-1]
}

func page(items []row, total, pageNum, limit int) transport.Result[domain.PaginatedData[row]] {
	return transport.OK(domain.PaginatedData[row]{Items: items, Total: total, Page: pageNum, Limit: limit})
}

func TestReload(t *testing.T) {
	f := &fakeFetcher{results: []transport.Result[domain.PaginatedData[row]]{
		page([]row{{ID: 1, Status: "pending"}}, 1, 1, 10),
	}}
	c := NewListController[row](f.fetch, domain.Filter{}, nil)

	if c.State() != StateIdle {
		t.Fatalf("initial state = %v", c.State())
	}
	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if c.State() != StateLoaded {
		t.Errorf("state = %v, want loaded", c.State())
	}
	if items := c.Items(); len(items) != 1 || items[0].ID != 1 {
		t.Errorf("items = %+v", items)
	}
	if c.Total() != 1 {
		t.Errorf("total = %d", c.Total())
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	f := &fakeFetcher{results: []transport.Result[domain.PaginatedData[row]]{
		page(nil, 0, 1, 10),
	}}
	c := NewListController[row](f.fetch, domain.Filter{Page: 3, Limit: 10}, nil)

	if err := c.SetSearch(context.Background(), "spam"); err != nil {
		t.Fatalf("set search: %v", err)
	}
	got := f.lastCall(t)
	if got.Page != 1 || got.Search != "spam" {
		t.Errorf("fetched with page=%d search=%q, want page 1", got.Page, got.Search)
	}
	if c.Page() != 1 {
		t.Errorf("controller page = %d, want 1", c.Page())
	}

	if err := c.SetStatus(context.Background(), "pending"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if got := f.lastCall(t); got.Page != 1 || got.Status != "pending" {
		t.Errorf("fetched with page=%d status=%q", got.Page, got.Status)
	}

	if err := c.SetExtra(context.Background(), "type", "post"); err != nil {
		t.Fatalf("set extra: %v", err)
	}
	if got := f.lastCall(t); got.Extra["type"] != "post" || got.Page != 1 {
		t.Errorf("fetched with %+v", got)
	}
}

func TestSetPageKeepsFilter(t *testing.T) {
	f := &fakeFetcher{results: []transport.Result[domain.PaginatedData[row]]{
		page(nil, 0, 1, 10),
	}}
	c := NewListController[row](f.fetch, domain.Filter{Search: "spam", Limit: 10}, nil)

	if err := c.SetPage(context.Background(), 4); err != nil {
		t.Fatalf("set page: %v", err)
	}
	got := f.lastCall(t)
	if got.Page != 4 || got.Search != "spam" {
		t.Errorf("fetched with page=%d search=%q, want 4/spam", got.Page, got.Search)
	}
}

func TestPreserveItemsOnError(t *testing.T) {
	f := &fakeFetcher{results: []transport.Result[domain.PaginatedData[row]]{
		page([]row{{ID: 1}, {ID: 2}}, 2, 1, 10),
		transport.Fail[domain.PaginatedData[row]](domain.NewAPIError(domain.CodeNetworkError, "connection refused")),
	}}
	c := NewListController[row](f.fetch, domain.Filter{}, nil)

	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("first reload: %v", err)
	}
	err := c.Reload(context.Background())
	if err == nil {
		t.Fatal("second reload should fail")
	}
	if c.State() != StateErrored {
		t.Errorf("state = %v, want errored", c.State())
	}
	if c.Err() == nil || c.Err().Code != domain.CodeNetworkError {
		t.Errorf("err = %v", c.Err())
	}
	if items := c.Items(); len(items) != 2 {
		t.Errorf("items lost on error: %+v", items)
	}
}

// A triage walk over 31 reports with a page size of 10: four pages, page
// navigation preserves the filter, and a status change snaps back to page 1.
func TestPagedTriageWalk(t *testing.T) {
	f := &fakeFetcher{results: []transport.Result[domain.PaginatedData[row]]{
		page([]row{{ID: 1}, {ID: 2}}, 31, 1, 10),
	}}
	c := NewListController[row](f.fetch, domain.Filter{Status: "pending", Limit: 10}, nil)

	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if c.TotalPages() != 4 {
		t.Errorf("total pages = %d, want 4", c.TotalPages())
	}

	if err := c.SetPage(context.Background(), 4); err != nil {
		t.Fatalf("set page: %v", err)
	}
	got := f.lastCall(t)
	if got.Page != 4 || got.Status != "pending" {
		t.Errorf("page 4 fetch: %+v", got)
	}

	if err := c.SetStatus(context.Background(), "reviewed"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	got = f.lastCall(t)
	if got.Page != 1 || got.Status != "reviewed" {
		t.Errorf("status change fetch: %+v", got)
	}
}

func TestFetchFilterDoesNotShareExtraMap(t *testing.T) {
	var mu sync.Mutex
	var captured []map[string]string
	fetch := func(_ context.Context, f domain.Filter) transport.Result[domain.PaginatedData[row]] {
		mu.Lock()
		captured = append(captured, f.Extra)
		mu.Unlock()
		return page(nil, 0, 1, 10)
	}
	c := NewListController[row](fetch, domain.Filter{Extra: map[string]string{"type": "post"}}, nil)

	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := c.SetExtra(context.Background(), "type", "comment"); err != nil {
		t.Fatalf("set extra: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(captured) != 2 {
		t.Fatalf("fetch count = %d", len(captured))
	}
	if got := captured[0]["type"]; got != "post" {
		t.Errorf("first fetch's filter mutated after the fact: type = %q, want post", got)
	}
	if got := captured[1]["type"]; got != "comment" {
		t.Errorf("second fetch type = %q, want comment", got)
	}
}

// Exercises concurrent filter writes against an in-flight fetch iterating
// the Extra map; fails under the race detector if the map is shared.
func TestConcurrentSetExtraAndReload(t *testing.T) {
	fetch := func(_ context.Context, f domain.Filter) transport.Result[domain.PaginatedData[row]] {
		for range f.Extra {
		}
		return page(nil, 0, 1, 10)
	}
	c := NewListController[row](fetch, domain.Filter{Extra: map[string]string{"type": "post"}}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.Reload(context.Background())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.SetExtra(context.Background(), "type", "comment")
			}
		}()
	}
	wg.Wait()
}

func TestSupersededFetchIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var firstCtxErr error

	fetch := func(ctx context.Context, f domain.Filter) transport.Result[domain.PaginatedData[row]] {
		if f.Page == 1 {
			// Simulate a slow first page; block until the test releases it.
			select {
			case <-release:
			case <-ctx.Done():
			}
			mu.Lock()
			firstCtxErr = ctx.Err()
			mu.Unlock()
			return page([]row{{ID: 100, Status: "stale"}}, 1, 1, 10)
		}
		return page([]row{{ID: 200, Status: "fresh"}}, 1, 2, 10)
	}

	c := NewListController[row](fetch, domain.Filter{Limit: 10}, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Reload(context.Background())
	}()

	// Wait for the first fetch to be in flight.
	deadline := time.After(2 * time.Second)
	for c.State() != StateLoading {
		select {
		case <-deadline:
			t.Fatal("first fetch never started")
		case <-time.After(time.Millisecond):
		}
	}

	if err := c.SetPage(context.Background(), 2); err != nil {
		t.Fatalf("superseding fetch: %v", err)
	}
	close(release)
	<-done

	items := c.Items()
	if len(items) != 1 || items[0].ID != 200 {
		t.Errorf("stale response applied: %+v", items)
	}
	mu.Lock()
	defer mu.Unlock()
	if firstCtxErr == nil {
		t.Error("superseded fetch context was not cancelled")
	}
}

func TestAbortKeepsPriorState(t *testing.T) {
	f := &fakeFetcher{results: []transport.Result[domain.PaginatedData[row]]{
		page([]row{{ID: 1}}, 1, 1, 10),
		transport.Fail[domain.PaginatedData[row]](domain.NewAPIError(domain.CodeAborted, "request cancelled")),
	}}
	c := NewListController[row](f.fetch, domain.Filter{}, nil)

	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("first reload: %v", err)
	}
	if err := c.Reload(context.Background()); err != nil {
		t.Errorf("aborted fetch must not surface an error, got %v", err)
	}
	if c.State() != StateLoaded {
		t.Errorf("state = %v, want loaded", c.State())
	}
	if len(c.Items()) != 1 {
		t.Errorf("items = %+v", c.Items())
	}
}

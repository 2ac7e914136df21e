package pkg

import (
	"encoding/json"
	"log/slog"

	"github.com/simp-lee/forumclient/internal/domain"
)

// Default pagination parameters applied when a filter leaves them unset.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// listEnvelope matches the paginated object shape some endpoints return.
// Older endpoints use alternative field names (comments/totalItems), which
// are folded in here rather than leaked to callers.
type listEnvelope struct {
	Items      json.RawMessage `json:"items"`
	Comments   json.RawMessage `json:"comments"`
	Total      *int            `json:"total"`
	TotalItems *int            `json:"totalItems"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

// NormalizeList converts a raw list response into PaginatedData regardless of
// which shape the backend chose: a bare array, an {items,total,page,limit}
// object, or the legacy {comments,totalItems} wrapper. The inconsistency is
// by design across endpoints, so unexpected shapes are logged and coerced
// best-effort instead of failing hard. page and limit are the requested
// values, used wherever the response omits its own.
func NormalizeList[T any](raw json.RawMessage, page, limit int) domain.PaginatedData[T] {
	page = ClampPage(page)
	limit = ClampLimit(limit)

	out := domain.PaginatedData[T]{Items: []T{}, Page: page, Limit: limit}
	if len(raw) == 0 {
		return out
	}

	// Bare array: total is the item count, page defaults from the request.
	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		if items == nil {
			items = []T{}
		}
		out.Items = items
		out.Total = len(items)
		return out
	}

	var env listEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		slog.Warn("unexpected list response shape, coercing to empty page",
			slog.Any("error", err))
		return out
	}

	rawItems := env.Items
	if rawItems == nil {
		rawItems = env.Comments
	}
	if rawItems != nil {
		if err := json.Unmarshal(rawItems, &items); err != nil {
			slog.Warn("unexpected list items shape, coercing to empty page",
				slog.Any("error", err))
			items = nil
		}
	}
	if items == nil {
		items = []T{}
	}
	out.Items = items

	switch {
	case env.Total != nil:
		out.Total = *env.Total
	case env.TotalItems != nil:
		out.Total = *env.TotalItems
	default:
		out.Total = len(items)
	}
	if out.Total < 0 {
		out.Total = 0
	}
	if env.Page >= 1 {
		out.Page = env.Page
	}
	if env.Limit > 0 {
		out.Limit = env.Limit
	}

	return out
}

// ClampPage coerces a page number to the 1-indexed minimum.
func ClampPage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

// ClampLimit coerces a page size into the valid range.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

package pkg

import (
	"testing"

	"github.com/simp-lee/forumclient/internal/domain"
)

func TestPageQuery_SkipConversion(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		wantSkip string
	}{
		{"page 3 limit 10", 3, 10, "20"},
		{"first page", 1, 10, "0"},
		{"page 2 limit 25", 2, 25, "25"},
		{"unset page defaults to 1", 0, 10, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := PageQuery(domain.Filter{Page: tt.page, Limit: tt.limit})
			if q["skip"] != tt.wantSkip {
				t.Errorf("expected skip=%s, got %s", tt.wantSkip, q["skip"])
			}
		})
	}
}

func TestPageQuery_OptionalFields(t *testing.T) {
	q := PageQuery(domain.Filter{
		Page:   2,
		Limit:  10,
		Search: "grant",
		Status: "pending",
		Extra:  map[string]string{"type": "post", "role": ""},
	})

	if q["search"] != "grant" || q["status"] != "pending" || q["type"] != "post" {
		t.Errorf("expected optional fields present, got %v", q)
	}
	if _, ok := q["role"]; ok {
		t.Error("empty extra fields must be omitted")
	}
	if _, ok := q["sort"]; ok {
		t.Error("unset sort must be omitted")
	}
}

func TestPageQuery_ClampsLimit(t *testing.T) {
	q := PageQuery(domain.Filter{Page: 1, Limit: 1000})
	if q["limit"] != "100" {
		t.Errorf("expected limit clamped to 100, got %s", q["limit"])
	}
}

func TestPagedQuery(t *testing.T) {
	q := PagedQuery(domain.Filter{Page: 4, Limit: 10})
	if q["page"] != "4" {
		t.Errorf("expected page=4, got %s", q["page"])
	}
	if q["limit"] != "10" {
		t.Errorf("expected limit=10, got %s", q["limit"])
	}
	if _, ok := q["skip"]; ok {
		t.Error("paged endpoints must not receive skip")
	}
}

func TestFormatID(t *testing.T) {
	if got := FormatID(42); got != "42" {
		t.Errorf("expected 42, got %s", got)
	}
}

package pkg

import (
	"encoding/json"
	"testing"

	"github.com/simp-lee/forumclient/internal/domain"
)

func TestNormalizeList_BareArray(t *testing.T) {
	raw := json.RawMessage(`[{"id":1,"title":"a"},{"id":2,"title":"b"},{"id":3,"title":"c"}]`)

	got := NormalizeList[domain.Notice](raw, 1, 10)

	if len(got.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got.Items))
	}
	if got.Total != 3 {
		t.Errorf("expected total=len(items)=3, got %d", got.Total)
	}
	if got.Page != 1 {
		t.Errorf("expected requested page 1, got %d", got.Page)
	}
	if got.Limit != 10 {
		t.Errorf("expected requested limit 10, got %d", got.Limit)
	}
}

func TestNormalizeList_PaginatedObject(t *testing.T) {
	raw := json.RawMessage(`{"items":[{"id":5}],"total":41,"page":3,"limit":20}`)

	got := NormalizeList[domain.Post](raw, 1, 10)

	if len(got.Items) != 1 || got.Items[0].ID != 5 {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
	if got.Total != 41 || got.Page != 3 || got.Limit != 20 {
		t.Errorf("expected backend pagination preserved, got %+v", got)
	}
}

func TestNormalizeList_LegacyCommentsWrapper(t *testing.T) {
	raw := json.RawMessage(`{"comments":[{"id":1},{"id":2}],"totalItems":12}`)

	got := NormalizeList[domain.Comment](raw, 2, 10)

	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Total != 12 {
		t.Errorf("expected totalItems folded into total, got %d", got.Total)
	}
	if got.Page != 2 {
		t.Errorf("expected requested page kept, got %d", got.Page)
	}
}

func TestNormalizeList_Leniency(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty body", ``},
		{"null", `null`},
		{"null items", `{"items":null,"total":0}`},
		{"scalar", `42`},
		{"items of wrong shape", `{"items":{"oops":true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeList[domain.Post](json.RawMessage(tt.raw), 1, 10)
			if got.Items == nil {
				t.Fatal("items must never be nil")
			}
			if len(got.Items) != 0 {
				t.Errorf("expected empty items, got %d", len(got.Items))
			}
			if got.Page != 1 || got.Limit != 10 {
				t.Errorf("expected request defaults, got page=%d limit=%d", got.Page, got.Limit)
			}
		})
	}
}

func TestNormalizeList_ClampsRequestValues(t *testing.T) {
	got := NormalizeList[domain.Post](json.RawMessage(`[]`), 0, -5)
	if got.Page != DefaultPage {
		t.Errorf("expected page clamped to %d, got %d", DefaultPage, got.Page)
	}
	if got.Limit != DefaultLimit {
		t.Errorf("expected limit clamped to %d, got %d", DefaultLimit, got.Limit)
	}
}

func TestNormalizeList_NegativeTotalCoerced(t *testing.T) {
	got := NormalizeList[domain.Post](json.RawMessage(`{"items":[],"total":-3}`), 1, 10)
	if got.Total != 0 {
		t.Errorf("expected negative total coerced to 0, got %d", got.Total)
	}
}

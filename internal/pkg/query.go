package pkg

import (
	"strconv"

	"github.com/simp-lee/forumclient/internal/domain"
)

// PageQuery builds the query map for an offset-paginated list endpoint from
// a filter. The 1-indexed page converts to skip via skip=(page-1)*limit.
// Empty optional fields are left out; the transport also drops empty values,
// so the AND semantics of the backend see only the populated ones.
func PageQuery(f domain.Filter) map[string]string {
	page := ClampPage(f.Page)
	limit := ClampLimit(f.Limit)

	q := map[string]string{
		"skip":  strconv.Itoa((page - 1) * limit),
		"limit": strconv.Itoa(limit),
	}
	if f.Search != "" {
		q["search"] = f.Search
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Sort != "" {
		q["sort"] = f.Sort
	}
	for k, v := range f.Extra {
		if v != "" {
			q[k] = v
		}
	}
	return q
}

// PagedQuery builds the query map for endpoints that take page/limit
// directly instead of skip/limit.
func PagedQuery(f domain.Filter) map[string]string {
	q := PageQuery(f)
	delete(q, "skip")
	q["page"] = strconv.Itoa(ClampPage(f.Page))
	return q
}

// FormatID renders an entity id for use in an endpoint path.
func FormatID(id domain.ID) string {
	return strconv.FormatInt(id, 10)
}

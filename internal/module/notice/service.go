package notice

import (
	"context"
	"strconv"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/pkg"
	"github.com/simp-lee/forumclient/internal/transport"
)

// Service exposes the notice board and its admin management endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates a notice Service.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// List returns notices, pinned first. The backend answers with a bare JSON
// array here, so the total equals the page length after normalization.
// includeHidden is honored only for moderators.
func (s *Service) List(ctx context.Context, f domain.Filter, includeHidden bool) transport.Result[domain.PaginatedData[domain.NoticeWithUser]] {
	q := pkg.PageQuery(f)
	if includeHidden {
		q["include_hidden"] = strconv.FormatBool(true)
	}

	res := s.client.Get(ctx, "/notices", q, nil)
	if !res.Success {
		return transport.FailFrom[domain.PaginatedData[domain.NoticeWithUser]](res)
	}
	return transport.OK(pkg.NormalizeList[domain.NoticeWithUser](res.Data, pkg.ClampPage(f.Page), pkg.ClampLimit(f.Limit)))
}

// Get returns a single notice.
func (s *Service) Get(ctx context.Context, id domain.ID) transport.Result[domain.NoticeWithUser] {
	return transport.Decode[domain.NoticeWithUser](s.client.Get(ctx, "/notices/"+pkg.FormatID(id), nil, nil))
}

// Create publishes a new notice.
func (s *Service) Create(ctx context.Context, req CreateNoticeRequest) transport.Result[domain.Notice] {
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.Notice](err)
	}
	return transport.Decode[domain.Notice](s.client.Post(ctx, "/admin/notices", req, nil))
}

// Update edits an existing notice.
func (s *Service) Update(ctx context.Context, id domain.ID, req UpdateNoticeRequest) transport.Result[domain.Notice] {
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.Notice](err)
	}
	return transport.Decode[domain.Notice](s.client.Put(ctx, "/admin/notices/"+pkg.FormatID(id), req, nil))
}

// Delete permanently removes a notice.
func (s *Service) Delete(ctx context.Context, id domain.ID) transport.Result[struct{}] {
	return transport.Ack(s.client.Delete(ctx, "/admin/notices/"+pkg.FormatID(id), nil))
}

// Hide removes a notice from the public board without deleting it.
func (s *Service) Hide(ctx context.Context, id domain.ID) transport.Result[domain.Notice] {
	return s.flag(ctx, id, "hide")
}

// Unhide restores a hidden notice.
func (s *Service) Unhide(ctx context.Context, id domain.ID) transport.Result[domain.Notice] {
	return s.flag(ctx, id, "unhide")
}

// Pin keeps a notice at the top of the board.
func (s *Service) Pin(ctx context.Context, id domain.ID) transport.Result[domain.Notice] {
	return s.flag(ctx, id, "pin")
}

// Unpin releases a pinned notice.
func (s *Service) Unpin(ctx context.Context, id domain.ID) transport.Result[domain.Notice] {
	return s.flag(ctx, id, "unpin")
}

func (s *Service) flag(ctx context.Context, id domain.ID, action string) transport.Result[domain.Notice] {
	return transport.Decode[domain.Notice](s.client.Put(ctx, "/admin/notices/"+pkg.FormatID(id)+"/"+action, nil, nil))
}

package institution

import (
	"context"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/pkg"
	"github.com/simp-lee/forumclient/internal/transport"
)

// Service exposes the institution registry endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates an institution Service.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// List returns institutions matching the optional search term.
func (s *Service) List(ctx context.Context, f domain.Filter) transport.Result[domain.PaginatedData[domain.Institution]] {
	res := s.client.Get(ctx, "/institutions", pkg.PageQuery(f), nil)
	if !res.Success {
		return transport.FailFrom[domain.PaginatedData[domain.Institution]](res)
	}
	return transport.OK(pkg.NormalizeList[domain.Institution](res.Data, pkg.ClampPage(f.Page), pkg.ClampLimit(f.Limit)))
}

// Add registers a new institution.
func (s *Service) Add(ctx context.Context, req AddInstitutionRequest) transport.Result[domain.Institution] {
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.Institution](err)
	}
	return transport.Decode[domain.Institution](s.client.Post(ctx, "/admin/institutions", req, nil))
}

// Update edits an existing institution.
func (s *Service) Update(ctx context.Context, id domain.ID, req UpdateInstitutionRequest) transport.Result[domain.Institution] {
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.Institution](err)
	}
	return transport.Decode[domain.Institution](s.client.Put(ctx, "/admin/institutions/"+pkg.FormatID(id), req, nil))
}

// Delete removes an institution. The backend refuses when posts still
// reference it; that arrives as HTTP_ERROR_409.
func (s *Service) Delete(ctx context.Context, id domain.ID) transport.Result[struct{}] {
	return transport.Ack(s.client.Delete(ctx, "/admin/institutions/"+pkg.FormatID(id), nil))
}

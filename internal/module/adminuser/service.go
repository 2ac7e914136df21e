package adminuser

import (
	"context"
	"strconv"
	"time"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/pkg"
	"github.com/simp-lee/forumclient/internal/transport"
)

// Service exposes the admin user management endpoints.
type Service struct {
	client *transport.Client

	// now is replaceable in tests; suspension deadlines are computed
	// client-side.
	now func() time.Time
}

// NewService creates an admin user Service.
func NewService(client *transport.Client) *Service {
	return &Service{client: client, now: time.Now}
}

// List returns users for the admin screen. Role filtering goes through
// f.Extra["role"]; Status filters by account state.
func (s *Service) List(ctx context.Context, f domain.Filter) transport.Result[domain.PaginatedData[domain.User]] {
	res := s.client.Get(ctx, "/admin/users", pkg.PageQuery(f), nil)
	if !res.Success {
		return transport.FailFrom[domain.PaginatedData[domain.User]](res)
	}
	return transport.OK(pkg.NormalizeList[domain.User](res.Data, pkg.ClampPage(f.Page), pkg.ClampLimit(f.Limit)))
}

// Detail returns a user with activity counters.
func (s *Service) Detail(ctx context.Context, id domain.ID) transport.Result[domain.UserDetail] {
	return transport.Decode[domain.UserDetail](s.client.Get(ctx, "/admin/users/"+pkg.FormatID(id), nil, nil))
}

// Suspend blocks a user. A non-nil days computes suspended_until as now
// plus that many days; nil means permanent and serializes as null. The
// reason is mandatory.
func (s *Service) Suspend(ctx context.Context, id domain.ID, days *int, reason string) transport.Result[domain.User] {
	req := SuspendRequest{Reason: reason}
	if days != nil {
		until := s.now().UTC().Add(time.Duration(*days) * 24 * time.Hour)
		req.SuspendedUntil = &until
	}
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.User](err)
	}
	return transport.Decode[domain.User](s.client.Put(ctx, "/admin/users/"+pkg.FormatID(id)+"/suspend", req, nil))
}

// Unsuspend lifts a suspension.
func (s *Service) Unsuspend(ctx context.Context, id domain.ID) transport.Result[domain.User] {
	return transport.Decode[domain.User](s.client.Put(ctx, "/admin/users/"+pkg.FormatID(id)+"/unsuspend", nil, nil))
}

// UpdateRole changes a user's permission tier.
func (s *Service) UpdateRole(ctx context.Context, id domain.ID, role domain.Role) transport.Result[domain.User] {
	req := UpdateRoleRequest{Role: role}
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.User](err)
	}
	return transport.Decode[domain.User](s.client.Put(ctx, "/admin/users/"+pkg.FormatID(id)+"/role", req, nil))
}

// RestrictionHistory returns a user's full suspension record, newest first.
func (s *Service) RestrictionHistory(ctx context.Context, id domain.ID) transport.Result[[]domain.RestrictionHistory] {
	return transport.Decode[[]domain.RestrictionHistory](s.client.Get(ctx, "/admin/users/"+pkg.FormatID(id)+"/restrictions", nil, nil))
}

// Activities returns a window of a user's activity trail. This endpoint
// takes skip/limit directly rather than a page number.
func (s *Service) Activities(ctx context.Context, id domain.ID, skip, limit int) transport.Result[domain.PaginatedData[domain.ActivityLog]] {
	if skip < 0 {
		skip = 0
	}
	limit = pkg.ClampLimit(limit)
	q := map[string]string{
		"skip":  strconv.Itoa(skip),
		"limit": strconv.Itoa(limit),
	}

	res := s.client.Get(ctx, "/admin/users/"+pkg.FormatID(id)+"/activities", q, nil)
	if !res.Success {
		return transport.FailFrom[domain.PaginatedData[domain.ActivityLog]](res)
	}
	return transport.OK(pkg.NormalizeList[domain.ActivityLog](res.Data, skip/limit+1, limit))
}

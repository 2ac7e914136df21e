package notification

import (
	"context"
	"strconv"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/pkg"
	"github.com/simp-lee/forumclient/internal/transport"
)

// Service exposes the current user's notification inbox.
type Service struct {
	client *transport.Client
}

// NewService creates a notification Service.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// List returns the caller's notifications, newest first. Type filtering
// goes through f.Extra["type"]; use Unread to restrict to unread ones.
func (s *Service) List(ctx context.Context, f domain.Filter, unreadOnly bool) transport.Result[domain.PaginatedData[domain.Notification]] {
	q := pkg.PageQuery(f)
	if unreadOnly {
		q["is_read"] = strconv.FormatBool(false)
	}

	res := s.client.Get(ctx, "/notifications", q, nil)
	if !res.Success {
		return transport.FailFrom[domain.PaginatedData[domain.Notification]](res)
	}
	return transport.OK(pkg.NormalizeList[domain.Notification](res.Data, pkg.ClampPage(f.Page), pkg.ClampLimit(f.Limit)))
}

// MarkRead flags one notification as read and returns it.
func (s *Service) MarkRead(ctx context.Context, id domain.ID) transport.Result[domain.Notification] {
	return transport.Decode[domain.Notification](s.client.Put(ctx, "/notifications/"+pkg.FormatID(id)+"/read", nil, nil))
}

// MarkAllRead flags every notification as read and returns the updated set.
func (s *Service) MarkAllRead(ctx context.Context) transport.Result[[]domain.Notification] {
	return transport.Decode[[]domain.Notification](s.client.Put(ctx, "/notifications/read-all", nil, nil))
}

// Delete removes one notification.
func (s *Service) Delete(ctx context.Context, id domain.ID) transport.Result[struct{}] {
	return transport.Ack(s.client.Delete(ctx, "/notifications/"+pkg.FormatID(id), nil))
}

// DeleteAll empties the inbox.
func (s *Service) DeleteAll(ctx context.Context) transport.Result[struct{}] {
	return transport.Ack(s.client.Delete(ctx, "/notifications", nil))
}

// Unread returns how many notifications are still unread, for the badge.
func (s *Service) Unread(ctx context.Context) transport.Result[UnreadCount] {
	return transport.Decode[UnreadCount](s.client.Get(ctx, "/notifications/unread-count", nil, nil))
}

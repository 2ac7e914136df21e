package report

import (
	"context"
	"encoding/json"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/pkg"
	"github.com/simp-lee/forumclient/internal/transport"
)

// Service exposes report filing and the admin report triage endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates a report Service.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// PostReports lists reports filed against posts for the admin triage screen.
func (s *Service) PostReports(ctx context.Context, f domain.Filter) transport.Result[domain.PaginatedData[domain.PostReport]] {
	return listReports[domain.PostReport](ctx, s.client, f, domain.TargetPost)
}

// CommentReports lists reports filed against comments.
func (s *Service) CommentReports(ctx context.Context, f domain.Filter) transport.Result[domain.PaginatedData[domain.CommentReport]] {
	return listReports[domain.CommentReport](ctx, s.client, f, domain.TargetComment)
}

// Create files a new report. Exactly one of PostID/CommentID must be set and
// a reason is required; both rules are enforced before the request goes out.
func (s *Service) Create(ctx context.Context, req CreateReportRequest) transport.Result[domain.Report] {
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.Report](err)
	}
	return transport.Decode[domain.Report](s.client.Post(ctx, "/reports", req, nil))
}

// ApprovePost marks a post report as reviewed; the backend hides the
// offending post and returns the updated joined row.
func (s *Service) ApprovePost(ctx context.Context, id domain.ID) transport.Result[domain.PostReport] {
	return transport.Decode[domain.PostReport](s.review(ctx, id, "approve", domain.TargetPost))
}

// RejectPost dismisses a post report without hiding the post.
func (s *Service) RejectPost(ctx context.Context, id domain.ID) transport.Result[domain.PostReport] {
	return transport.Decode[domain.PostReport](s.review(ctx, id, "reject", domain.TargetPost))
}

// ApproveComment marks a comment report as reviewed and hides the comment.
func (s *Service) ApproveComment(ctx context.Context, id domain.ID) transport.Result[domain.CommentReport] {
	return transport.Decode[domain.CommentReport](s.review(ctx, id, "approve", domain.TargetComment))
}

// RejectComment dismisses a comment report.
func (s *Service) RejectComment(ctx context.Context, id domain.ID) transport.Result[domain.CommentReport] {
	return transport.Decode[domain.CommentReport](s.review(ctx, id, "reject", domain.TargetComment))
}

func (s *Service) review(ctx context.Context, id domain.ID, action string, target domain.TargetType) transport.Result[json.RawMessage] {
	return s.client.Put(ctx, "/admin/reports/"+pkg.FormatID(id)+"/"+action, reviewRequest{Type: target}, nil)
}

func listReports[T any](ctx context.Context, client *transport.Client, f domain.Filter, target domain.TargetType) transport.Result[domain.PaginatedData[T]] {
	q := pkg.PageQuery(f)
	q["type"] = string(target)

	res := client.Get(ctx, "/admin/reports", q, nil)
	if !res.Success {
		return transport.FailFrom[domain.PaginatedData[T]](res)
	}
	return transport.OK(pkg.NormalizeList[T](res.Data, pkg.ClampPage(f.Page), pkg.ClampLimit(f.Limit)))
}

package comment

import (
	"context"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/pkg"
	"github.com/simp-lee/forumclient/internal/transport"
)

// Service exposes comment posting, reactions and the admin moderation
// endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates a comment Service.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// AdminList lists comments for the moderation screen. Status filters by
// visibility (all/visible/hidden) and Search matches content and author.
// This endpoint still answers in the legacy comments/totalItems shape.
func (s *Service) AdminList(ctx context.Context, f domain.Filter) transport.Result[domain.PaginatedData[domain.CommentWithUser]] {
	res := s.client.Get(ctx, "/admin/comments", pkg.PageQuery(f), nil)
	if !res.Success {
		return transport.FailFrom[domain.PaginatedData[domain.CommentWithUser]](res)
	}
	return transport.OK(pkg.NormalizeList[domain.CommentWithUser](res.Data, pkg.ClampPage(f.Page), pkg.ClampLimit(f.Limit)))
}

// ByPost lists the visible comments of a post.
func (s *Service) ByPost(ctx context.Context, postID domain.ID, f domain.Filter) transport.Result[domain.PaginatedData[domain.CommentWithUser]] {
	res := s.client.Get(ctx, "/posts/"+pkg.FormatID(postID)+"/comments", pkg.PageQuery(f), nil)
	if !res.Success {
		return transport.FailFrom[domain.PaginatedData[domain.CommentWithUser]](res)
	}
	return transport.OK(pkg.NormalizeList[domain.CommentWithUser](res.Data, pkg.ClampPage(f.Page), pkg.ClampLimit(f.Limit)))
}

// Create posts a new comment.
func (s *Service) Create(ctx context.Context, req CreateCommentRequest) transport.Result[domain.CommentWithUser] {
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.CommentWithUser](err)
	}
	return transport.Decode[domain.CommentWithUser](s.client.Post(ctx, "/comments", req, nil))
}

// Hide soft-removes a comment from public view.
func (s *Service) Hide(ctx context.Context, id domain.ID) transport.Result[domain.CommentWithUser] {
	return s.moderate(ctx, id, "hide")
}

// Unhide restores a hidden comment.
func (s *Service) Unhide(ctx context.Context, id domain.ID) transport.Result[domain.CommentWithUser] {
	return s.moderate(ctx, id, "unhide")
}

// Delete permanently removes a comment.
func (s *Service) Delete(ctx context.Context, id domain.ID) transport.Result[struct{}] {
	return transport.Ack(s.client.Delete(ctx, "/admin/comments/"+pkg.FormatID(id), nil))
}

// Like records a like on a comment. Liking twice yields HTTP_ERROR_409,
// which callers treat as already-done.
func (s *Service) Like(ctx context.Context, id domain.ID) transport.Result[struct{}] {
	return transport.Ack(s.client.Post(ctx, "/comments/"+pkg.FormatID(id)+"/like", nil, nil))
}

// Unlike removes a previously recorded like.
func (s *Service) Unlike(ctx context.Context, id domain.ID) transport.Result[struct{}] {
	return transport.Ack(s.client.Delete(ctx, "/comments/"+pkg.FormatID(id)+"/like", nil))
}

func (s *Service) moderate(ctx context.Context, id domain.ID, action string) transport.Result[domain.CommentWithUser] {
	return transport.Decode[domain.CommentWithUser](s.client.Put(ctx, "/admin/comments/"+pkg.FormatID(id)+"/"+action, nil, nil))
}

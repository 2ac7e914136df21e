package post

import (
	"context"

	"github.com/simp-lee/forumclient/internal/domain"
	"github.com/simp-lee/forumclient/internal/pkg"
	"github.com/simp-lee/forumclient/internal/transport"
)

// Service exposes the post feed, reactions and the admin moderation
// endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates a post Service.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// List returns the post feed. Search matches title and content; Extra may
// carry institution_id or category_id.
func (s *Service) List(ctx context.Context, f domain.Filter) transport.Result[domain.PaginatedData[domain.PostDetail]] {
	res := s.client.Get(ctx, "/posts", pkg.PageQuery(f), nil)
	if !res.Success {
		return transport.FailFrom[domain.PaginatedData[domain.PostDetail]](res)
	}
	return transport.OK(pkg.NormalizeList[domain.PostDetail](res.Data, pkg.ClampPage(f.Page), pkg.ClampLimit(f.Limit)))
}

// Get returns a single post with author and reaction counts.
func (s *Service) Get(ctx context.Context, id domain.ID) transport.Result[domain.PostDetail] {
	return transport.Decode[domain.PostDetail](s.client.Get(ctx, "/posts/"+pkg.FormatID(id), nil, nil))
}

// Create publishes a new post.
func (s *Service) Create(ctx context.Context, req CreatePostRequest) transport.Result[domain.Post] {
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.Post](err)
	}
	return transport.Decode[domain.Post](s.client.Post(ctx, "/posts", req, nil))
}

// Update edits one of the caller's posts.
func (s *Service) Update(ctx context.Context, id domain.ID, req UpdatePostRequest) transport.Result[domain.Post] {
	if err := pkg.ValidateStruct(req); err != nil {
		return transport.Fail[domain.Post](err)
	}
	return transport.Decode[domain.Post](s.client.Put(ctx, "/posts/"+pkg.FormatID(id), req, nil))
}

// Like records a like. A repeated like answers HTTP_ERROR_409, which the
// mutation layer treats as already-done.
func (s *Service) Like(ctx context.Context, id domain.ID) transport.Result[struct{}] {
	return transport.Ack(s.client.Post(ctx, "/posts/"+pkg.FormatID(id)+"/like", nil, nil))
}

// Unlike removes a previously recorded like.
func (s *Service) Unlike(ctx context.Context, id domain.ID) transport.Result[struct{}] {
	return transport.Ack(s.client.Delete(ctx, "/posts/"+pkg.FormatID(id)+"/like", nil))
}

// Dislike records a dislike.
func (s *Service) Dislike(ctx context.Context, id domain.ID) transport.Result[struct{}] {
	return transport.Ack(s.client.Post(ctx, "/posts/"+pkg.FormatID(id)+"/dislike", nil, nil))
}

// Undislike removes a previously recorded dislike.
func (s *Service) Undislike(ctx context.Context, id domain.ID) transport.Result[struct{}] {
	return transport.Ack(s.client.Delete(ctx, "/posts/"+pkg.FormatID(id)+"/dislike", nil))
}

// Hide soft-removes a post from public view.
func (s *Service) Hide(ctx context.Context, id domain.ID) transport.Result[domain.PostDetail] {
	return s.moderate(ctx, id, "hide")
}

// Unhide restores a hidden post.
func (s *Service) Unhide(ctx context.Context, id domain.ID) transport.Result[domain.PostDetail] {
	return s.moderate(ctx, id, "unhide")
}

// Delete permanently removes a post.
func (s *Service) Delete(ctx context.Context, id domain.ID) transport.Result[struct{}] {
	return transport.Ack(s.client.Delete(ctx, "/admin/posts/"+pkg.FormatID(id), nil))
}

func (s *Service) moderate(ctx context.Context, id domain.ID, action string) transport.Result[domain.PostDetail] {
	return transport.Decode[domain.PostDetail](s.client.Put(ctx, "/admin/posts/"+pkg.FormatID(id)+"/"+action, nil, nil))
}

package comment

import "github.com/simp-lee/forumclient/internal/domain"

// CreateCommentRequest represents the input for posting a comment, or a
// reply when ParentID is set.
type CreateCommentRequest struct {
	PostID   domain.ID  `json:"post_id" validate:"required"`
	Content  string     `json:"content" validate:"required,max=2000"`
	ParentID *domain.ID `json:"parent_id,omitempty"`
}

// Visibility filter values understood by the admin comment listing.
const (
	StatusAll     = "all"
	StatusVisible = "visible"
	StatusHidden  = "hidden"
)

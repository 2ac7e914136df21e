package report

import "github.com/simp-lee/forumclient/internal/domain"

// CreateReportRequest represents the input for filing a report. Exactly one
// of post_id/comment_id must be set.
type CreateReportRequest struct {
	PostID      *domain.ID `json:"post_id,omitempty" validate:"required_without=CommentID,excluded_with=CommentID"`
	CommentID   *domain.ID `json:"comment_id,omitempty" validate:"required_without=PostID"`
	Reason      string     `json:"reason" validate:"required,max=100"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// reviewRequest is the body of the approve/reject endpoints; the backend
// needs the target type to know which joined row to update.
type reviewRequest struct {
	Type domain.TargetType `json:"type"`
}

package domain

// TargetType distinguishes what a report points at.
type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
)

// Report is a user-submitted complaint about a post or a comment. Exactly one
// of PostID/CommentID is set, matching the target type.
type Report struct {
	ID          ID           `json:"id"`
	ReporterID  ID           `json:"reporter_id"`
	PostID      *ID          `json:"post_id,omitempty"`
	CommentID   *ID          `json:"comment_id,omitempty"`
	Reason      string       `json:"reason"`
	Description string       `json:"description,omitempty"`
	Status      ReportStatus `json:"status"`
	ReviewedBy  *ID          `json:"reviewed_by,omitempty"`
	Timestamps
}

// EntityID implements Identifiable.
func (r Report) EntityID() ID { return r.ID }

// Hidden implements Moderatable. A report itself is never hidden; it is
// considered "handled" once it leaves the pending state.
func (r Report) Hidden() bool { return r.Status != ReportPending }

// PostReport is a report joined with its target post, as returned by the
// admin report listing.
type PostReport struct {
	Report
	Post Post `json:"post"`
}

// CommentReport is a report joined with its target comment.
type CommentReport struct {
	Report
	Comment Comment `json:"comment"`
}

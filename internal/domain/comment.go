package domain

// Comment is a comment on a post, optionally a reply to another comment.
type Comment struct {
	ID       ID     `json:"id"`
	Content  string `json:"content"`
	UserID   ID     `json:"user_id"`
	PostID   ID     `json:"post_id"`
	ParentID *ID    `json:"parent_id,omitempty"`
	IsHidden bool   `json:"is_hidden"`
	Timestamps
}

// EntityID implements Identifiable.
func (c Comment) EntityID() ID { return c.ID }

// Hidden implements Moderatable.
func (c Comment) Hidden() bool { return c.IsHidden }

// CommentWithUser is a comment joined with its author and reaction counts,
// the shape of the admin comment listing.
type CommentWithUser struct {
	Comment
	User         User `json:"user"`
	LikeCount    int  `json:"like_count"`
	DislikeCount int  `json:"dislike_count"`
}

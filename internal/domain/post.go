package domain

// Post is a forum post.
type Post struct {
	ID            ID     `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	UserID        ID     `json:"user_id"`
	InstitutionID *ID    `json:"institution_id,omitempty"`
	CategoryID    *ID    `json:"category_id,omitempty"`
	ViewCount     int    `json:"view_count"`
	IsHidden      bool   `json:"is_hidden"`
	Timestamps
}

// EntityID implements Identifiable.
func (p Post) EntityID() ID { return p.ID }

// Hidden implements Moderatable.
func (p Post) Hidden() bool { return p.IsHidden }

// PostDetail is a post joined with its author and reaction counts, as
// returned by the post detail endpoint. LikedByMe/DislikedByMe are
// client-side flags the backend does not provide; the detail view seeds
// them to false and reconciles them through reactions.
type PostDetail struct {
	Post
	User         User `json:"user"`
	CommentCount int  `json:"comment_count"`
	LikeCount    int  `json:"like_count"`
	DislikeCount int  `json:"dislike_count"`
	LikedByMe    bool `json:"-"`
	DislikedByMe bool `json:"-"`
}

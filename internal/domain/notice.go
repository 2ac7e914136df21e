package domain

// Notice is an announcement authored by an admin. Important notices may be
// pinned; hidden notices stay out of the public listing.
type Notice struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	UserID      ID     `json:"user_id"`
	IsImportant bool   `json:"is_important"`
	IsHidden    bool   `json:"is_hidden"`
	IsPinned    bool   `json:"is_pinned"`
	Timestamps
}

// EntityID implements Identifiable.
func (n Notice) EntityID() ID { return n.ID }

// Hidden implements Moderatable.
func (n Notice) Hidden() bool { return n.IsHidden }

// NoticeWithUser is a notice joined with its author.
type NoticeWithUser struct {
	Notice
	User User `json:"user"`
}

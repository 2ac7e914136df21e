package notice

// CreateNoticeRequest represents the input for publishing a notice.
type CreateNoticeRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	IsImportant bool   `json:"is_important"`
}

// UpdateNoticeRequest represents the input for editing an existing notice.
type UpdateNoticeRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	IsImportant bool   `json:"is_important"`
}

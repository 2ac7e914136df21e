package post

import "github.com/simp-lee/forumclient/internal/domain"

// CreatePostRequest represents the input for publishing a post.
type CreatePostRequest struct {
	Title         string     `json:"title" validate:"required,max=200"`
	Content       string     `json:"content" validate:"required"`
	InstitutionID *domain.ID `json:"institution_id,omitempty"`
	CategoryID    *domain.ID `json:"category_id,omitempty"`
}

// UpdatePostRequest represents the input for editing an existing post.
type UpdatePostRequest struct {
	Title         string     `json:"title" validate:"required,max=200"`
	Content       string     `json:"content" validate:"required"`
	InstitutionID *domain.ID `json:"institution_id,omitempty"`
	CategoryID    *domain.ID `json:"category_id,omitempty"`
}

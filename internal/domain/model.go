package domain

import (
	"math"
	"time"
)

// ID identifies an entity across all resources. The backend uses numeric ids.
type ID = int64

// Timestamps is the common creation/update metadata shared by all entities.
type Timestamps struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Role is the permission tier of a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ReportStatus is the review lifecycle state of a report.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportResolved ReportStatus = "resolved"
	ReportRejected ReportStatus = "rejected"
)

// UserStatus is the account state of a user as seen by admins.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// PaginatedData is the normalized shape of every list response. Items order
// is backend-defined (typically recency). Page is 1-indexed and Limit is the
// requested page size; Items never exceeds Limit.
type PaginatedData[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// TotalPages derives the page count from Total and Limit.
func (p PaginatedData[T]) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(p.Total) / float64(p.Limit)))
}

// Filter holds the optional list query fields shared by all resources.
// Zero values are omitted from the request; fields combine with AND
// semantics server-side.
type Filter struct {
	Search string
	Status string
	Page   int
	Limit  int
	Sort   string

	// Extra carries resource-specific query fields (e.g. type=post for
	// reports, include_hidden for notices).
	Extra map[string]string
}

// Identifiable is implemented by every entity a mutation controller can patch.
type Identifiable interface {
	EntityID() ID
}

// Moderatable is the capability surface shared by entities admins can act on:
// reports, comments, notices, and posts all carry an identity plus a mutable
// visibility or status flag.
type Moderatable interface {
	Identifiable
	Hidden() bool
}

package domain

import "time"

// User is a forum account as seen by the client, including the admin-facing
// status fields. The public profile endpoints simply leave the admin fields
// at their zero values.
type User struct {
	ID             ID         `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Role           Role       `json:"role"`
	Nickname       string     `json:"nickname,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	Status         UserStatus `json:"status,omitempty"`
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`
	Timestamps
}

// EntityID implements Identifiable.
func (u User) EntityID() ID { return u.ID }

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// CanModerate reports whether the user may perform moderation actions.
func (u User) CanModerate() bool { return u.Role == RoleAdmin || u.Role == RoleModerator }

// UserDetail is the admin user-detail shape, with activity counters.
type UserDetail struct {
	User
	PostCount    int        `json:"post_count"`
	CommentCount int        `json:"comment_count"`
	LikeCount    int        `json:"like_count"`
	DislikeCount int        `json:"dislike_count"`
	LastActive   *time.Time `json:"last_active,omitempty"`
}

// RestrictionHistory is one entry of a user's suspension record.
type RestrictionHistory struct {
	ID             ID         `json:"id"`
	UserID         ID         `json:"user_id"`
	Type           string     `json:"type"` // "suspend" or "unsuspend"
	Reason         string     `json:"reason"`
	Duration       *int       `json:"duration,omitempty"`
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`
	CreatedBy      ID         `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ActivityLog is one entry of a user's activity trail.
type ActivityLog struct {
	ID         ID        `json:"id"`
	UserID     ID        `json:"user_id"`
	ActionType string    `json:"action_type"`
	TargetID   *ID       `json:"target_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

package adminuser

import (
	"time"

	"github.com/simp-lee/forumclient/internal/domain"
)

// SuspendRequest is the body of the suspend endpoint. SuspendedUntil is
// always serialized; null means a permanent suspension. The reason is
// required even though the backend would accept an empty one.
type SuspendRequest struct {
	SuspendedUntil *time.Time `json:"suspended_until"`
	Reason         string     `json:"reason" validate:"required,max=500"`
}

// UpdateRoleRequest is the body of the role change endpoint.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role" validate:"required,oneof=user moderator admin"`
}

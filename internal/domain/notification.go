package domain

// NotificationType distinguishes what triggered a notification.
type NotificationType string

const (
	NotificationReportStatus NotificationType = "report_status"
	NotificationAdminMessage NotificationType = "admin_message"
)

// Notification is an in-app message delivered to a user, either a status
// change on one of their reports or a direct message from an admin.
type Notification struct {
	ID        ID               `json:"id"`
	UserID    ID               `json:"user_id"`
	Type      NotificationType `json:"type"`
	Content   string           `json:"content"`
	IsRead    bool             `json:"is_read"`
	RelatedID *ID              `json:"related_id,omitempty"`
	Timestamps
}

// EntityID implements Identifiable.
func (n Notification) EntityID() ID { return n.ID }

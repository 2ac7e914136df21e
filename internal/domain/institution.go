package domain

// Institution is an organization posts can be attributed to.
type Institution struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Timestamps
}

// EntityID implements Identifiable.
func (i Institution) EntityID() ID { return i.ID }

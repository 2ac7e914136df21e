package institution

// AddInstitutionRequest represents the input for registering an institution.
type AddInstitutionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// UpdateInstitutionRequest represents the input for editing an institution.
type UpdateInstitutionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

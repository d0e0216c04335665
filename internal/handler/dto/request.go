package dto

// CreateUserRequest represents the request body for POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Token string `json:"token"`
}

// UpdateUserRequest represents the request body for PATCH /users/:id.
// Fields left out are not changed.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

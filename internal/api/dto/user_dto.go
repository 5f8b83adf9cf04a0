package dto

import "time"

// CreateUserRequest payload for new users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse represents a user with its complaints.
type UserResponse struct {
	ID         int64               `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
	Complaints []ComplaintResponse `json:"complaints"`
}

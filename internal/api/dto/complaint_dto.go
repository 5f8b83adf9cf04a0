package dto

import "time"

// CreateComplaintRequest payload.
type CreateComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      int64  `json:"userId"`
}

// UpdateComplaintRequest payload for PATCH /complaints/:id.
type UpdateComplaintRequest struct {
	Status string `json:"status"`
}

// UserRefResponse is the user embedded in complaint reads.
type UserRefResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ComplaintResponse represents a complaint.
type ComplaintResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	UserID      int64            `json:"userId"`
	User        *UserRefResponse `json:"user,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

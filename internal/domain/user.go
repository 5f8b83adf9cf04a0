package domain

import "time"

// User is the domain model for people who submit complaints.
type User struct {
	ID         int64
	Name       string
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Complaints []Complaint
}

package domain

import (
	"fmt"
	"time"
)

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

// ParseComplaintStatus validates a status supplied by a client.
func ParseComplaintStatus(value string) (ComplaintStatus, error) {
	switch s := ComplaintStatus(value); s {
	case ComplaintStatusOpen, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusClosed:
		return s, nil
	default:
		return "", fmt.Errorf("unknown complaint status %q", value)
	}
}

// Valid reports whether s is a known status.
func (s ComplaintStatus) Valid() bool {
	_, err := ParseComplaintStatus(string(s))
	return err == nil
}

// UserRef is the user projection embedded in complaint reads.
type UserRef struct {
	ID    int64
	Name  string
	Email string
}

// Complaint is a user-submitted report.
type Complaint struct {
	ID          int64
	Title       string
	Description string
	Status      ComplaintStatus
	UserID      int64
	User        *UserRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

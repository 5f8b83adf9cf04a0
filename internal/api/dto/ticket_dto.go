package dto

import "time"

// CreateTicketRequest payload. TripDate is YYYY-MM-DD.
type CreateTicketRequest struct {
	TripID        string `json:"tripId"`
	TripDate      string `json:"tripDate"`
	DriverID      int64  `json:"driverId"`
	Reason        string `json:"reason"`
	City          string `json:"city"`
	ServiceType   string `json:"serviceType"`
	CustomerPhone string `json:"customerPhone"`
	AgentName     string `json:"agentName"`
}

// TicketResponse represents a ticket row.
type TicketResponse struct {
	ID            string    `json:"id"`
	ShortID       string    `json:"shortId"`
	TripID        string    `json:"tripId"`
	TripDate      string    `json:"tripDate"`
	DriverID      int64     `json:"driverId"`
	Reason        string    `json:"reason"`
	Priority      int       `json:"priority"`
	BadgeVariant  string    `json:"badgeVariant"`
	City          string    `json:"city"`
	ServiceType   string    `json:"serviceType"`
	CustomerPhone string    `json:"customerPhone"`
	AgentName     string    `json:"agentName"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RangeResponse holds the 1-based bounds shown as "Showing X to Y of N".
type RangeResponse struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// TicketPageResponse is one page of the filtered, sorted ticket list.
type TicketPageResponse struct {
	Items      []TicketResponse `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Total      int              `json:"total"`
	PageSize   int              `json:"pageSize"`
	Range      RangeResponse    `json:"range"`
}

// ReasonCountResponse is one row of the per-reason summary.
type ReasonCountResponse struct {
	Reason       string `json:"reason"`
	Priority     int    `json:"priority"`
	BadgeVariant string `json:"badgeVariant"`
	Count        int    `json:"count"`
}

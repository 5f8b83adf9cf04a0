package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/events"
	"github.com/spec-kit/complaint-desk/internal/repository"
	"github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

// ComplaintService coordinates complaint workflows.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
}

// ComplaintCreateInput describes complaint creation payload.
type ComplaintCreateInput struct {
	Title       string
	Description string
	UserID      int64
}

// NewComplaintService constructs the service.
func NewComplaintService(complaints repository.ComplaintRepository, dispatcher events.Dispatcher) *ComplaintService {
	return &ComplaintService{complaints: complaints, dispatcher: dispatcher}
}

// List returns every complaint with its reporting user.
func (s *ComplaintService) List(ctx context.Context) ([]domain.Complaint, error) {
	complaints, err := s.complaints.List(ctx)
	if err != nil {
		return nil, errorutil.NewOperationError("Failed to fetch complaints", err)
	}
	return complaints, nil
}

// Create stores a new open complaint and returns it with its user attached.
func (s *ComplaintService) Create(ctx context.Context, input ComplaintCreateInput) (*domain.Complaint, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Title == "" {
		return nil, errorutil.NewValidationError("title is required")
	}
	if input.Description == "" {
		return nil, errorutil.NewValidationError("description is required")
	}
	if input.UserID <= 0 {
		return nil, errorutil.NewValidationError("userId is required")
	}

	complaint := &domain.Complaint{
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.ComplaintStatusOpen,
		UserID:      input.UserID,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, errorutil.NewOperationError("Failed to create complaint", err)
	}

	stored, err := s.complaints.GetByID(ctx, complaint.ID)
	if err != nil {
		return nil, errorutil.NewOperationError("Failed to create complaint", err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventComplaintCreated,
		EntityID: strconv.FormatInt(stored.ID, 10),
		Payload: events.ComplaintCreatedPayload{
			UserID: stored.UserID,
			Title:  stored.Title,
		},
	})
	return stored, nil
}

// UpdateStatus moves a complaint to status. Unknown ids yield a not-found error.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) (*domain.Complaint, error) {
	if id <= 0 {
		return nil, errorutil.NewValidationError("invalid complaint id")
	}
	if !status.Valid() {
		return nil, errorutil.NewValidationError("invalid status")
	}

	current, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return nil, errorutil.ForOperation(err, "complaint", "Failed to update complaint")
	}
	if current.Status == status {
		return current, nil
	}

	if err := s.complaints.UpdateStatus(ctx, id, status); err != nil {
		return nil, errorutil.ForOperation(err, "complaint", "Failed to update complaint")
	}
	updated, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return nil, errorutil.ForOperation(err, "complaint", "Failed to update complaint")
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventComplaintStatusChanged,
		EntityID: strconv.FormatInt(id, 10),
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	publish(ctx, s.dispatcher, event)
}

// publish fills in the event envelope. Subscriber failures never fail the
// operation that produced the event.
func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}

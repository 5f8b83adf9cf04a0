package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/events"
	"github.com/spec-kit/complaint-desk/internal/repository"
	"github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

// UserService manages complainants.
type UserService struct {
	users      repository.UserRepository
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
}

// UserCreateInput describes user creation payload.
type UserCreateInput struct {
	Name  string
	Email string
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, complaints repository.ComplaintRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, complaints: complaints, dispatcher: dispatcher}
}

// List returns all users, each carrying its complaints.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, errorutil.NewOperationError("Failed to fetch users", err)
	}
	if len(users) == 0 {
		return users, nil
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	complaints, err := s.complaints.ListByUsers(ctx, ids)
	if err != nil {
		return nil, errorutil.NewOperationError("Failed to fetch users", err)
	}

	byUser := make(map[int64][]domain.Complaint, len(users))
	for _, c := range complaints {
		byUser[c.UserID] = append(byUser[c.UserID], c)
	}
	for i := range users {
		users[i].Complaints = byUser[users[i].ID]
		if users[i].Complaints == nil {
			users[i].Complaints = []domain.Complaint{}
		}
	}
	return users, nil
}

// Create registers a user.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, errorutil.NewValidationError("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, errorutil.NewValidationError("a valid email is required")
	}

	user := &domain.User{Name: name, Email: email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, errorutil.NewOperationError("Failed to create user", err)
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:     events.EventUserCreated,
		EntityID: strconv.FormatInt(user.ID, 10),
		Payload:  events.UserCreatedPayload{Email: user.Email},
	})
	return user, nil
}

package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/events"
)

type mockComplaintRepo struct{ mock.Mock }

func (m *mockComplaintRepo) Create(ctx context.Context, c *domain.Complaint) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockComplaintRepo) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockComplaintRepo) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Complaint)
	return c, args.Error(1)
}

func (m *mockComplaintRepo) List(ctx context.Context) ([]domain.Complaint, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]domain.Complaint)
	return c, args.Error(1)
}

func (m *mockComplaintRepo) ListByUsers(ctx context.Context, ids []int64) ([]domain.Complaint, error) {
	args := m.Called(ctx, ids)
	c, _ := args.Get(0).([]domain.Complaint)
	return c, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).([]domain.User)
	return u, args.Error(1)
}

type mockTicketRepo struct{ mock.Mock }

func (m *mockTicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*domain.Ticket)
	return t, args.Error(1)
}

func (m *mockTicketRepo) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]domain.Ticket)
	return t, args.Error(1)
}

type mockTicketCache struct{ mock.Mock }

func (m *mockTicketCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTicketCache) Get(ctx context.Context, gen int64) ([]domain.Ticket, bool, error) {
	args := m.Called(ctx, gen)
	t, _ := args.Get(0).([]domain.Ticket)
	return t, args.Bool(1), args.Error(2)
}

func (m *mockTicketCache) Set(ctx context.Context, gen int64, tickets []domain.Ticket) error {
	return m.Called(ctx, gen, tickets).Error(0)
}

func (m *mockTicketCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event(nil), d.events...)
}

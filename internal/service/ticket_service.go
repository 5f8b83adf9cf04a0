package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/cache"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/events"
	"github.com/spec-kit/complaint-desk/internal/repository"
	"github.com/spec-kit/complaint-desk/internal/ticketlist"
	"github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows. Listing, export and summaries
// all run the ticket list engine over the full collection.
type TicketService struct {
	tickets    repository.TicketRepository
	cache      cache.TicketCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Cache      cache.TicketCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	TripID        string
	TripDate      time.Time
	DriverID      int64
	Reason        domain.TicketReason
	City          string
	ServiceType   string
	CustomerPhone string
	AgentName     string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	s := &TicketService{
		tickets:    deps.TicketRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Clock,
	}
	if s.cache == nil {
		s.cache = cache.NewTicketCache(nil, 0)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// CreateTicket records a new ticket. Id and creation time are assigned here.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.TripID) == "" {
		return nil, errorutil.NewValidationError("tripId is required")
	}
	if input.TripDate.IsZero() {
		return nil, errorutil.NewValidationError("tripDate is required")
	}
	if input.DriverID <= 0 {
		return nil, errorutil.NewValidationError("driverId must be positive")
	}
	if !input.Reason.Valid() {
		return nil, errorutil.NewValidationError("invalid reason")
	}

	ticket := &domain.Ticket{
		ID:            uuid.NewString(),
		TripID:        strings.TrimSpace(input.TripID),
		TripDate:      ticketlist.StartOfDay(input.TripDate),
		DriverID:      input.DriverID,
		Reason:        input.Reason,
		City:          input.City,
		ServiceType:   input.ServiceType,
		CustomerPhone: input.CustomerPhone,
		AgentName:     input.AgentName,
		CreatedAt:     s.now(),
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, errorutil.NewOperationError("Failed to create ticket", err)
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("ticket cache invalidation failed", zap.Error(err))
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:      events.EventTicketCreated,
		EntityID:  ticket.ID,
		Timestamp: ticket.CreatedAt,
		Payload: events.TicketCreatedPayload{
			TripID:   ticket.TripID,
			DriverID: ticket.DriverID,
			Reason:   ticket.Reason,
			Priority: ticket.Reason.Priority(),
		},
	})
	return ticket, nil
}

// List renders the page the view points at.
func (s *TicketService) List(ctx context.Context, view ticketlist.View) (ticketlist.Page, error) {
	tickets, err := s.all(ctx)
	if err != nil {
		return ticketlist.Page{}, err
	}
	return view.Render(tickets), nil
}

// Export builds the CSV download for every ticket matching q. ok is false
// when nothing matches.
func (s *TicketService) Export(ctx context.Context, q ticketlist.Query) (ticketlist.Export, bool, error) {
	tickets, err := s.all(ctx)
	if err != nil {
		return ticketlist.Export{}, false, err
	}
	export, ok := ticketlist.ExportCSV(ticketlist.Apply(tickets, q), q, s.now())
	return export, ok, nil
}

// Summary counts tickets per reason in priority order.
func (s *TicketService) Summary(ctx context.Context) ([]ticketlist.ReasonCount, error) {
	tickets, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return ticketlist.Summarize(tickets), nil
}

// all loads the full collection, preferring the cache. Cache failures only
// degrade to a database read. The generation is read before the database so
// a snapshot taken before a concurrent create lands under a stale key.
func (s *TicketService) all(ctx context.Context) ([]domain.Ticket, error) {
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("ticket cache generation read failed", zap.Error(err))
		return s.load(ctx)
	}

	tickets, ok, err := s.cache.Get(ctx, gen)
	if err != nil {
		s.logger.Warn("ticket cache read failed", zap.Error(err))
	}
	if ok {
		return tickets, nil
	}

	tickets, err = s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, gen, tickets); err != nil {
		s.logger.Warn("ticket cache write failed", zap.Error(err))
	}
	return tickets, nil
}

func (s *TicketService) load(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, errorutil.NewOperationError("Failed to fetch tickets", err)
	}
	return tickets, nil
}

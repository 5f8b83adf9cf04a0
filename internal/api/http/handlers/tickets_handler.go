package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-desk/internal/api/dto"
	"github.com/spec-kit/complaint-desk/internal/domain"
	"github.com/spec-kit/complaint-desk/internal/observability"
	"github.com/spec-kit/complaint-desk/internal/service"
	"github.com/spec-kit/complaint-desk/internal/ticketlist"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

// TicketService is the ticket workflow the handler drives.
type TicketService interface {
	CreateTicket(ctx context.Context, input service.TicketCreateInput) (*domain.Ticket, error)
	List(ctx context.Context, view ticketlist.View) (ticketlist.Page, error)
	Export(ctx context.Context, q ticketlist.Query) (ticketlist.Export, bool, error)
	Summary(ctx context.Context) ([]ticketlist.ReasonCount, error)
}

// TicketsHandler serves /api/tickets.
type TicketsHandler struct {
	service TicketService
	metrics *observability.Metrics
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService TicketService, metrics *observability.Metrics) *TicketsHandler {
	return &TicketsHandler{service: ticketService, metrics: metrics}
}

// ListTickets GET /api/tickets?reason=&from=&to=&page=.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	q, err := parseTicketQuery(c)
	if err != nil {
		return err
	}
	view := ticketlist.NewView().
		WithReason(q.Reason).
		WithFrom(q.From).
		WithTo(q.To).
		WithPage(c.QueryInt("page", 1))

	page, err := h.service.List(c.UserContext(), view)
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ticketResponse(&page.Items[i]))
	}
	first, last := page.Range()
	return c.JSON(dto.TicketPageResponse{
		Items:      items,
		Page:       page.Number,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		PageSize:   ticketlist.PageSize,
		Range:      dto.RangeResponse{From: first, To: last},
	})
}

// ExportTickets GET /api/tickets/export. Responds 204 when nothing matches.
func (h *TicketsHandler) ExportTickets(c *fiber.Ctx) error {
	q, err := parseTicketQuery(c)
	if err != nil {
		return err
	}
	export, ok, err := h.service.Export(c.UserContext(), q)
	if err != nil {
		return err
	}
	if !ok {
		return c.SendStatus(http.StatusNoContent)
	}
	h.metrics.RecordExport()

	c.Attachment(export.Filename)
	c.Set(fiber.HeaderContentType, export.ContentType)
	return c.Send(export.Body)
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	reason, err := domain.ParseTicketReason(req.Reason)
	if err != nil {
		return apperrors.NewValidationError("invalid reason")
	}
	var tripDate time.Time
	if strings.TrimSpace(req.TripDate) != "" {
		tripDate, err = time.Parse(dateLayout, strings.TrimSpace(req.TripDate))
		if err != nil {
			return apperrors.NewValidationError("invalid tripDate; expected YYYY-MM-DD")
		}
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		TripID:        req.TripID,
		TripDate:      tripDate,
		DriverID:      req.DriverID,
		Reason:        reason,
		City:          req.City,
		ServiceType:   req.ServiceType,
		CustomerPhone: req.CustomerPhone,
		AgentName:     req.AgentName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(ticketResponse(ticket))
}

// TicketSummary GET /api/tickets/summary.
func (h *TicketsHandler) TicketSummary(c *fiber.Ctx) error {
	counts, err := h.service.Summary(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ReasonCountResponse, 0, len(counts))
	for _, rc := range counts {
		items = append(items, dto.ReasonCountResponse{
			Reason:       string(rc.Reason),
			Priority:     rc.Priority,
			BadgeVariant: rc.Variant,
			Count:        rc.Count,
		})
	}
	return c.JSON(items)
}

// parseTicketQuery reads reason, from and to. Dates are calendar days in UTC,
// matching how trip dates are stored.
func parseTicketQuery(c *fiber.Ctx) (ticketlist.Query, error) {
	reason, err := ticketlist.ParseReasonFilter(c.Query("reason"))
	if err != nil {
		return ticketlist.Query{}, apperrors.NewValidationError("invalid reason")
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return ticketlist.Query{}, err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return ticketlist.Query{}, err
	}
	return ticketlist.Query{Reason: reason, From: from, To: to}, nil
}

func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid " + key + " date; expected YYYY-MM-DD")
	}
	return &t, nil
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:            ticket.ID,
		ShortID:       ticketlist.ShortID(ticket.ID),
		TripID:        ticket.TripID,
		TripDate:      ticket.TripDate.Format(dateLayout),
		DriverID:      ticket.DriverID,
		Reason:        string(ticket.Reason),
		Priority:      ticket.Reason.Priority(),
		BadgeVariant:  ticket.Reason.BadgeVariant(),
		City:          ticket.City,
		ServiceType:   ticket.ServiceType,
		CustomerPhone: ticket.CustomerPhone,
		AgentName:     ticket.AgentName,
		CreatedAt:     ticket.CreatedAt,
	}
}

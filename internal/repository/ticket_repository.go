package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Tickets are append-only.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, trip_id, trip_date, driver_id, reason, city, service_type,
               customer_phone, agent_name, created_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	const query = `
        INSERT INTO tickets (id, trip_id, trip_date, driver_id, reason, city, service_type,
                             customer_phone, agent_name, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.TripID,
		ticket.TripDate,
		ticket.DriverID,
		ticket.Reason,
		ticket.City,
		ticket.ServiceType,
		ticket.CustomerPhone,
		ticket.AgentName,
		ticket.CreatedAt,
	)
	return err
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	return scanTicket(r.pool.QueryRow(ctx, query, id))
}

// ListAll loads the whole collection; ordering and filtering happen in memory.
func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	query := `SELECT ` + ticketColumns + ` FROM tickets`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.TripID,
		&ticket.TripDate,
		&ticket.DriverID,
		&ticket.Reason,
		&ticket.City,
		&ticket.ServiceType,
		&ticket.CustomerPhone,
		&ticket.AgentName,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

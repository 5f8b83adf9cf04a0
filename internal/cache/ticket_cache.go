package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

const (
	generationKey  = "complaint-desk:tickets:generation"
	snapshotPrefix = "complaint-desk:tickets:all:"
)

// TicketCache keeps a snapshot of the full ticket collection so list and
// export requests do not reload it from Postgres every time.
//
// Snapshots are stored per generation. Readers fetch the generation before
// loading from the database and write under it; Invalidate moves the
// generation forward, so a snapshot loaded before a write can never be
// served after it.
type TicketCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64) ([]domain.Ticket, bool, error)
	Set(ctx context.Context, gen int64, tickets []domain.Ticket) error
	Invalidate(ctx context.Context) error
}

type cachedTicket struct {
	ID            string              `json:"id"`
	TripID        string              `json:"trip_id"`
	TripDate      time.Time           `json:"trip_date"`
	DriverID      int64               `json:"driver_id"`
	Reason        domain.TicketReason `json:"reason"`
	City          string              `json:"city"`
	ServiceType   string              `json:"service_type"`
	CustomerPhone string              `json:"customer_phone"`
	AgentName     string              `json:"agent_name"`
	CreatedAt     time.Time           `json:"created_at"`
}

type redisTicketCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTicketCache returns a Redis-backed cache, or a no-op cache when client is nil.
func NewTicketCache(client *redis.Client, ttl time.Duration) TicketCache {
	if client == nil || ttl <= 0 {
		return noopCache{}
	}
	return &redisTicketCache{client: client, ttl: ttl}
}

func snapshotKey(gen int64) string {
	return snapshotPrefix + strconv.FormatInt(gen, 10)
}

// Generation returns the current generation. A missing counter is generation 0.
func (c *redisTicketCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisTicketCache) Get(ctx context.Context, gen int64) ([]domain.Ticket, bool, error) {
	raw, err := c.client.Get(ctx, snapshotKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var cached []cachedTicket
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, err
	}
	tickets := make([]domain.Ticket, 0, len(cached))
	for _, ct := range cached {
		tickets = append(tickets, domain.Ticket(ct))
	}
	return tickets, true, nil
}

func (c *redisTicketCache) Set(ctx context.Context, gen int64, tickets []domain.Ticket) error {
	cached := make([]cachedTicket, 0, len(tickets))
	for _, t := range tickets {
		cached = append(cached, cachedTicket(t))
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotKey(gen), raw, c.ttl).Err()
}

// Invalidate bumps the generation. Older snapshots expire on their own TTL.
func (c *redisTicketCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

type noopCache struct{}

func (noopCache) Generation(context.Context) (int64, error)                 { return 0, nil }
func (noopCache) Get(context.Context, int64) ([]domain.Ticket, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, int64, []domain.Ticket) error         { return nil }
func (noopCache) Invalidate(context.Context) error                          { return nil }

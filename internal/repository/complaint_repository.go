package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-desk/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) error
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	List(ctx context.Context) ([]domain.Complaint, error)
	ListByUsers(ctx context.Context, userIDs []int64) ([]domain.Complaint, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository returns a Postgres-backed implementation.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `c.id, c.title, c.description, c.status, c.user_id, c.created_at, c.updated_at,
               u.id, u.name, u.email`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	const query = `
        INSERT INTO complaints (title, description, status, user_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.Title,
		complaint.Description,
		complaint.Status,
		complaint.UserID,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) error {
	if r.pool == nil {
		return ErrNoDatabase
	}
	const query = `UPDATE complaints SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	query := `SELECT ` + complaintColumns + `
        FROM complaints c JOIN users u ON u.id = c.user_id
        WHERE c.id=$1`
	complaint, err := scanComplaint(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

func (r *complaintRepository) List(ctx context.Context) ([]domain.Complaint, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	query := `SELECT ` + complaintColumns + `
        FROM complaints c JOIN users u ON u.id = c.user_id
        ORDER BY c.id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) ListByUsers(ctx context.Context, userIDs []int64) ([]domain.Complaint, error) {
	if r.pool == nil {
		return nil, ErrNoDatabase
	}
	if len(userIDs) == 0 {
		return []domain.Complaint{}, nil
	}
	query := `SELECT ` + complaintColumns + `
        FROM complaints c JOIN users u ON u.id = c.user_id
        WHERE c.user_id = ANY($1)
        ORDER BY c.id`
	rows, err := r.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func scanComplaint(row pgx.Row) (*domain.Complaint, error) {
	var (
		complaint domain.Complaint
		user      domain.UserRef
	)
	if err := row.Scan(
		&complaint.ID,
		&complaint.Title,
		&complaint.Description,
		&complaint.Status,
		&complaint.UserID,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
		&user.ID,
		&user.Name,
		&user.Email,
	); err != nil {
		return nil, err
	}
	complaint.User = &user
	return &complaint, nil
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	result := []domain.Complaint{}
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *complaint)
	}
	return result, rows.Err()
}

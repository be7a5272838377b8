package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blogem/tenant-admin/models"
)

// RequestRepository is the change request ledger. Requests are append-only:
// once decided they are never modified again, enforced by Decide.
type RequestRepository interface {
	Create(ctx context.Context, req *models.ChangeRequest) error
	GetByID(ctx context.Context, id string) (*models.ChangeRequest, error)
	// ListPending returns pending requests, restricted to products of the
	// given tenant. An empty tenant returns pending requests of all tenants,
	// including requests whose target product no longer exists.
	ListPending(ctx context.Context, tenant string) ([]models.ChangeRequest, error)
	CountPending(ctx context.Context, tenant string) (int, error)
	// Decide transitions a pending request to its terminal status in a single
	// conditional update. Returns ErrAlreadyDecided if the request exists but
	// is no longer pending, ErrNotFound if it does not exist.
	Decide(ctx context.Context, id string, status models.RequestStatus, notes, decidedBy string, decidedAt time.Time) error
}

// requestRepository implements RequestRepository interface
type requestRepository struct {
	db *sql.DB
}

// NewRequestRepository creates a new change request repository
func NewRequestRepository(db *sql.DB) RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `request_id, product_id, request_type, old_data, new_data,
	requested_by, status, review_notes, decided_by, submitted_at, decided_at`

// Create appends a new pending change request to the ledger
func (r *requestRepository) Create(ctx context.Context, req *models.ChangeRequest) error {
	query := `
		INSERT INTO change_requests
			(request_id, product_id, request_type, old_data, new_data,
			 requested_by, status, review_notes, decided_by, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, '', '', ?)
	`

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = time.Now()
	}
	req.Status = models.StatusPending

	oldData, err := json.Marshal(req.OldData)
	if err != nil {
		return fmt.Errorf("failed to encode old data: %w", err)
	}

	newData := []byte("")
	if req.NewData != nil {
		newData, err = json.Marshal(req.NewData)
		if err != nil {
			return fmt.Errorf("failed to encode new data: %w", err)
		}
	}

	_, err = r.db.ExecContext(ctx, query,
		req.RequestID,
		req.ProductID,
		req.Type,
		string(oldData),
		string(newData),
		req.RequestedBy,
		req.Status,
		req.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create change request: %w", err)
	}

	return nil
}

// GetByID retrieves a change request by ID
func (r *requestRepository) GetByID(ctx context.Context, id string) (*models.ChangeRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM change_requests WHERE request_id = ?`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get change request: %w", err)
	}
	defer rows.Close()

	requests, err := scanRequests(rows)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("change request with ID %s: %w", id, ErrNotFound)
	}

	return &requests[0], nil
}

// ListPending returns pending requests visible to the given tenant filter
func (r *requestRepository) ListPending(ctx context.Context, tenant string) ([]models.ChangeRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM change_requests WHERE status = ? ORDER BY submitted_at ASC`
	args := []interface{}{models.StatusPending}

	if tenant != "" {
		// Tenant admins only see requests whose target product still exists
		// in their tenant.
		query = `
			SELECT ` + requestColumnsPrefixed + `
			FROM change_requests r
			JOIN products p ON p.id = r.product_id
			WHERE r.status = ? AND p.tenant = ?
			ORDER BY r.submitted_at ASC
		`
		args = append(args, tenant)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending requests: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

const requestColumnsPrefixed = `r.request_id, r.product_id, r.request_type, r.old_data, r.new_data,
	r.requested_by, r.status, r.review_notes, r.decided_by, r.submitted_at, r.decided_at`

// CountPending returns the number of pending requests for the tenant filter
func (r *requestRepository) CountPending(ctx context.Context, tenant string) (int, error) {
	query := `SELECT COUNT(*) FROM change_requests WHERE status = ?`
	args := []interface{}{models.StatusPending}

	if tenant != "" {
		query = `
			SELECT COUNT(*)
			FROM change_requests r
			JOIN products p ON p.id = r.product_id
			WHERE r.status = ? AND p.tenant = ?
		`
		args = append(args, tenant)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}

	return count, nil
}

// Decide atomically transitions a pending request to approved or rejected.
// The status guard in the WHERE clause is the critical section: when two
// reviewers race on the same request, exactly one update takes effect.
func (r *requestRepository) Decide(ctx context.Context, id string, status models.RequestStatus, notes, decidedBy string, decidedAt time.Time) error {
	query := `
		UPDATE change_requests
		SET status = ?, review_notes = ?, decided_by = ?, decided_at = ?
		WHERE request_id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, notes, decidedBy, decidedAt, id, models.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to decide change request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Distinguish a decided request from a missing one.
		var existing string
		err := r.db.QueryRowContext(ctx, `SELECT status FROM change_requests WHERE request_id = ?`, id).Scan(&existing)
		if err == sql.ErrNoRows {
			return fmt.Errorf("change request with ID %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check change request status: %w", err)
		}
		return fmt.Errorf("change request %s is %s: %w", id, existing, ErrAlreadyDecided)
	}

	return nil
}

// scanRequests reads change request rows into a slice, decoding snapshots
func scanRequests(rows *sql.Rows) ([]models.ChangeRequest, error) {
	var requests []models.ChangeRequest
	for rows.Next() {
		var req models.ChangeRequest
		var oldData, newData string
		var decidedAt sql.NullTime

		err := rows.Scan(
			&req.RequestID,
			&req.ProductID,
			&req.Type,
			&oldData,
			&newData,
			&req.RequestedBy,
			&req.Status,
			&req.ReviewNotes,
			&req.DecidedBy,
			&req.SubmittedAt,
			&decidedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change request: %w", err)
		}

		if err := json.Unmarshal([]byte(oldData), &req.OldData); err != nil {
			return nil, fmt.Errorf("failed to decode old data for request %s: %w", req.RequestID, err)
		}
		if newData != "" {
			req.NewData = &models.Product{}
			if err := json.Unmarshal([]byte(newData), req.NewData); err != nil {
				return nil, fmt.Errorf("failed to decode new data for request %s: %w", req.RequestID, err)
			}
		}
		if decidedAt.Valid {
			req.DecidedAt = &decidedAt.Time
		}

		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change requests: %w", err)
	}

	return requests, nil
}

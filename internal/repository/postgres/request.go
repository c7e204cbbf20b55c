package postgres

import (
	"context"
	"database/sql"
	"time"

	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, item_id, item_name, user_id, user_name, quantity, status, COALESCE(notes, ''), return_date, actual_return_date, created_on, updated_on`

func (r *requestRepository) Create(ctx context.Context, req *domain.LoanRequest) error {
	query := `INSERT INTO requests (item_id, item_name, user_id, user_name, quantity, status, notes, return_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_on`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, req.ItemID, req.ItemName, req.UserID, req.UserName, req.Quantity, req.Status, req.Notes, req.ReturnDate, now, now).Scan(&req.ID, &req.CreatedOn)
}

// CreateApproved reserves stock and inserts the request atomically, so an
// auto-approved request can never exist without its stock impact (and vice
// versa).
func (r *requestRepository) CreateApproved(ctx context.Context, req *domain.LoanRequest, enforceBounds bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := adjustStock(ctx, tx, req.ItemID, -req.Quantity, enforceBounds); err != nil {
		return err
	}

	query := `INSERT INTO requests (item_id, item_name, user_id, user_name, quantity, status, notes, return_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_on`
	now := time.Now()
	err = tx.QueryRowContext(ctx, query, req.ItemID, req.ItemName, req.UserID, req.UserName, req.Quantity, req.Status, req.Notes, req.ReturnDate, now, now).Scan(&req.ID, &req.CreatedOn)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *requestRepository) GetByID(ctx context.Context, id int32) (*domain.LoanRequest, error) {
	req := &domain.LoanRequest{}
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.ItemID, &req.ItemName, &req.UserID, &req.UserName, &req.Quantity, &req.Status, &req.Notes, &req.ReturnDate, &req.ActualReturnDate, &req.CreatedOn, &req.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) List(ctx context.Context) ([]domain.LoanRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests ORDER BY created_on DESC, id DESC`
	return r.queryRequests(ctx, query)
}

func (r *requestRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.LoanRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE status = $1 AND return_date IS NOT NULL AND return_date < $2 ORDER BY return_date`
	return r.queryRequests(ctx, query, domain.RequestStatusApproved, asOf)
}

func (r *requestRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]domain.LoanRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.LoanRequest
	for rows.Next() {
		var req domain.LoanRequest
		if err := rows.Scan(&req.ID, &req.ItemID, &req.ItemName, &req.UserID, &req.UserName, &req.Quantity, &req.Status, &req.Notes, &req.ReturnDate, &req.ActualReturnDate, &req.CreatedOn, &req.UpdatedOn); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// UpdateStatusWithStock writes the status transition and its stock delta in
// one transaction. The status write is a compare-and-swap against the
// expected previous status: a miss means the snapshot the transition was
// computed from is stale, and nothing is applied.
func (r *requestRepository) UpdateStatusWithStock(ctx context.Context, reqID int32, from, to domain.RequestStatus, itemID, stockDelta int32, enforceBounds bool, actualReturn *time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE requests SET status = $1, actual_return_date = COALESCE($2, actual_return_date), updated_on = $3 WHERE id = $4 AND status = $5`,
		to, actualReturn, time.Now(), reqID, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrStatusConflict
	}

	if stockDelta != 0 {
		if err := adjustStock(ctx, tx, itemID, stockDelta, enforceBounds); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *requestRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM requests`)
	return err
}

// adjustStock applies a delta to an item's available count inside tx. Bounds
// enforcement only guards decrements: a return must always succeed even if an
// admin lowered the item's quantity while units were out.
func adjustStock(ctx context.Context, tx *sql.Tx, itemID, delta int32, enforceBounds bool) error {
	query := `UPDATE items SET available = available + $1, updated_on = $2 WHERE id = $3`
	if enforceBounds && delta < 0 {
		query += ` AND available + $1 >= 0`
	}
	res, err := tx.ExecContext(ctx, query, delta, time.Now(), itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if enforceBounds && delta < 0 {
			return repository.ErrInsufficientStock
		}
		return sql.ErrNoRows
	}
	return nil
}

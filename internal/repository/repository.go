package repository

import (
	"context"
	"errors"
	"time"

	"civdef-inventory-backend/internal/domain"
)

var (
	// ErrStatusConflict means the request's live status no longer matches the
	// status the transition was computed from. The caller's snapshot is stale
	// (or the same transition was already applied); no stock delta was written.
	ErrStatusConflict = errors.New("request status changed concurrently")

	// ErrInsufficientStock means a stock reservation would push the item's
	// available count below zero while bounds enforcement is on. The whole
	// transaction, including the status write, was rolled back.
	ErrInsufficientStock = errors.New("insufficient stock for reservation")
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	ListOutOfStock(ctx context.Context) ([]domain.Item, error)

	// Observations (server-side append/remove; see item_observations table)
	CreateObservation(ctx context.Context, obs *domain.Observation) error
	ListObservations(ctx context.Context, itemID int32) ([]domain.Observation, error)
	DeleteObservation(ctx context.Context, itemID, obsID int32) error
}

type RequestRepository interface {
	// Create inserts a PENDING request. No stock is touched.
	Create(ctx context.Context, req *domain.LoanRequest) error

	// CreateApproved inserts an APPROVED request and reserves stock in the
	// same transaction. With enforceBounds set, the reservation fails with
	// ErrInsufficientStock instead of pushing available below zero.
	CreateApproved(ctx context.Context, req *domain.LoanRequest, enforceBounds bool) error

	GetByID(ctx context.Context, id int32) (*domain.LoanRequest, error)
	List(ctx context.Context) ([]domain.LoanRequest, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.LoanRequest, error)

	// UpdateStatusWithStock performs the status write as a compare-and-swap
	// against the expected previous status and applies stockDelta to the
	// item's available count in the same transaction. A CAS miss returns
	// ErrStatusConflict with nothing written, which also makes replays of an
	// already-applied transition no-ops.
	UpdateStatusWithStock(ctx context.Context, reqID int32, from, to domain.RequestStatus, itemID, stockDelta int32, enforceBounds bool, actualReturn *time.Time) error

	// DeleteAll clears the entire request history. Stock is deliberately not
	// reconciled; applied reservations stay in place.
	DeleteAll(ctx context.Context) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	Delete(ctx context.Context, id int32) error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/logger"
	"civdef-inventory-backend/internal/repository"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidTransition = errors.New("status transition is not allowed")
	ErrUnknownRole       = errors.New("unknown requester role")
	ErrNotAuthorized     = errors.New("not authorized for this operation")
)

type requestService struct {
	requestRepo   repository.RequestRepository
	itemRepo      repository.ItemRepository
	userRepo      repository.UserRepository
	emailSvc      EmailService
	enforceBounds bool
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	enforceBounds bool,
) RequestService {
	return &requestService{
		requestRepo:   requestRepo,
		itemRepo:      itemRepo,
		userRepo:      userRepo,
		emailSvc:      emailSvc,
		enforceBounds: enforceBounds,
	}
}

// initialStatus maps the creating actor's role to the request's starting
// status. Supervisors reserve stock at creation time; everyone else, admins
// included, waits for approval.
func initialStatus(role domain.Role) (domain.RequestStatus, error) {
	switch role {
	case domain.RoleSupervisor:
		return domain.RequestStatusApproved, nil
	case domain.RoleAdmin, domain.RoleUser:
		return domain.RequestStatusPending, nil
	default:
		return "", ErrUnknownRole
	}
}

// stockDelta returns the change to the item's available count caused by a
// transition. Only three edges move stock; everything else is a no-op.
func stockDelta(from, to domain.RequestStatus, quantity int32) int32 {
	switch {
	case from == domain.RequestStatusPending && to == domain.RequestStatusApproved:
		return -quantity
	case from == domain.RequestStatusApproved && to == domain.RequestStatusReturned:
		return quantity
	case from == domain.RequestStatusApproved && to == domain.RequestStatusRejected:
		return quantity
	}
	return 0
}

func allowedTransition(from, to domain.RequestStatus) bool {
	switch from {
	case domain.RequestStatusPending:
		return to == domain.RequestStatusApproved || to == domain.RequestStatusRejected
	case domain.RequestStatusApproved:
		return to == domain.RequestStatusReturned || to == domain.RequestStatusRejected
	case domain.RequestStatusRejected, domain.RequestStatusReturned:
		// Terminal states.
		return false
	}
	return false
}

func (s *requestService) CreateRequest(ctx context.Context, actor domain.Actor, itemID, quantity int32, returnDate *time.Time, notes, requesterName string) (*domain.LoanRequest, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	status, err := initialStatus(actor.Role)
	if err != nil {
		return nil, err
	}

	// Admins may file a request on behalf of someone else by overriding the
	// display name. The user id still points at the admin.
	name := actor.Name
	if actor.Role == domain.RoleAdmin && requesterName != "" {
		name = requesterName
	}

	req := &domain.LoanRequest{
		ItemID:     item.ID,
		ItemName:   item.Name,
		UserID:     actor.ID,
		UserName:   name,
		Quantity:   quantity,
		Status:     status,
		Notes:      notes,
		ReturnDate: returnDate,
	}

	if status == domain.RequestStatusApproved {
		if err := s.requestRepo.CreateApproved(ctx, req, s.enforceBounds); err != nil {
			return nil, err
		}
	} else {
		if err := s.requestRepo.Create(ctx, req); err != nil {
			return nil, err
		}
		s.notifyAdmins(ctx, req)
	}

	return req, nil
}

func (s *requestService) UpdateRequestStatus(ctx context.Context, actor domain.Actor, requestID int32, newStatus domain.RequestStatus) (*domain.LoanRequest, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrNotAuthorized
	}
	if !newStatus.Valid() {
		return nil, ErrInvalidTransition
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if !allowedTransition(req.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	var actualReturn *time.Time
	if newStatus == domain.RequestStatusReturned {
		now := time.Now()
		actualReturn = &now
	}

	delta := stockDelta(req.Status, newStatus, req.Quantity)
	err = s.requestRepo.UpdateStatusWithStock(ctx, req.ID, req.Status, newStatus, req.ItemID, delta, s.enforceBounds, actualReturn)
	if err != nil {
		return nil, err
	}

	prev := req.Status
	req.Status = newStatus
	req.ActualReturnDate = actualReturn
	s.notifyRequester(ctx, req, prev)

	return req, nil
}

func (s *requestService) ListRequests(ctx context.Context) ([]domain.LoanRequest, error) {
	reqs, err := s.requestRepo.List(ctx)
	if err != nil {
		// Read failures degrade to an empty list; callers render nothing
		// rather than an error page.
		logger.Error("Failed to list requests", "error", err)
		return []domain.LoanRequest{}, nil
	}
	return reqs, nil
}

// ClearAllRequests wipes the entire history. Stock already reserved by
// APPROVED requests is left as-is, permanently unlinked from any record.
func (s *requestService) ClearAllRequests(ctx context.Context, actor domain.Actor) error {
	if actor.Role != domain.RoleAdmin {
		return ErrNotAuthorized
	}
	return s.requestRepo.DeleteAll(ctx)
}

func (s *requestService) notifyAdmins(ctx context.Context, req *domain.LoanRequest) {
	admins, err := s.userRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		logger.Warn("Failed to list admins for notification", "error", err)
		return
	}
	for _, admin := range admins {
		_ = s.emailSvc.SendRequestSubmittedNotification(ctx, admin.Email, req.UserName, req.ItemName, req.Quantity)
	}
}

func (s *requestService) notifyRequester(ctx context.Context, req *domain.LoanRequest, prev domain.RequestStatus) {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		logger.Warn("Failed to look up requester for notification", "request_id", req.ID, "error", err)
		return
	}

	switch req.Status {
	case domain.RequestStatusApproved:
		_ = s.emailSvc.SendRequestApprovedNotification(ctx, user.Email, req.ItemName, req.Quantity)
	case domain.RequestStatusRejected:
		if prev == domain.RequestStatusPending {
			_ = s.emailSvc.SendRequestRejectedNotification(ctx, user.Email, req.ItemName, req.Quantity)
		}
	}
}

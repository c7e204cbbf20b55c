package service

import (
	"context"
	"time"

	"civdef-inventory-backend/internal/domain"
)

type InventoryService interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id int32) (*domain.Item, error)
	CreateItem(ctx context.Context, item *domain.Item) error
	UpdateItem(ctx context.Context, item *domain.Item) error
	AddObservation(ctx context.Context, actor domain.Actor, itemID int32, obs *domain.Observation) error
	DeleteObservation(ctx context.Context, actor domain.Actor, itemID, obsID int32) error
}

type RequestService interface {
	CreateRequest(ctx context.Context, actor domain.Actor, itemID, quantity int32, returnDate *time.Time, notes, requesterName string) (*domain.LoanRequest, error)
	UpdateRequestStatus(ctx context.Context, actor domain.Actor, requestID int32, newStatus domain.RequestStatus) (*domain.LoanRequest, error)
	ListRequests(ctx context.Context) ([]domain.LoanRequest, error)
	ClearAllRequests(ctx context.Context, actor domain.Actor) error
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, actor domain.Actor, email, name, password string, role domain.Role) (*domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Actor, targetID int32) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error) // user, access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type AssistantService interface {
	Answer(ctx context.Context, query string) (string, error)
}

type EmailService interface {
	SendRequestSubmittedNotification(ctx context.Context, adminEmail, requesterName, itemName string, quantity int32) error
	SendRequestApprovedNotification(ctx context.Context, email, itemName string, quantity int32) error
	SendRequestRejectedNotification(ctx context.Context, email, itemName string, quantity int32) error
	SendOverdueReminder(ctx context.Context, email, itemName string, quantity int32, dueDate time.Time) error
	SendLowStockReport(ctx context.Context, adminEmail string, lines []string) error
}

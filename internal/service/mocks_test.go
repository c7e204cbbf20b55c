package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"civdef-inventory-backend/internal/domain"
)

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) List(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) ListOutOfStock(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *MockItemRepo) CreateObservation(ctx context.Context, obs *domain.Observation) error {
	args := m.Called(ctx, obs)
	return args.Error(0)
}
func (m *MockItemRepo) ListObservations(ctx context.Context, itemID int32) ([]domain.Observation, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Observation), args.Error(1)
}
func (m *MockItemRepo) DeleteObservation(ctx context.Context, itemID, obsID int32) error {
	args := m.Called(ctx, itemID, obsID)
	return args.Error(0)
}

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.LoanRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) CreateApproved(ctx context.Context, req *domain.LoanRequest, enforceBounds bool) error {
	args := m.Called(ctx, req, enforceBounds)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int32) (*domain.LoanRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanRequest), args.Error(1)
}
func (m *MockRequestRepo) List(ctx context.Context) ([]domain.LoanRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanRequest), args.Error(1)
}
func (m *MockRequestRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.LoanRequest, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanRequest), args.Error(1)
}
func (m *MockRequestRepo) UpdateStatusWithStock(ctx context.Context, reqID int32, from, to domain.RequestStatus, itemID, stockDelta int32, enforceBounds bool, actualReturn *time.Time) error {
	args := m.Called(ctx, reqID, from, to, itemID, stockDelta, enforceBounds, actualReturn)
	return args.Error(0)
}
func (m *MockRequestRepo) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRequestSubmittedNotification(ctx context.Context, adminEmail, requesterName, itemName string, quantity int32) error {
	args := m.Called(ctx, adminEmail, requesterName, itemName, quantity)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestApprovedNotification(ctx context.Context, email, itemName string, quantity int32) error {
	args := m.Called(ctx, email, itemName, quantity)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestRejectedNotification(ctx context.Context, email, itemName string, quantity int32) error {
	args := m.Called(ctx, email, itemName, quantity)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, email, itemName string, quantity int32, dueDate time.Time) error {
	args := m.Called(ctx, email, itemName, quantity, dueDate)
	return args.Error(0)
}
func (m *MockEmailService) SendLowStockReport(ctx context.Context, adminEmail string, lines []string) error {
	args := m.Called(ctx, adminEmail, lines)
	return args.Error(0)
}

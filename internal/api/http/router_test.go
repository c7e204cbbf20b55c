package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apihttp "civdef-inventory-backend/internal/api/http"
	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/repository"
	"civdef-inventory-backend/internal/security"
	"civdef-inventory-backend/internal/service"
)

type mockInventorySvc struct{ mock.Mock }

func (m *mockInventorySvc) ListItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}
func (m *mockInventorySvc) GetItem(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *mockInventorySvc) CreateItem(ctx context.Context, item *domain.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *mockInventorySvc) UpdateItem(ctx context.Context, item *domain.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *mockInventorySvc) AddObservation(ctx context.Context, actor domain.Actor, itemID int32, obs *domain.Observation) error {
	return m.Called(ctx, actor, itemID, obs).Error(0)
}
func (m *mockInventorySvc) DeleteObservation(ctx context.Context, actor domain.Actor, itemID, obsID int32) error {
	return m.Called(ctx, actor, itemID, obsID).Error(0)
}

type mockRequestSvc struct{ mock.Mock }

func (m *mockRequestSvc) CreateRequest(ctx context.Context, actor domain.Actor, itemID, quantity int32, returnDate *time.Time, notes, requesterName string) (*domain.LoanRequest, error) {
	args := m.Called(ctx, actor, itemID, quantity, returnDate, notes, requesterName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanRequest), args.Error(1)
}
func (m *mockRequestSvc) UpdateRequestStatus(ctx context.Context, actor domain.Actor, requestID int32, newStatus domain.RequestStatus) (*domain.LoanRequest, error) {
	args := m.Called(ctx, actor, requestID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanRequest), args.Error(1)
}
func (m *mockRequestSvc) ListRequests(ctx context.Context) ([]domain.LoanRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanRequest), args.Error(1)
}
func (m *mockRequestSvc) ClearAllRequests(ctx context.Context, actor domain.Actor) error {
	return m.Called(ctx, actor).Error(0)
}

type mockUserSvc struct{ mock.Mock }

func (m *mockUserSvc) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *mockUserSvc) CreateUser(ctx context.Context, actor domain.Actor, email, name, password string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, actor, email, name, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *mockUserSvc) DeleteUser(ctx context.Context, actor domain.Actor, targetID int32) error {
	return m.Called(ctx, actor, targetID).Error(0)
}

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*domain.User), args.String(1), args.String(2), args.Error(3)
}
func (m *mockAuthSvc) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

type mockAssistantSvc struct{ mock.Mock }

func (m *mockAssistantSvc) Answer(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

type routerFixture struct {
	router       http.Handler
	tm           security.TokenManager
	inventorySvc *mockInventorySvc
	requestSvc   *mockRequestSvc
	userSvc      *mockUserSvc
	authSvc      *mockAuthSvc
	assistantSvc *mockAssistantSvc
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	f := &routerFixture{
		tm:           security.NewTokenManager("router-test-secret"),
		inventorySvc: new(mockInventorySvc),
		requestSvc:   new(mockRequestSvc),
		userSvc:      new(mockUserSvc),
		authSvc:      new(mockAuthSvc),
		assistantSvc: new(mockAssistantSvc),
	}
	f.router = apihttp.NewRouter(
		f.tm,
		apihttp.NewAuthHandler(f.authSvc),
		apihttp.NewItemHandler(f.inventorySvc),
		apihttp.NewRequestHandler(f.requestSvc),
		apihttp.NewUserHandler(f.userSvc),
		apihttp.NewAssistantHandler(f.assistantSvc),
	)
	return f
}

func (f *routerFixture) tokenFor(t *testing.T, id int32, name string, role domain.Role) string {
	t.Helper()
	token, err := f.tm.GenerateAccessToken(id, name+"@civdef.local", name, string(role))
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Authentication(t *testing.T) {
	t.Run("NoTokenRejected", func(t *testing.T) {
		f := newRouterFixture(t)
		rec := f.do(t, http.MethodGet, "/api/v1/items", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RefreshTokenNotAcceptedForAPI", func(t *testing.T) {
		f := newRouterFixture(t)
		refresh, err := f.tm.GenerateRefreshToken(8, "marco@civdef.local")
		require.NoError(t, err)

		rec := f.do(t, http.MethodGet, "/api/v1/items", refresh, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidTokenPasses", func(t *testing.T) {
		f := newRouterFixture(t)
		f.inventorySvc.On("ListItems", mock.Anything).Return([]domain.Item{}, nil)

		rec := f.do(t, http.MethodGet, "/api/v1/items", f.tokenFor(t, 8, "marco", domain.RoleUser), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_RoleGating(t *testing.T) {
	t.Run("UserCannotReachAdminRoutes", func(t *testing.T) {
		f := newRouterFixture(t)
		token := f.tokenFor(t, 8, "marco", domain.RoleUser)

		for _, tc := range []struct{ method, path string }{
			{http.MethodPatch, "/api/v1/requests/1/status"},
			{http.MethodDelete, "/api/v1/requests"},
			{http.MethodGet, "/api/v1/users"},
			{http.MethodPost, "/api/v1/items"},
			{http.MethodDelete, "/api/v1/items/1/observations/2"},
		} {
			rec := f.do(t, tc.method, tc.path, token, nil)
			assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", tc.method, tc.path)
		}
	})

	t.Run("SupervisorIsNotAdmin", func(t *testing.T) {
		f := newRouterFixture(t)
		token := f.tokenFor(t, 7, "sofia", domain.RoleSupervisor)

		rec := f.do(t, http.MethodPatch, "/api/v1/requests/1/status", token, map[string]string{"status": "APPROVED"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRouter_CreateRequest(t *testing.T) {
	t.Run("ParsesReturnDate", func(t *testing.T) {
		f := newRouterFixture(t)
		want := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		f.requestSvc.On("CreateRequest", mock.Anything, mock.Anything, int32(2), int32(1), &want, "drill", "").
			Return(&domain.LoanRequest{ID: 1, Status: domain.RequestStatusPending}, nil)

		rec := f.do(t, http.MethodPost, "/api/v1/requests", f.tokenFor(t, 8, "marco", domain.RoleUser), map[string]any{
			"item_id":     2,
			"quantity":    1,
			"notes":       "drill",
			"return_date": "2026-09-15",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
		f.requestSvc.AssertExpectations(t)
	})

	t.Run("RejectsBadReturnDate", func(t *testing.T) {
		f := newRouterFixture(t)

		rec := f.do(t, http.MethodPost, "/api/v1/requests", f.tokenFor(t, 8, "marco", domain.RoleUser), map[string]any{
			"item_id":     2,
			"quantity":    1,
			"return_date": "15/09/2026",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_UpdateStatus(t *testing.T) {
	t.Run("ConflictMapsTo409", func(t *testing.T) {
		f := newRouterFixture(t)
		f.requestSvc.On("UpdateRequestStatus", mock.Anything, mock.Anything, int32(5), domain.RequestStatusApproved).
			Return(nil, repository.ErrStatusConflict)

		rec := f.do(t, http.MethodPatch, "/api/v1/requests/5/status", f.tokenFor(t, 1, "admin", domain.RoleAdmin), map[string]string{"status": "APPROVED"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("InvalidTransitionMapsTo409", func(t *testing.T) {
		f := newRouterFixture(t)
		f.requestSvc.On("UpdateRequestStatus", mock.Anything, mock.Anything, int32(5), domain.RequestStatusReturned).
			Return(nil, service.ErrInvalidTransition)

		rec := f.do(t, http.MethodPatch, "/api/v1/requests/5/status", f.tokenFor(t, 1, "admin", domain.RoleAdmin), map[string]string{"status": "RETURNED"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("NonNumericIDNotRouted", func(t *testing.T) {
		f := newRouterFixture(t)

		rec := f.do(t, http.MethodPatch, "/api/v1/requests/abc/status", f.tokenFor(t, 1, "admin", domain.RoleAdmin), map[string]string{"status": "APPROVED"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_Login(t *testing.T) {
	f := newRouterFixture(t)
	user := &domain.User{ID: 8, Email: "marco@civdef.local", Name: "Marco", Role: domain.RoleUser}
	f.authSvc.On("Login", mock.Anything, "marco@civdef.local", "correct horse").Return(user, "acc", "ref", nil)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "marco@civdef.local",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "acc", resp.AccessToken)
	assert.Equal(t, "ref", resp.RefreshToken)
}

func TestRouter_AssistantQuery(t *testing.T) {
	t.Run("RequiresQuery", func(t *testing.T) {
		f := newRouterFixture(t)

		rec := f.do(t, http.MethodPost, "/api/v1/assistant/query", f.tokenFor(t, 8, "marco", domain.RoleUser), map[string]string{"query": "  "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ReturnsAnswer", func(t *testing.T) {
		f := newRouterFixture(t)
		f.assistantSvc.On("Answer", mock.Anything, "do we have pumps?").Return("Yes, two available.", nil)

		rec := f.do(t, http.MethodPost, "/api/v1/assistant/query", f.tokenFor(t, 8, "marco", domain.RoleUser), map[string]string{"query": "do we have pumps?"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Answer string `json:"answer"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Yes, two available.", resp.Answer)
	})
}

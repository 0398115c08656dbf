package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/weekly-events/api/internal/domain"
	jwtinfra "github.com/weekly-events/api/internal/infrastructure/jwt"
	"github.com/weekly-events/api/internal/transport/http/middleware"
)

type mockEventService struct{ mock.Mock }

func (m *mockEventService) ListUpcoming(ctx context.Context, asOf time.Time) ([]domain.EventWithCount, error) {
	args := m.Called(ctx, asOf)
	if evs, _ := args.Get(0).([]domain.EventWithCount); evs != nil {
		return evs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEventService) Register(ctx context.Context, userID, eventID string) (int, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Int(0), args.Error(1)
}

func authedRequest(method, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, "/", nil)
	} else {
		r = httptest.NewRequest(method, "/", strings.NewReader(body))
	}
	claims := &jwtinfra.Claims{UserID: "u1", Email: "a@b.com"}
	return r.WithContext(context.WithValue(r.Context(), middleware.ClaimsKey, claims))
}

func TestListEvents_Success(t *testing.T) {
	svc := &mockEventService{}
	svc.On("ListUpcoming", mock.Anything, mock.Anything).Return([]domain.EventWithCount{
		{Event: domain.Event{EventID: "e1", Title: "Sunrise Yoga", Capacity: 25}, RegistrationsCount: 3},
	}, nil)

	h := NewEventHandler(svc)
	rr := httptest.NewRecorder()
	h.List(rr, authedRequest(http.MethodGet, ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"registrationsCount":3`)
	assert.Contains(t, rr.Body.String(), "Sunrise Yoga")
}

func TestRegister_NoClaims_Returns401(t *testing.T) {
	h := NewEventHandler(&mockEventService{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"eventId":"e1"}`))
	h.Register(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRegister_MissingEventID_Returns400(t *testing.T) {
	svc := &mockEventService{}
	h := NewEventHandler(svc)
	rr := httptest.NewRecorder()
	h.Register(rr, authedRequest(http.MethodPost, `{}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "eventId is required.")
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_UnknownEvent_Returns404(t *testing.T) {
	svc := &mockEventService{}
	svc.On("Register", mock.Anything, "u1", "missing").Return(0, domain.ErrNotFound)

	h := NewEventHandler(svc)
	rr := httptest.NewRecorder()
	h.Register(rr, authedRequest(http.MethodPost, `{"eventId":"missing"}`))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Event not found.")
}

func TestRegister_FullEvent_Returns400(t *testing.T) {
	svc := &mockEventService{}
	svc.On("Register", mock.Anything, "u1", "e1").Return(0, domain.ErrEventFull)

	h := NewEventHandler(svc)
	rr := httptest.NewRecorder()
	h.Register(rr, authedRequest(http.MethodPost, `{"eventId":"e1"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Event is full.")
}

func TestRegister_Duplicate_Returns409(t *testing.T) {
	svc := &mockEventService{}
	svc.On("Register", mock.Anything, "u1", "e1").Return(0, domain.ErrAlreadyRegistered)

	h := NewEventHandler(svc)
	rr := httptest.NewRecorder()
	h.Register(rr, authedRequest(http.MethodPost, `{"eventId":"e1"}`))

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "Already registered.")
}

func TestRegister_Success(t *testing.T) {
	svc := &mockEventService{}
	svc.On("Register", mock.Anything, "u1", "e1").Return(1, nil)

	h := NewEventHandler(svc)
	rr := httptest.NewRecorder()
	h.Register(rr, authedRequest(http.MethodPost, `{"eventId":"e1"}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"registrationsCount":1}`, rr.Body.String())
}

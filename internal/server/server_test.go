package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/errandly/errand-service/internal/engine"
	"github.com/errandly/errand-service/internal/repository"
	mock_server "github.com/errandly/errand-service/internal/server/mocks"
)

type serverMocks struct {
	lifecycle *mock_server.MockLifecycle
	users     *mock_server.MockUserRepo
}

func newTestServer(t *testing.T) (http.Handler, serverMocks) {
	ctrl := gomock.NewController(t)

	m := serverMocks{
		lifecycle: mock_server.NewMockLifecycle(ctrl),
		users:     mock_server.NewMockUserRepo(ctrl),
	}
	s := New(m.lifecycle, m.users)
	return s.setupRoutes(), m
}

// expectAuth lets one request through basic auth as the given user.
func (m serverMocks) expectAuth(userID string) {
	m.users.EXPECT().ValidateUser(gomock.Any(), "alice", "secret").
		Return(&repository.User{ID: userID, Username: "alice", IsActive: true}, nil)
}

func authedRequest(method, target string, body []byte) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	r.SetBasicAuth("alice", "secret")
	return r
}

func TestAuthentication(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		router, _ := newTestServer(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/errands/errand-1", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
	})

	t.Run("bad credentials", func(t *testing.T) {
		router, m := newTestServer(t)

		m.users.EXPECT().ValidateUser(gomock.Any(), "alice", "wrong").
			Return(nil, errors.New("invalid password"))

		r := httptest.NewRequest(http.MethodGet, "/errands/errand-1", nil)
		r.SetBasicAuth("alice", "wrong")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("metrics endpoint needs no auth", func(t *testing.T) {
		router, _ := newTestServer(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandleCreateErrand(t *testing.T) {
	validBody := map[string]interface{}{
		"category":      "food_delivery",
		"urgency":       "standard",
		"location_from": "12 North Ave",
		"location_to":   "88 South St",
		"base_price":    20.0,
		"distance_km":   5.2,
	}

	t.Run("created", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("cust-1")

		m.lifecycle.EXPECT().Create(gomock.Any(), "cust-1", gomock.Any()).
			DoAndReturn(func(_ interface{}, _ string, in engine.CreateInput) (*engine.Details, error) {
				assert.Equal(t, repository.CategoryFoodDelivery, in.Category)
				assert.Equal(t, repository.UrgencyStandard, in.Urgency)
				assert.Equal(t, 20.0, in.BasePrice)
				assert.Equal(t, 5.2, in.DistanceKm)
				return &engine.Details{Errand: repository.Errand{ID: "errand-1", Status: repository.StatusPending, FinalPrice: 57.5}}, nil
			})

		body, err := json.Marshal(validBody)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodPost, "/errands", body))

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp engine.Details
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "errand-1", resp.Errand.ID)
		assert.Equal(t, 57.5, resp.Errand.FinalPrice)
	})

	t.Run("malformed body", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("cust-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodPost, "/errands", []byte("{not json")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_BODY")
	})

	t.Run("pending cap maps to 429", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("cust-1")

		m.lifecycle.EXPECT().Create(gomock.Any(), "cust-1", gomock.Any()).
			Return(nil, engine.ErrTooManyPending)

		body, err := json.Marshal(validBody)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodPost, "/errands", body))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "TOO_MANY_PENDING_ERRANDS")
	})

	t.Run("infra error is a generic 500", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("cust-1")

		m.lifecycle.EXPECT().Create(gomock.Any(), "cust-1", gomock.Any()).
			Return(nil, errors.New("pq: connection refused"))

		body, err := json.Marshal(validBody)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodPost, "/errands", body))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL")
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestHandleGetErrand(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("cust-1")

		m.lifecycle.EXPECT().Get(gomock.Any(), "errand-1").
			Return(&engine.Details{Errand: repository.Errand{ID: "errand-1"}}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodGet, "/errands/errand-1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("cust-1")

		m.lifecycle.EXPECT().Get(gomock.Any(), "ghost").
			Return(nil, engine.ErrErrandNotFound)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodGet, "/errands/ghost", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ERRAND_NOT_FOUND")
	})
}

func TestHandleTransitions(t *testing.T) {
	t.Run("accept", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("runner-user-1")

		m.lifecycle.EXPECT().Accept(gomock.Any(), "errand-1", "runner-user-1").
			Return(&engine.Details{Errand: repository.Errand{ID: "errand-1", Status: repository.StatusAccepted}}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodPost, "/errands/errand-1/accept", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("accept conflict", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("runner-user-1")

		m.lifecycle.EXPECT().Accept(gomock.Any(), "errand-1", "runner-user-1").
			Return(nil, engine.ErrErrandUnavailable)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodPost, "/errands/errand-1/accept", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "ERRAND_UNAVAILABLE")
	})

	t.Run("start forbidden for strangers", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("runner-user-2")

		m.lifecycle.EXPECT().Start(gomock.Any(), "errand-1", "runner-user-2").
			Return(nil, engine.ErrNotAssignedRunner)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodPost, "/errands/errand-1/start", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_ASSIGNED_RUNNER")
	})

	t.Run("complete", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("runner-user-1")

		m.lifecycle.EXPECT().Complete(gomock.Any(), "errand-1", "runner-user-1").
			Return(&engine.Details{
				Errand:     repository.Errand{ID: "errand-1", Status: repository.StatusCompleted},
				Settlement: &repository.ErrandTransaction{ID: "tx-1"},
			}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodPost, "/errands/errand-1/complete", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "tx-1")
	})
}

func TestHandleCancelErrand(t *testing.T) {
	t.Run("with reason", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("cust-1")

		m.lifecycle.EXPECT().Cancel(gomock.Any(), "errand-1", "cust-1", "changed my mind").
			Return(&engine.Details{Errand: repository.Errand{ID: "errand-1", Status: repository.StatusCancelled}}, nil)

		body := []byte(`{"reason":"changed my mind"}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodPost, "/errands/errand-1/cancel", body))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty body is fine", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("cust-1")

		m.lifecycle.EXPECT().Cancel(gomock.Any(), "errand-1", "cust-1", "").
			Return(&engine.Details{Errand: repository.Errand{ID: "errand-1", Status: repository.StatusCancelled}}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodPost, "/errands/errand-1/cancel", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("policy violation maps to 403", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("cust-1")

		m.lifecycle.EXPECT().Cancel(gomock.Any(), "errand-1", "cust-1", "").
			Return(nil, engine.ErrCancellationNotAllowed)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodPost, "/errands/errand-1/cancel", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "CANCELLATION_NOT_ALLOWED")
	})
}

func TestHandleListErrands(t *testing.T) {
	t.Run("with filters", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("cust-1")

		m.lifecycle.EXPECT().ListByCustomer(gomock.Any(), "cust-1", 5, true).
			Return([]repository.Errand{{ID: "errand-1"}, {ID: "errand-2"}}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodGet, "/users/cust-1/errands?last=5&active=true", nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var errands []repository.Errand
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errands))
		assert.Len(t, errands, 2)
	})

	t.Run("invalid last parameter", func(t *testing.T) {
		router, m := newTestServer(t)
		m.expectAuth("cust-1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authedRequest(http.MethodGet, "/users/cust-1/errands?last=banana", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sched-os/backend/internal/auth"
	"sched-os/backend/internal/proc"
	"sched-os/backend/internal/storage"
)

func newTestRouter(t *testing.T) (*gin.Engine, *storage.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	authn := auth.New("test-secret", time.Hour)
	require.NoError(t, authn.AddUser("admin", "admin123"))

	h := NewHandlers(store, authn)
	limiter := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 100})
	return SetupRouter(h, limiter), store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "",
		gin.H{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "",
		gin.H{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSimulationsRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/simulations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndGetSimulation(t *testing.T) {
	r, _ := newTestRouter(t)
	token := login(t, r)

	req := SimulationRequest{
		Algorithm: "round-robin",
		Quantum:   4,
		Seed:      1,
		Processes: []ProcessSpec{
			{ArrivalTime: 0, TotalWork: 10},
			{ArrivalTime: 0, TotalWork: 4},
		},
	}
	w := doJSON(t, r, http.MethodPost, "/api/v1/simulations", token, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created storage.SimulationRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "round-robin", created.Algorithm)
	assert.Equal(t, int64(1), created.Seed)
	assert.Equal(t, 14*proc.Unit, created.Result.TotalTime)
	require.Len(t, created.Result.Processes, 2)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/simulations/%s", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched storage.SimulationRun
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
}

func TestCreateSimulationUnknownAlgorithm(t *testing.T) {
	r, _ := newTestRouter(t)
	token := login(t, r)

	req := SimulationRequest{
		Algorithm: "shortest-job-first",
		Processes: []ProcessSpec{{TotalWork: 4}},
	}
	w := doJSON(t, r, http.MethodPost, "/api/v1/simulations", token, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSimulationRejectsEmptyProcessList(t *testing.T) {
	r, _ := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/simulations", token,
		gin.H{"algorithm": "fcfs", "processes": []any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSimulationNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodGet,
		"/api/v1/simulations/00000000-0000-0000-0000-000000000001", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSimulations(t *testing.T) {
	r, _ := newTestRouter(t)
	token := login(t, r)

	for i := 0; i < 3; i++ {
		req := SimulationRequest{
			Algorithm: "fcfs",
			Seed:      int64(i + 1),
			Processes: []ProcessSpec{{TotalWork: 2}},
		}
		w := doJSON(t, r, http.MethodPost, "/api/v1/simulations", token, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/simulations?limit=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Runs  []storage.SimulationRun `json:"runs"`
		Total int                     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Runs, 2)
}

func TestListAlgorithmsIsPublic(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/algorithms", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Algorithms []string `json:"algorithms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Algorithms, "round-robin")
	assert.Contains(t, resp.Algorithms, "cfs")
}

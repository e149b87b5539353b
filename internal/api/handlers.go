package api

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sched-os/backend/internal/audit"
	"sched-os/backend/internal/auth"
	"sched-os/backend/internal/proc"
	"sched-os/backend/internal/sched"
	"sched-os/backend/internal/sim"
	"sched-os/backend/internal/storage"
)

type Handlers struct {
	store storage.Store
	auth  *auth.Authenticator
	audit *audit.Logger
}

func NewHandlers(store storage.Store, authn *auth.Authenticator) *Handlers {
	return &Handlers{store: store, auth: authn}
}

// WithAudit enables audit logging for login attempts and simulation runs.
func (h *Handlers) WithAudit(l *audit.Logger) *Handlers {
	h.audit = l
	return h
}

// ProcessSpec describes one process of a simulation request. Times are in
// whole scheduler time units.
type ProcessSpec struct {
	ArrivalTime   int     `json:"arrival_time"`
	TotalWork     int     `json:"total_work" binding:"required,gt=0"`
	Tickets       int     `json:"tickets"`
	IOProbability float64 `json:"io_probability"`
}

type SimulationRequest struct {
	Algorithm string        `json:"algorithm" binding:"required"`
	Quantum   int           `json:"quantum"`
	Seed      int64         `json:"seed"`
	Processes []ProcessSpec `json:"processes" binding:"required,min=1,dive"`
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) ListAlgorithms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"algorithms": sched.AvailableAlgorithms()})
}

func (h *Handlers) Login(c *gin.Context) {
	var creds struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	token, err := h.auth.Authenticate(creds.Username, creds.Password)
	if err != nil {
		h.audit.LoginAttempt(creds.Username, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return
	}
	h.audit.LoginAttempt(creds.Username, true)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CreateSimulation runs a scheduler simulation synchronously and persists the
// result. A zero seed gets replaced with a random one so every response can be
// reproduced from its recorded parameters.
func (h *Handlers) CreateSimulation(c *gin.Context) {
	var req SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	clock := sim.NewClock()

	cfg := sched.DefaultConfig()
	cfg.Clock = clock
	cfg.Rand = rng
	if req.Quantum > 0 {
		cfg.Quantum = time.Duration(req.Quantum) * proc.Unit
	}

	scheduler, err := sched.New(req.Algorithm, cfg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	processes := make([]*proc.Process, 0, len(req.Processes))
	for _, spec := range req.Processes {
		p := proc.New(
			time.Duration(spec.ArrivalTime)*proc.Unit,
			time.Duration(spec.TotalWork)*proc.Unit,
			spec.IOProbability,
		)
		p.Tickets = spec.Tickets
		processes = append(processes, p)
	}

	cpu := sim.NewCPU(scheduler, clock, rng)
	result := cpu.Run(processes)

	run := &storage.SimulationRun{
		ID:        uuid.New(),
		Algorithm: req.Algorithm,
		Seed:      seed,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.SaveRun(c.Request.Context(), run); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist run"})
		return
	}
	h.audit.SimulationCreated(c.GetString("username"), req.Algorithm, run.ID)

	c.JSON(http.StatusCreated, run)
}

func (h *Handlers) GetSimulation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid run id"})
		return
	}

	run, err := h.store.GetRun(c.Request.Context(), id)
	if errors.Is(err, storage.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load run"})
		return
	}
	c.JSON(http.StatusOK, run)
}

func (h *Handlers) ListSimulations(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	runs, err := h.store.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "total": len(runs)})
}

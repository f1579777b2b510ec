package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/taskmarket/taskmarket/docs" // Import generated docs
	"github.com/taskmarket/taskmarket/internal/handler/dto"
	"github.com/taskmarket/taskmarket/internal/middleware"
	"github.com/taskmarket/taskmarket/internal/notify"
	"github.com/taskmarket/taskmarket/internal/repository"
	"github.com/taskmarket/taskmarket/internal/service"
	"github.com/taskmarket/taskmarket/internal/static"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool              *pgxpool.Pool
	taskService       *service.TaskService
	disputeService    *service.DisputeService
	escrowService     *service.EscrowService
	reputationService *service.ReputationService
	agentRepo         *repository.AgentRepository
	badgeRepo         *repository.BadgeRepository
	authMiddleware    *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool) *Handler {
	// Create repositories
	taskRepo := repository.NewTaskRepository(pool)
	eventRepo := repository.NewTaskEventRepository(pool)
	agentRepo := repository.NewAgentRepository(pool)
	txRepo := repository.NewTransactionRepository(pool)
	disputeRepo := repository.NewDisputeRepository(pool)
	repRepo := repository.NewReputationRepository(pool)
	badgeRepo := repository.NewBadgeRepository(pool)

	notifier := notify.NewSlogNotifier()

	// Create services
	escrowService := service.NewEscrowService(pool, agentRepo, txRepo)
	reputationService := service.NewReputationService(pool, agentRepo, repRepo, badgeRepo)
	taskService := service.NewTaskService(pool, taskRepo, eventRepo, agentRepo, escrowService, reputationService, notifier)
	disputeService := service.NewDisputeService(pool, disputeRepo, taskRepo, eventRepo, agentRepo, escrowService, reputationService, notifier)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(agentRepo)

	return &Handler{
		pool:              pool,
		taskService:       taskService,
		disputeService:    disputeService,
		escrowService:     escrowService,
		reputationService: reputationService,
		agentRepo:         agentRepo,
		badgeRepo:         badgeRepo,
		authMiddleware:    authMiddleware,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Static files for AI agents
	mux.HandleFunc("GET /skill.md", h.handleSkillMd)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Task lifecycle
	mux.Handle("GET /api/v1/tasks", h.auth(h.handleListTasks))
	mux.Handle("POST /api/v1/tasks", h.auth(h.handleCreateTask))
	mux.Handle("GET /api/v1/tasks/{id}", h.auth(h.handleGetTask))
	mux.Handle("POST /api/v1/tasks/{id}/claim", h.auth(h.handleClaimTask))
	mux.Handle("POST /api/v1/tasks/{id}/submit", h.auth(h.handleSubmitWork))
	mux.Handle("POST /api/v1/tasks/{id}/validate", h.auth(h.handleValidateWork))
	mux.Handle("POST /api/v1/tasks/{id}/abandon", h.auth(h.handleAbandonTask))
	mux.Handle("POST /api/v1/tasks/{id}/cancel", h.auth(h.handleCancelTask))
	mux.Handle("POST /api/v1/tasks/{id}/review", h.auth(h.handleReviewTask))

	// Dispute protocol
	mux.Handle("POST /api/v1/tasks/{id}/dispute", h.auth(h.handleRaiseDispute))
	mux.Handle("GET /api/v1/disputes/{id}", h.auth(h.handleGetDispute))
	mux.Handle("POST /api/v1/disputes/{id}/evidence", h.auth(h.handleAddEvidence))
	mux.Handle("POST /api/v1/disputes/{id}/resolve", h.auth(h.handleResolveDispute))

	// Agents, credits, reputation
	mux.Handle("GET /api/v1/agents/me", h.auth(h.handleGetOwnProfile))
	mux.Handle("GET /api/v1/agents/{id}", h.auth(h.handleGetAgentProfile))
	mux.Handle("GET /api/v1/agents/me/transactions", h.auth(h.handleListTransactions))
	mux.Handle("GET /api/v1/agents/{id}/reputation", h.auth(h.handleReputationHistory))
	mux.Handle("POST /api/v1/agents/{id}/endorse", h.auth(h.handleEndorseAgent))
	mux.Handle("POST /api/v1/transfers", h.auth(h.handleTransfer))
}

func (h *Handler) auth(fn http.HandlerFunc) http.Handler {
	return h.authMiddleware.Authenticate(fn)
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleSkillMd serves the embedded skill.md file for AI agents.
func (h *Handler) handleSkillMd(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.SkillMd))
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error and writes the error response.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// extractID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to client).
func extractID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "id must be a valid UUID")
		return "", false
	}

	return id, true
}

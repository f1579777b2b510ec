package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/taskmarket/taskmarket/internal/handler/dto"
	"github.com/taskmarket/taskmarket/internal/middleware"
)

// handleGetOwnProfile returns the authenticated agent's profile.
// @Summary Get own profile
// @Description Balance, reputation, trust score, rank, counters, and badges
// @Tags agents
// @Produce json
// @Success 200 {object} dto.AgentProfileResponse
// @Security BearerAuth
// @Router /agents/me [get]
func (h *Handler) handleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agent, err := middleware.GetAgentFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	h.respondProfile(w, r, agent.ID)
}

// handleGetAgentProfile returns another agent's public profile.
// @Summary Get agent profile
// @Description Public profile of any agent by ID
// @Tags agents
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} dto.AgentProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /agents/{id} [get]
func (h *Handler) handleGetAgentProfile(w http.ResponseWriter, r *http.Request) {
	agentID, ok := extractID(w, r)
	if !ok {
		return
	}

	h.respondProfile(w, r, agentID)
}

func (h *Handler) respondProfile(w http.ResponseWriter, r *http.Request, agentID string) {
	ctx := r.Context()

	agent, err := h.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	rank, err := h.reputationService.GetReputationRank(ctx, agentID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	badges, err := h.badgeRepo.ListByAgent(ctx, agentID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToAgentProfile(agent, rank, badges))
}

// handleListTransactions returns the authenticated agent's ledger.
// @Summary List own transactions
// @Description The agent's credit ledger, newest first
// @Tags agents
// @Produce json
// @Param limit query int false "Page size (1-100, default 50)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} dto.TransactionsResponse
// @Security BearerAuth
// @Router /agents/me/transactions [get]
func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agent, err := middleware.GetAgentFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	limit, offset := parsePagination(r)

	txns, err := h.escrowService.GetTransactionHistory(ctx, agent.ID, limit, offset)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	infos := make([]dto.TransactionInfo, len(txns))
	for i, t := range txns {
		infos[i] = dto.ToTransactionInfo(t)
	}

	respondJSON(w, http.StatusOK, dto.TransactionsResponse{
		Transactions: infos,
		Limit:        limit,
		Offset:       offset,
	})
}

// handleTransfer moves credits directly to another agent.
// @Summary Transfer credits
// @Description Direct credit transfer between agents, outside the task flow
// @Tags agents
// @Accept json
// @Produce json
// @Param request body dto.TransferRequest true "Transfer request"
// @Success 204 "No Content"
// @Failure 402 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transfers [post]
func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agent, err := middleware.GetAgentFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.ToAgentID == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "to_agent_id is required")
		return
	}

	if err := h.escrowService.Transfer(ctx, agent.ID, req.ToAgentID, req.Amount, req.Memo); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleReputationHistory returns an agent's reputation event log.
// @Summary Get reputation history
// @Description The agent's reputation events, newest first, with the current score
// @Tags agents
// @Produce json
// @Param id path string true "Agent ID"
// @Param limit query int false "Page size (1-100, default 50)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} dto.ReputationHistoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /agents/{id}/reputation [get]
func (h *Handler) handleReputationHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agentID, ok := extractID(w, r)
	if !ok {
		return
	}

	agent, err := h.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	limit, offset := parsePagination(r)

	events, err := h.reputationService.GetReputationHistory(ctx, agentID, limit, offset)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	infos := make([]dto.ReputationEventInfo, len(events))
	for i, e := range events {
		infos[i] = dto.ToReputationEventInfo(e)
	}

	respondJSON(w, http.StatusOK, dto.ReputationHistoryResponse{
		AgentID:    agentID,
		Reputation: agent.Reputation,
		Events:     infos,
		Limit:      limit,
		Offset:     offset,
	})
}

// handleEndorseAgent records a skill endorsement.
// @Summary Endorse an agent
// @Description Records an endorsement worth a small reputation bonus
// @Tags agents
// @Produce json
// @Param id path string true "Agent ID"
// @Success 201 {object} dto.ReputationEventInfo
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /agents/{id}/endorse [post]
func (h *Handler) handleEndorseAgent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agent, err := middleware.GetAgentFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	agentID, ok := extractID(w, r)
	if !ok {
		return
	}

	event, err := h.reputationService.Endorse(ctx, agent.ID, agentID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToReputationEventInfo(event))
}

// parsePagination reads limit/offset query parameters with defaults.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 50
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	offset = 0
	if offsetParam := r.URL.Query().Get("offset"); offsetParam != "" {
		if n, err := strconv.Atoi(offsetParam); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/taskmarket/taskmarket/internal/domain"
	"github.com/taskmarket/taskmarket/internal/handler/dto"
	"github.com/taskmarket/taskmarket/internal/middleware"
)

// handleRaiseDispute opens a dispute over a submitted or completed task.
// @Summary Raise a dispute
// @Description Either party contests a submitted or completed task, freezing it in DISPUTED status
// @Tags disputes
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.RaiseDisputeRequest true "Dispute request"
// @Success 201 {object} dto.DisputeResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/dispute [post]
func (h *Handler) handleRaiseDispute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agent, err := middleware.GetAgentFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.RaiseDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	dispute, err := h.disputeService.RaiseDispute(ctx, taskID, agent.ID, req.Reason, req.Evidence)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToDisputeResponse(dispute))
}

// handleGetDispute retrieves a dispute with its evidence log.
// @Summary Get dispute details
// @Description Get a dispute with its full evidence log
// @Tags disputes
// @Produce json
// @Param id path string true "Dispute ID"
// @Success 200 {object} dto.DisputeDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /disputes/{id} [get]
func (h *Handler) handleGetDispute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	disputeID, ok := extractID(w, r)
	if !ok {
		return
	}

	dispute, evidence, err := h.disputeService.GetDispute(ctx, disputeID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	response := dto.DisputeDetailResponse{
		Dispute:  dto.ToDisputeResponse(dispute),
		Evidence: make([]dto.EvidenceInfo, len(evidence)),
	}
	for i, e := range evidence {
		response.Evidence[i] = dto.ToEvidenceInfo(e)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleAddEvidence appends evidence to an open dispute.
// @Summary Add dispute evidence
// @Description The raiser or either task party appends an evidence entry
// @Tags disputes
// @Accept json
// @Produce json
// @Param id path string true "Dispute ID"
// @Param request body dto.AddEvidenceRequest true "Evidence request"
// @Success 201 {object} dto.EvidenceInfo
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /disputes/{id}/evidence [post]
func (h *Handler) handleAddEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agent, err := middleware.GetAgentFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	disputeID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.AddEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	evidence, err := h.disputeService.AddEvidence(ctx, disputeID, agent.ID, req.Body)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToEvidenceInfo(evidence))
}

// handleResolveDispute settles an open dispute.
// @Summary Resolve a dispute
// @Description A party concedes, or a high-reputation arbitrator decides; settles the escrow per the decision
// @Tags disputes
// @Accept json
// @Produce json
// @Param id path string true "Dispute ID"
// @Param request body dto.ResolveDisputeRequest true "Resolution request"
// @Success 200 {object} dto.DisputeResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /disputes/{id}/resolve [post]
func (h *Handler) handleResolveDispute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agent, err := middleware.GetAgentFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	disputeID, ok := extractID(w, r)
	if !ok {
		return
	}

	var req dto.ResolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.Decision == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "decision is required")
		return
	}

	dispute, err := h.disputeService.ResolveDispute(ctx, disputeID, agent.ID, domain.Decision(req.Decision), req.Note)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToDisputeResponse(dispute))
}

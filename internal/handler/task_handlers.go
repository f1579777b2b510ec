package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskmarket/taskmarket/internal/domain"
	"github.com/taskmarket/taskmarket/internal/handler/dto"
	"github.com/taskmarket/taskmarket/internal/middleware"
	"github.com/taskmarket/taskmarket/internal/repository"
	"github.com/taskmarket/taskmarket/internal/service"
)

// handleCreateTask posts a new task and escrows the reward.
// @Summary Create a new task
// @Description Posts a task. The reward is debited from the requester's balance and held in escrow.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskDetail
// @Failure 402 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agent, err := middleware.GetAgentFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(ctx, agent.ID, service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Reward:      req.Reward,
		Skills:      req.Skills,
		DeadlineAt:  req.DeadlineAt,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskDetail(task))
}

// handleGetTask retrieves task details with the audit history.
// @Summary Get task details
// @Description Get full task details including proof and audit history
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r)
	if !ok {
		return
	}

	task, events, err := h.taskService.GetTask(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	response := dto.TaskDetailResponse{
		Task:   dto.ToTaskDetail(task),
		Events: make([]dto.TaskEventInfo, len(events)),
	}
	for i, event := range events {
		response.Events[i] = dto.ToTaskEventInfo(event)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleListTasks returns a list of tasks with filters.
// @Summary List tasks
// @Description Get a list of tasks with optional filters
// @Tags tasks
// @Produce json
// @Param status query string false "Comma-separated statuses: OPEN,CLAIMED"
// @Param requester query string false "Filter by requester: 'me' or agent UUID"
// @Param worker query string false "Filter by worker: 'me' or agent UUID"
// @Param unclaimed query bool false "Show only unclaimed tasks"
// @Param skill query string false "Tasks requiring a given skill"
// @Param min_reward query int false "Minimum reward"
// @Param limit query int false "Page size (1-100, default 50)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} dto.TasksListResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agent, err := middleware.GetAgentFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	query := r.URL.Query()

	var statuses []string
	if statusParam := query.Get("status"); statusParam != "" {
		statuses = splitAndTrim(statusParam, ",")
	}

	resolveAgent := func(param string) *string {
		v := query.Get(param)
		if v == "" {
			return nil
		}
		if v == "me" {
			return &agent.ID
		}
		return &v
	}
	requesterID := resolveAgent("requester")
	workerID := resolveAgent("worker")
	unclaimed := query.Get("unclaimed") == "true"

	var skill *string
	if skillParam := query.Get("skill"); skillParam != "" {
		skill = &skillParam
	}

	var minReward *int64
	if rewardParam := query.Get("min_reward"); rewardParam != "" {
		if n, err := strconv.ParseInt(rewardParam, 10, 64); err == nil && n > 0 {
			minReward = &n
		}
	}

	limit := 50
	if limitParam := query.Get("limit"); limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	offset := 0
	if offsetParam := query.Get("offset"); offsetParam != "" {
		if n, err := strconv.Atoi(offsetParam); err == nil && n >= 0 {
			offset = n
		}
	}

	tasks, total, err := h.taskService.ListTasks(ctx, repository.TaskListFilters{
		Statuses:    statuses,
		RequesterID: requesterID,
		WorkerID:    workerID,
		Unclaimed:   unclaimed,
		Skill:       skill,
		MinReward:   minReward,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tasks")
		return
	}

	items := make([]dto.TaskListItem, len(tasks))
	for i, task := range tasks {
		items[i] = dto.ToTaskListItem(task)
	}

	respondJSON(w, http.StatusOK, dto.TasksListResponse{
		Tasks:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// handleClaimTask claims an open task.
// @Summary Claim a task
// @Description Agent claims an open task posted by another agent
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskDetail
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/claim [post]
func (h *Handler) handleClaimTask(w http.ResponseWriter, r *http.Request) {
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

	task, err := h.taskService.ClaimTask(ctx, taskID, agent.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskDetail(task))
}

// handleSubmitWork submits proof of completion for a claimed task.
// @Summary Submit work
// @Description Worker submits proof of completion for validation
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.SubmitWorkRequest true "Submission request"
// @Success 200 {object} dto.TaskDetail
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/submit [post]
func (h *Handler) handleSubmitWork(w http.ResponseWriter, r *http.Request) {
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

	var req dto.SubmitWorkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.SubmitWork(ctx, taskID, agent.ID, req.Proof)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskDetail(task))
}

// handleValidateWork approves or rejects submitted work.
// @Summary Validate submitted work
// @Description Requester approves (releases escrow to worker) or rejects (reopens task)
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.ValidateWorkRequest true "Validation request"
// @Success 200 {object} dto.TaskDetail
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/validate [post]
func (h *Handler) handleValidateWork(w http.ResponseWriter, r *http.Request) {
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

	var req dto.ValidateWorkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.Approved == nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "approved is required")
		return
	}

	task, err := h.taskService.ValidateWork(ctx, taskID, agent.ID, *req.Approved, req.Reason)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskDetail(task))
}

// handleAbandonTask releases a claimed task back to the pool.
// @Summary Abandon a claim
// @Description Worker releases a claimed task back to the pool with a reputation penalty
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskDetail
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/abandon [post]
func (h *Handler) handleAbandonTask(w http.ResponseWriter, r *http.Request) {
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

	task, err := h.taskService.AbandonTask(ctx, taskID, agent.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskDetail(task))
}

// handleCancelTask cancels an unclaimed task and refunds the escrow.
// @Summary Cancel a task
// @Description Requester withdraws an open task and reclaims the escrowed reward
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskDetail
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/cancel [post]
func (h *Handler) handleCancelTask(w http.ResponseWriter, r *http.Request) {
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

	task, err := h.taskService.CancelTask(ctx, taskID, agent.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskDetail(task))
}

// handleReviewTask records a one-time review of completed work.
// @Summary Review completed work
// @Description Requester rates the worker once per completed task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.ReviewTaskRequest true "Review request"
// @Success 201 {object} dto.ReputationEventInfo
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/review [post]
func (h *Handler) handleReviewTask(w http.ResponseWriter, r *http.Request) {
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

	var req dto.ReviewTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.Rating == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "rating is required")
		return
	}

	event, err := h.taskService.ReviewTask(ctx, taskID, agent.ID, domain.Rating(req.Rating), req.Comment)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToReputationEventInfo(event))
}

// splitAndTrim splits a string by delimiter and trims whitespace.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

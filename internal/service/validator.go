package service

import (
	"fmt"
	"strings"

	"github.com/taskmarket/taskmarket/internal/domain"
)

// Validator handles permission and state validation for marketplace
// operations. Checks run against a row already locked by the caller, so
// a passing check holds for the rest of the transaction.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateNewTask checks the input fields of a task before escrow.
func (v *Validator) ValidateNewTask(title, description string, reward int64) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if len(title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", domain.ErrInvalidInput, domain.MaxTitleLength)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	if reward < domain.MinReward {
		return fmt.Errorf("%w: reward must be at least %d", domain.ErrInvalidInput, domain.MinReward)
	}
	return nil
}

// CanClaim validates if an agent can claim a task. A task already taken
// by another worker is a conflict, not an invalid state: concurrent
// claimers racing for the same open task must see a retry-safe error.
func (v *Validator) CanClaim(task *domain.Task, agent *domain.Agent) error {
	if task.IsRequestedBy(agent.ID) {
		return fmt.Errorf("%w: agent %s posted task %s", domain.ErrOwnTaskClaim, agent.ID, task.ID)
	}
	if task.Status != domain.TaskStatusOpen {
		if task.Status == domain.TaskStatusClaimed {
			return fmt.Errorf("%w: task %s already claimed", domain.ErrTaskClaimConflict, task.ID)
		}
		return fmt.Errorf("%w: task %s is in %s status, expected OPEN", domain.ErrInvalidState, task.ID, task.Status)
	}
	return nil
}

// CanSubmit validates if an agent can submit work for a task.
func (v *Validator) CanSubmit(task *domain.Task, agent *domain.Agent) error {
	if !task.IsWorkedBy(agent.ID) {
		return fmt.Errorf("%w: agent %s is not the worker of task %s", domain.ErrNotTaskWorker, agent.ID, task.ID)
	}
	if task.Status != domain.TaskStatusClaimed {
		return fmt.Errorf("%w: task %s is in %s status, expected CLAIMED", domain.ErrInvalidState, task.ID, task.Status)
	}
	return nil
}

// CanValidate checks the requester may approve or reject submitted work.
func (v *Validator) CanValidate(task *domain.Task, agent *domain.Agent) error {
	if !task.IsRequestedBy(agent.ID) {
		return fmt.Errorf("%w: agent %s is not the requester of task %s", domain.ErrNotTaskRequester, agent.ID, task.ID)
	}
	if task.Status != domain.TaskStatusSubmitted {
		return fmt.Errorf("%w: task %s is in %s status, expected SUBMITTED", domain.ErrInvalidState, task.ID, task.Status)
	}
	return nil
}

// CanAbandon validates if the worker can release a claimed task.
func (v *Validator) CanAbandon(task *domain.Task, agent *domain.Agent) error {
	if !task.IsWorkedBy(agent.ID) {
		return fmt.Errorf("%w: agent %s is not the worker of task %s", domain.ErrNotTaskWorker, agent.ID, task.ID)
	}
	if task.Status != domain.TaskStatusClaimed {
		return fmt.Errorf("%w: task %s is in %s status, expected CLAIMED", domain.ErrInvalidState, task.ID, task.Status)
	}
	return nil
}

// CanCancel validates if the requester can cancel an unclaimed task.
func (v *Validator) CanCancel(task *domain.Task, agent *domain.Agent) error {
	if !task.IsRequestedBy(agent.ID) {
		return fmt.Errorf("%w: agent %s is not the requester of task %s", domain.ErrNotTaskRequester, agent.ID, task.ID)
	}
	if task.Status != domain.TaskStatusOpen {
		return fmt.Errorf("%w: task %s is in %s status, expected OPEN", domain.ErrInvalidState, task.ID, task.Status)
	}
	return nil
}

// CanRaiseDispute validates the raiser and the task state.
func (v *Validator) CanRaiseDispute(task *domain.Task, agent *domain.Agent) error {
	if !task.Status.IsDisputable() {
		return fmt.Errorf("%w: task %s is in %s status, expected SUBMITTED or COMPLETED", domain.ErrInvalidState, task.ID, task.Status)
	}
	if !task.IsParty(agent.ID) {
		return fmt.Errorf("%w: agent %s is neither requester nor worker of task %s", domain.ErrNotDisputeParty, agent.ID, task.ID)
	}
	return nil
}

// CanResolveDispute authorizes a resolver: a party to the task, or a
// non-party arbitrator with sufficient reputation.
func (v *Validator) CanResolveDispute(task *domain.Task, agent *domain.Agent) error {
	if task.IsParty(agent.ID) {
		return nil
	}
	if agent.Reputation >= domain.ArbitratorMinReputation {
		return nil
	}
	return fmt.Errorf("%w: agent %s needs reputation >= %.0f to arbitrate task %s",
		domain.ErrArbitratorRequired, agent.ID, domain.ArbitratorMinReputation, task.ID)
}

// CanAddEvidence validates an evidence contributor: the raiser or either
// party to the task.
func (v *Validator) CanAddEvidence(dispute *domain.Dispute, task *domain.Task, agent *domain.Agent) error {
	if dispute.Status != domain.DisputeStatusOpen {
		return fmt.Errorf("%w: dispute %s is resolved", domain.ErrDisputeResolved, dispute.ID)
	}
	if dispute.RaisedByID == agent.ID || task.IsParty(agent.ID) {
		return nil
	}
	return fmt.Errorf("%w: agent %s is not involved in dispute %s", domain.ErrNotDisputeParty, agent.ID, dispute.ID)
}

// CanReview checks the requester may review a completed task.
func (v *Validator) CanReview(task *domain.Task, agent *domain.Agent) error {
	if !task.IsRequestedBy(agent.ID) {
		return fmt.Errorf("%w: agent %s is not the requester of task %s", domain.ErrNotTaskRequester, agent.ID, task.ID)
	}
	if task.Status != domain.TaskStatusCompleted || task.WorkerID == nil {
		return fmt.Errorf("%w: task %s is in %s status, expected COMPLETED", domain.ErrInvalidState, task.ID, task.Status)
	}
	return nil
}

package domain_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/taskmarket/taskmarket/internal/domain"
)

func TestTaskStatusIsTerminal(t *testing.T) {
	assert.True(t, domain.TaskStatusCompleted.IsTerminal())
	assert.True(t, domain.TaskStatusCancelled.IsTerminal())
	assert.False(t, domain.TaskStatusOpen.IsTerminal())
	assert.False(t, domain.TaskStatusClaimed.IsTerminal())
	assert.False(t, domain.TaskStatusSubmitted.IsTerminal())
	assert.False(t, domain.TaskStatusDisputed.IsTerminal())
}

func TestTaskStatusIsDisputable(t *testing.T) {
	assert.True(t, domain.TaskStatusSubmitted.IsDisputable())
	assert.True(t, domain.TaskStatusCompleted.IsDisputable())
	assert.False(t, domain.TaskStatusOpen.IsDisputable())
	assert.False(t, domain.TaskStatusClaimed.IsDisputable())
	assert.False(t, domain.TaskStatusDisputed.IsDisputable())
}

func TestTaskParties(t *testing.T) {
	worker := "worker-1"
	task := &domain.Task{RequesterID: "requester-1", WorkerID: &worker}

	assert.True(t, task.IsRequestedBy("requester-1"))
	assert.True(t, task.IsWorkedBy("worker-1"))
	assert.True(t, task.IsParty("requester-1"))
	assert.True(t, task.IsParty("worker-1"))
	assert.False(t, task.IsParty("stranger"))

	unclaimed := &domain.Task{RequesterID: "requester-1"}
	assert.False(t, unclaimed.IsWorkedBy("worker-1"))
}

func TestNormalizeProof(t *testing.T) {
	assert.Equal(t, "done", domain.NormalizeProof("  done\n"))
	assert.Equal(t, "", domain.NormalizeProof("   "))

	long := strings.Repeat("x", domain.MaxProofLength+100)
	assert.Len(t, domain.NormalizeProof(long), domain.MaxProofLength)
}

func TestNormalizeProof_MultiByteBoundary(t *testing.T) {
	// The byte cap falls inside the two-byte rune; the cap must back off
	// to the rune boundary instead of emitting a dangling lead byte.
	proof := strings.Repeat("a", domain.MaxProofLength-1) + "é"
	capped := domain.NormalizeProof(proof)

	assert.True(t, utf8.ValidString(capped))
	assert.Equal(t, strings.Repeat("a", domain.MaxProofLength-1), capped)

	exact := strings.Repeat("é", domain.MaxProofLength/2)
	assert.Equal(t, exact, domain.NormalizeProof(exact))
}

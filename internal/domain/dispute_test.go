package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskmarket/taskmarket/internal/domain"
)

func TestDecisionIsValid(t *testing.T) {
	assert.True(t, domain.DecisionFavorWorker.IsValid())
	assert.True(t, domain.DecisionFavorRequester.IsValid())
	assert.True(t, domain.DecisionSplit.IsValid())
	assert.True(t, domain.DecisionCancel.IsValid())
	assert.False(t, domain.Decision("").IsValid())
	assert.False(t, domain.Decision("FAVOR_WORKER").IsValid())
}

func TestArbitrationFee(t *testing.T) {
	tests := []struct {
		reward int64
		want   int64
	}{
		{1, 0},
		{19, 0},
		{20, 1},
		{41, 2},
		{100, 5},
		{200, 10},
		{500, 10}, // capped
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ArbitrationFee(tt.reward), "reward %d", tt.reward)
	}
}

func TestSplitReward(t *testing.T) {
	tests := []struct {
		reward      int64
		wantRefund  int64
		wantPayment int64
	}{
		{1, 0, 1},
		{2, 1, 1},
		{41, 20, 21},
		{100, 50, 50},
	}

	for _, tt := range tests {
		refund, payment := domain.SplitReward(tt.reward)
		assert.Equal(t, tt.wantRefund, refund, "refund for reward %d", tt.reward)
		assert.Equal(t, tt.wantPayment, payment, "payment for reward %d", tt.reward)
		assert.Equal(t, tt.reward, refund+payment, "split must conserve credits")
	}
}

package domain

import "time"

// TransactionType represents the business reason for a credit movement.
type TransactionType string

const (
	TxTypeTaskEscrow     TransactionType = "task_escrow"
	TxTypeTaskPayment    TransactionType = "task_payment"
	TxTypeEscrowRelease  TransactionType = "escrow_release"
	TxTypeRefund         TransactionType = "refund"
	TxTypeSplitPayment   TransactionType = "split_payment"
	TxTypeSplitRefund    TransactionType = "split_refund"
	TxTypeClawback       TransactionType = "clawback"
	TxTypeTransferIn     TransactionType = "transfer_in"
	TxTypeTransferOut    TransactionType = "transfer_out"
	TxTypeArbitrationFee TransactionType = "arbitration_fee"
)

// Transaction is an append-only record of a single signed credit movement.
// BalanceAfter is the agent's balance immediately after the movement, so
// the ledger can reconstruct balances by replay.
type Transaction struct {
	ID             string
	AgentID        string
	Type           TransactionType
	Amount         int64
	BalanceAfter   int64
	Description    string
	RelatedTaskID  *string
	RelatedAgentID *string
	CreatedAt      time.Time
}

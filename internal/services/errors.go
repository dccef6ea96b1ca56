package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownParentTransaction means the token's parentTxn has no matching
	// purchase record.
	ErrUnknownParentTransaction = errors.New("transação principal não encontrada")

	// ErrLedgerUnavailable means an existence probe against the store failed.
	// It is deliberately a hard failure: a store outage must not make the
	// duplicate and parent checks silently pass.
	ErrLedgerUnavailable = errors.New("não foi possível consultar o registo de compras")
)

// ValidationError reports a missing or malformed request field
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DuplicateUpsellError reports a level that already holds a record for the
// token's parent transaction.
type DuplicateUpsellError struct {
	Level int
}

func (e *DuplicateUpsellError) Error() string {
	return fmt.Sprintf("Upsell %d já foi processado", e.Level)
}

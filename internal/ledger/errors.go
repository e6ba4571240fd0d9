package ledger

import (
	"errors"
	"fmt"
)

// Domain errors reported when a transaction cannot be applied. The engine
// records each one against the offending input row instead of aborting the
// run; only I/O failures are fatal.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrUnknownTransaction = errors.New("referenced transaction not found")
	ErrNotDisputed        = errors.New("transaction not disputed")
	ErrAlreadyDisputed    = errors.New("transaction already disputed")
	ErrAccountLocked      = errors.New("account locked")
	ErrInvalidAmount      = errors.New("amount must be positive")
)

// UnrecognizedTypeError reports a record whose type token matched no known
// transaction kind. The token is preserved verbatim for the failure report.
type UnrecognizedTypeError struct {
	Raw string
}

func (e *UnrecognizedTypeError) Error() string {
	return fmt.Sprintf("unrecognized transaction type %q", e.Raw)
}

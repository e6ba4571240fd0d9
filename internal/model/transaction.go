package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TxType classifies an input transaction record.
type TxType string

const (
	TypeDeposit    TxType = "deposit"
	TypeWithdrawal TxType = "withdrawal"
	TypeDispute    TxType = "dispute"
	TypeResolve    TxType = "resolve"
	TypeChargeback TxType = "chargeback"
	TypeUnknown    TxType = "unknown"
)

// ParseTxType matches a type token case-insensitively, ignoring surrounding
// whitespace. Unrecognized tokens map to TypeUnknown rather than an error;
// the raw token is kept on the Transaction for reporting.
func ParseTxType(token string) TxType {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "deposit":
		return TypeDeposit
	case "withdrawal":
		return TypeWithdrawal
	case "dispute":
		return TypeDispute
	case "resolve":
		return TypeResolve
	case "chargeback":
		return TypeChargeback
	default:
		return TypeUnknown
	}
}

// Monetary reports whether the type carries its own amount.
// Dispute, resolve and chargeback reference a prior transaction's amount.
func (t TxType) Monetary() bool {
	return t == TypeDeposit || t == TypeWithdrawal
}

// Transaction is one parsed input record.
type Transaction struct {
	Type    TxType
	RawType string // type token as read, before normalization
	Client  uint16
	TxID    uint32
	Amount  decimal.Decimal // set for deposit/withdrawal only
}

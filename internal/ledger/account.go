package ledger

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/settle-dev/settle/internal/model"
)

// StoredTransaction is a monetary transaction retained on the account so a
// later dispute, resolve or chargeback can reference its amount.
type StoredTransaction struct {
	Type     model.TxType
	Amount   decimal.Decimal
	Disputed bool
}

// Account holds one client's balances and the monetary transactions applied
// to it. Total == Available + Held after every successful operation; a
// failed operation leaves the account exactly as it was before the call.
type Account struct {
	Client    uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool

	// AllowRedispute preserves the legacy behavior where disputing an
	// already-disputed transaction moves its funds a second time. Off by
	// default: a repeat dispute fails with ErrAlreadyDisputed.
	AllowRedispute bool

	txs map[uint32]*StoredTransaction
}

// NewAccount returns an unlocked account with zero balances and no history.
func NewAccount(client uint16) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
		txs:       make(map[uint32]*StoredTransaction),
	}
}

// Deposit credits amount to the available balance. Amount validation happens
// upstream, before dispatch; the operation itself cannot fail.
func (a *Account) Deposit(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
	a.Total = a.Total.Add(amount)
}

// Withdraw debits amount unless it exceeds the total balance. The limit is
// the total, not the available balance: held funds still count toward it,
// matching the reference policy.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Total) {
		return ErrInsufficientFunds
	}
	a.Available = a.Available.Sub(amount)
	a.Total = a.Total.Sub(amount)
	return nil
}

// Dispute moves the referenced transaction's amount from available to held
// and marks it disputed. The total is unchanged.
func (a *Account) Dispute(txID uint32) error {
	tx, ok := a.txs[txID]
	if !ok {
		return ErrUnknownTransaction
	}
	if tx.Disputed && !a.AllowRedispute {
		return ErrAlreadyDisputed
	}
	a.Available = a.Available.Sub(tx.Amount)
	a.Held = a.Held.Add(tx.Amount)
	tx.Disputed = true
	return nil
}

// Resolve returns a disputed transaction's amount from held to available and
// clears the dispute. The total is unchanged.
func (a *Account) Resolve(txID uint32) error {
	tx, ok := a.txs[txID]
	if !ok {
		return ErrUnknownTransaction
	}
	if !tx.Disputed {
		return ErrNotDisputed
	}
	a.Held = a.Held.Sub(tx.Amount)
	a.Available = a.Available.Add(tx.Amount)
	tx.Disputed = false
	return nil
}

// Chargeback removes a disputed transaction's amount from held and total,
// then locks the account permanently.
func (a *Account) Chargeback(txID uint32) error {
	tx, ok := a.txs[txID]
	if !ok {
		return ErrUnknownTransaction
	}
	if !tx.Disputed {
		return ErrNotDisputed
	}
	a.Held = a.Held.Sub(tx.Amount)
	a.Total = a.Total.Sub(tx.Amount)
	a.Locked = true
	tx.Disputed = false
	return nil
}

// Apply dispatches one transaction against the account. A locked account
// rejects every transaction before any other check. Deposits and successful
// withdrawals are stored for later dispute reference; a duplicate id
// overwrites the prior entry (last write wins, matching the reference).
func (a *Account) Apply(tx model.Transaction) error {
	if a.Locked {
		return fmt.Errorf("%s tx %d: %w", tx.Type, tx.TxID, ErrAccountLocked)
	}

	switch tx.Type {
	case model.TypeDeposit:
		a.Deposit(tx.Amount)
		a.txs[tx.TxID] = &StoredTransaction{Type: tx.Type, Amount: tx.Amount}
	case model.TypeWithdrawal:
		if err := a.Withdraw(tx.Amount); err != nil {
			return fmt.Errorf("%s tx %d: %w", tx.Type, tx.TxID, err)
		}
		a.txs[tx.TxID] = &StoredTransaction{Type: tx.Type, Amount: tx.Amount}
	case model.TypeDispute:
		if err := a.Dispute(tx.TxID); err != nil {
			return fmt.Errorf("%s tx %d: %w", tx.Type, tx.TxID, err)
		}
	case model.TypeResolve:
		if err := a.Resolve(tx.TxID); err != nil {
			return fmt.Errorf("%s tx %d: %w", tx.Type, tx.TxID, err)
		}
	case model.TypeChargeback:
		if err := a.Chargeback(tx.TxID); err != nil {
			return fmt.Errorf("%s tx %d: %w", tx.Type, tx.TxID, err)
		}
	default:
		return &UnrecognizedTypeError{Raw: tx.RawType}
	}
	return nil
}

// Stored returns the retained transaction for id, if any.
func (a *Account) Stored(txID uint32) (StoredTransaction, bool) {
	tx, ok := a.txs[txID]
	if !ok {
		return StoredTransaction{}, false
	}
	return *tx, true
}

// TxIDs returns the ids of all stored transactions in ascending order.
func (a *Account) TxIDs() []uint32 {
	ids := make([]uint32, 0, len(a.txs))
	for id := range a.txs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

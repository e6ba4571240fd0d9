package engine

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/settle-dev/settle/internal/ledger"
	"github.com/settle-dev/settle/internal/model"
)

// FailedRecord pairs a rejected input row with the reason it was rejected.
// Fields holds the row exactly as it appeared in the input.
type FailedRecord struct {
	Line   int
	Fields []string
	Reason string
}

// Options configure a run.
type Options struct {
	// AllowRedispute propagates to every account the run creates; see
	// ledger.Account.AllowRedispute.
	AllowRedispute bool

	// Logger receives per-rejection debug entries and a run summary.
	// Nil means no logging.
	Logger *zap.Logger
}

// Engine folds an ordered stream of transaction records into per-client
// accounts. Records are applied strictly in encounter order; a record that
// cannot be applied is recorded with its reason and the run continues.
type Engine struct {
	opts      Options
	log       *zap.Logger
	accounts  map[uint16]*ledger.Account
	failed    []FailedRecord
	processed int
}

// New returns an engine ready to run.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		opts:     opts,
		log:      log,
		accounts: make(map[uint16]*ledger.Account),
	}
}

// Run applies records in order. It never aborts: every record either updates
// an account or lands on the failed list.
func (e *Engine) Run(records []model.Record) {
	for _, rec := range records {
		if err := e.apply(rec); err != nil {
			e.fail(rec, err)
			continue
		}
		e.processed++
	}

	e.log.Info("run complete",
		zap.Int("processed", e.processed),
		zap.Int("failed", len(e.failed)),
		zap.Int("accounts", len(e.accounts)))
}

// apply vets one record and dispatches it to its account. Checks that must
// not materialize an account (parse errors, unrecognized types, non-positive
// amounts) run before the get-or-create.
func (e *Engine) apply(rec model.Record) error {
	if rec.Err != nil {
		return rec.Err
	}

	tx := rec.Tx
	if tx.Type == model.TypeUnknown {
		return &ledger.UnrecognizedTypeError{Raw: tx.RawType}
	}
	if tx.Type.Monetary() && !tx.Amount.IsPositive() {
		return fmt.Errorf("%s tx %d: %w", tx.Type, tx.TxID, ledger.ErrInvalidAmount)
	}

	return e.account(tx.Client).Apply(tx)
}

func (e *Engine) fail(rec model.Record, err error) {
	e.failed = append(e.failed, FailedRecord{
		Line:   rec.Line,
		Fields: rec.Fields,
		Reason: err.Error(),
	})
	e.log.Debug("record rejected",
		zap.Int("line", rec.Line),
		zap.Strings("fields", rec.Fields),
		zap.String("reason", err.Error()))
}

// account returns the client's account, creating it on first use.
func (e *Engine) account(client uint16) *ledger.Account {
	a, ok := e.accounts[client]
	if !ok {
		a = ledger.NewAccount(client)
		a.AllowRedispute = e.opts.AllowRedispute
		e.accounts[client] = a
	}
	return a
}

// Accounts returns every account the run touched, ascending by client id.
func (e *Engine) Accounts() []*ledger.Account {
	out := make([]*ledger.Account, 0, len(e.accounts))
	for _, a := range e.accounts {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *ledger.Account) int {
		return int(a.Client) - int(b.Client)
	})
	return out
}

// Failed returns the rejected records in the order they were encountered.
func (e *Engine) Failed() []FailedRecord {
	return e.failed
}

// Processed returns how many records applied successfully.
func (e *Engine) Processed() int {
	return e.processed
}

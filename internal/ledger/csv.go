package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Header is the CSV header for the accounts report.
const Header = "client,available,held,total,locked"

const (
	numFields    = 5
	colClient    = 0
	colAvailable = 1
	colHeld      = 2
	colTotal     = 3
	colLocked    = 4
)

// MarshalAccount converts an Account to a CSV row. Monetary fields carry
// exactly four decimal places.
func MarshalAccount(a *Account) []string {
	row := make([]string, numFields)
	row[colClient] = strconv.FormatUint(uint64(a.Client), 10)
	row[colAvailable] = a.Available.StringFixed(4)
	row[colHeld] = a.Held.StringFixed(4)
	row[colTotal] = a.Total.StringFixed(4)
	row[colLocked] = strconv.FormatBool(a.Locked)
	return row
}

// UnmarshalAccount converts a CSV row back into an account snapshot. Stored
// transaction history is not part of the report and is not restored.
func UnmarshalAccount(record []string) (*Account, error) {
	if len(record) != numFields {
		return nil, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	client, err := strconv.ParseUint(record[colClient], 10, 16)
	if err != nil {
		return nil, fmt.Errorf("parsing client %q: %w", record[colClient], err)
	}

	available, err := decimal.NewFromString(record[colAvailable])
	if err != nil {
		return nil, fmt.Errorf("parsing available %q: %w", record[colAvailable], err)
	}
	held, err := decimal.NewFromString(record[colHeld])
	if err != nil {
		return nil, fmt.Errorf("parsing held %q: %w", record[colHeld], err)
	}
	total, err := decimal.NewFromString(record[colTotal])
	if err != nil {
		return nil, fmt.Errorf("parsing total %q: %w", record[colTotal], err)
	}

	locked, err := strconv.ParseBool(record[colLocked])
	if err != nil {
		return nil, fmt.Errorf("parsing locked %q: %w", record[colLocked], err)
	}

	a := NewAccount(uint16(client))
	a.Available = available
	a.Held = held
	a.Total = total
	a.Locked = locked
	return a, nil
}

// WriteAccounts writes the accounts report (including header). Callers pass
// accounts already ordered by ascending client id.
func WriteAccounts(w io.Writer, accounts []*Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, a := range accounts {
		if err := cw.Write(MarshalAccount(a)); err != nil {
			return fmt.Errorf("writing client %d: %w", a.Client, err)
		}
	}
	return cw.Error()
}

// ReadAccounts reads an accounts report written by WriteAccounts.
func ReadAccounts(r io.Reader) ([]*Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var accounts []*Account
	for i, rec := range records[1:] {
		a, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

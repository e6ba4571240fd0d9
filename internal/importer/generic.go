package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/settle-dev/settle/internal/model"
)

// GenericParser reads the canonical type,client,tx,amount layout. The header
// row is optional; ragged rows are tolerated (reference rows may omit the
// amount column) and each field is trimmed of surrounding whitespace.
type GenericParser struct{}

const (
	numFields = 4
	minFields = 3
	colType   = 0
	colClient = 1
	colTx     = 2
	colAmount = 3
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads all rows from a transaction file. Rows that fail to
// deserialize come back as records carrying their error so the caller can
// report them; only a reader-level failure aborts the file.
func (p *GenericParser) Parse(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	var records []model.Record
	first := true
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return nil, fmt.Errorf("reading transactions CSV: %w", err)
			}
			records = append(records, model.Record{
				Line: pe.Line,
				Err:  fmt.Errorf("reading row: %w", err),
			})
			continue
		}

		line, _ := cr.FieldPos(0)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		if first {
			first = false
			if isHeader(fields) {
				continue
			}
		}

		tx, err := UnmarshalTransaction(fields)
		records = append(records, model.Record{Line: line, Fields: fields, Tx: tx, Err: err})
	}
	return records, nil
}

// isHeader reports whether a row is the canonical column header.
func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(fields[colType], "type")
}

// UnmarshalTransaction converts one row into a Transaction. The type token
// itself never fails: unrecognized tokens become TypeUnknown with the raw
// token retained for reporting.
func UnmarshalTransaction(fields []string) (model.Transaction, error) {
	if len(fields) < minFields || len(fields) > numFields {
		return model.Transaction{}, fmt.Errorf("expected %d or %d fields, got %d", minFields, numFields, len(fields))
	}

	tx := model.Transaction{
		Type:    model.ParseTxType(fields[colType]),
		RawType: fields[colType],
	}

	client, err := strconv.ParseUint(fields[colClient], 10, 16)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing client %q: %w", fields[colClient], err)
	}
	tx.Client = uint16(client)

	id, err := strconv.ParseUint(fields[colTx], 10, 32)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing tx %q: %w", fields[colTx], err)
	}
	tx.TxID = uint32(id)

	if len(fields) == numFields && fields[colAmount] != "" {
		amount, err := decimal.NewFromString(fields[colAmount])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", fields[colAmount], err)
		}
		if err := checkPrecision(amount); err != nil {
			return model.Transaction{}, err
		}
		tx.Amount = amount
	} else if tx.Type.Monetary() {
		return model.Transaction{}, fmt.Errorf("%s requires an amount", tx.Type)
	}

	return tx, nil
}

// checkPrecision rejects amounts finer than four decimal places.
func checkPrecision(amount decimal.Decimal) error {
	scale := decimal.NewFromInt(10000)
	shifted := amount.Mul(scale)
	if !shifted.Equal(shifted.Floor()) {
		return fmt.Errorf("amount %s has more than 4 decimal places", amount)
	}
	return nil
}

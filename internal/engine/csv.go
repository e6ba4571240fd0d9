package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// FailedHeader is the CSV header for the failed-records report.
const FailedHeader = "type,client,tx,amount,error"

const numFailedFields = 5

// MarshalFailed converts a rejected record to a CSV row: the original fields
// padded out to the canonical four columns, then the reason. The reason is
// always the final column.
func MarshalFailed(f FailedRecord) []string {
	row := make([]string, 0, numFailedFields)
	row = append(row, f.Fields...)
	for len(row) < numFailedFields-1 {
		row = append(row, "")
	}
	return append(row, f.Reason)
}

// WriteFailed writes the failed-records report (including header) in the
// order the records were rejected.
func WriteFailed(w io.Writer, failed []FailedRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(FailedHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, f := range failed {
		if err := cw.Write(MarshalFailed(f)); err != nil {
			return fmt.Errorf("writing line %d: %w", f.Line, err)
		}
	}
	return cw.Error()
}

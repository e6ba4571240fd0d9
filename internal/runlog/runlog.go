package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one row in the run log: the audit record of a single processing
// run over one input file.
type Entry struct {
	Timestamp  time.Time
	RunID      string // machine id, one uuid per run
	Ref        string // human-facing reference, e.g. "2025-01-003"
	Input      string // input file name
	Accounts   int    // accounts in the final report
	Failed     int    // rejected records
	CommitHash string // workspace commit recording the outputs, if any
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,run_id,ref,input,accounts,failed,commit_hash"

const (
	numFields     = 7
	logDir        = "logs"
	logFile       = "logs/run-log.csv"
	colTimestamp  = 0
	colRunID      = 1
	colRef        = 2
	colInput      = 3
	colAccounts   = 4
	colFailed     = 5
	colCommitHash = 6
)

// NewRunID returns a fresh run id.
func NewRunID() string {
	return uuid.NewString()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colRef] = e.Ref
	row[colInput] = e.Input
	row[colAccounts] = strconv.Itoa(e.Accounts)
	row[colFailed] = strconv.Itoa(e.Failed)
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	accounts, err := strconv.Atoi(record[colAccounts])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing accounts %q: %w", record[colAccounts], err)
	}

	failed, err := strconv.Atoi(record[colFailed])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing failed %q: %w", record[colFailed], err)
	}

	return Entry{
		Timestamp:  ts,
		RunID:      record[colRunID],
		Ref:        record[colRef],
		Input:      record[colInput],
		Accounts:   accounts,
		Failed:     failed,
		CommitHash: record[colCommitHash],
	}, nil
}

// Append writes entries to <root>/logs/run-log.csv, creating the file and
// header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/run-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// Refs returns the run references of entries, in order. Feed these to
// runref.Next to pick the next reference.
func Refs(entries []Entry) []string {
	refs := make([]string, len(entries))
	for i, e := range entries {
		refs[i] = e.Ref
	}
	return refs
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

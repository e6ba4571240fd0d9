package runref

import (
	"fmt"
	"strconv"
	"strings"
)

// Format returns a run reference like "2025-01-001": year, month and a
// per-month sequence number.
func Format(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// Parse parses "2025-01-001" into year, month, seq.
func Parse(ref string) (year, month, seq int, err error) {
	parts := strings.SplitN(ref, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid run ref format: %q", ref)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in run ref %q: %w", ref, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in run ref %q: %w", ref, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in run ref %q: %w", ref, err)
	}

	return year, month, seq, nil
}

// Next returns the reference that follows the highest sequence among refs
// falling in the given year and month. Refs that do not parse, or that
// belong to another month, are ignored; the sequence restarts at 001 each
// month.
func Next(refs []string, year, month int) string {
	maxSeq := 0
	for _, ref := range refs {
		y, m, seq, err := Parse(ref)
		if err != nil || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return Format(year, month, maxSeq+1)
}

package model

// Record is one input row as read from a transaction file: either a parsed
// Transaction or the error that prevented parsing. Raw fields are kept
// either way so the failure report can echo the original row.
type Record struct {
	Line   int
	Fields []string
	Tx     Transaction
	Err    error
}

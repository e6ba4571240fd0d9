package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_CleanFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "input.csv",
		"type,client,tx,amount\n"+
			"deposit,1,1,5.0\n"+
			"dispute,1,1\n")

	out, err := runSettle(t, "verify", input)
	require.NoError(t, err, "verify failed: %s", out)
	assert.Contains(t, out, "2 rows OK")
}

func TestVerify_MalformedRows(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "input.csv",
		"deposit,1,1,5.0\n"+
			"deposit,abc,2,5.0\n"+
			"deposit,1,3,5.00001\n")

	out, err := runSettle(t, "verify", input)
	require.Error(t, err, "verify should fail on malformed rows")
	assert.Contains(t, out, "2 of 3 rows malformed")
	assert.Contains(t, out, `parsing client "abc"`)
	assert.Contains(t, out, "more than 4 decimal places")
}

func TestVerify_UnrecognizedTypeIsNotMalformed(t *testing.T) {
	// Unknown type tokens are an engine concern, not a parse failure.
	dir := t.TempDir()
	input := writeInput(t, dir, "input.csv", "transfer,1,1,5.0\n")

	out, err := runSettle(t, "verify", input)
	require.NoError(t, err, "verify failed: %s", out)
	assert.Contains(t, out, "1 rows OK")
}

func TestVerify_MissingFile(t *testing.T) {
	_, err := runSettle(t, "verify", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

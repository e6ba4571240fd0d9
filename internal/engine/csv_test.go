package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalFailed_PadsRaggedRows(t *testing.T) {
	f := FailedRecord{
		Fields: []string{"dispute", "1", "9"},
		Reason: "dispute tx 9: referenced transaction not found",
	}
	assert.Equal(t,
		[]string{"dispute", "1", "9", "", "dispute tx 9: referenced transaction not found"},
		MarshalFailed(f))
}

func TestMarshalFailed_FullRow(t *testing.T) {
	f := FailedRecord{
		Fields: []string{"withdrawal", "1", "4", "10.0"},
		Reason: "withdrawal tx 4: insufficient funds",
	}
	assert.Equal(t,
		[]string{"withdrawal", "1", "4", "10.0", "withdrawal tx 4: insufficient funds"},
		MarshalFailed(f))
}

func TestWriteFailed(t *testing.T) {
	var buf strings.Builder
	err := WriteFailed(&buf, []FailedRecord{
		{Fields: []string{"withdrawal", "1", "4", "10.0"}, Reason: "withdrawal tx 4: insufficient funds"},
		{Fields: []string{"dispute", "1", "9"}, Reason: "dispute tx 9: referenced transaction not found"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "type,client,tx,amount,error", lines[0])
	assert.Equal(t, "withdrawal,1,4,10.0,withdrawal tx 4: insufficient funds", lines[1])
	assert.Equal(t, "dispute,1,9,,dispute tx 9: referenced transaction not found", lines[2])
}

func TestWriteFailed_QuotesReasonsWithCommas(t *testing.T) {
	var buf strings.Builder
	err := WriteFailed(&buf, []FailedRecord{
		{Fields: []string{"deposit", "1", "1", "5.0"}, Reason: "bad, very bad"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `deposit,1,1,5.0,"bad, very bad"`, lines[1])
}

func TestWriteFailed_Empty(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteFailed(&buf, nil))
	assert.Equal(t, "type,client,tx,amount,error\n", buf.String())
}

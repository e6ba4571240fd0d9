package ledger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalAccount_FourDecimalPlaces(t *testing.T) {
	a := NewAccount(7)
	a.Available = dec("6")
	a.Held = dec("0.5")
	a.Total = dec("6.5")

	row := MarshalAccount(a)
	assert.Equal(t, []string{"7", "6.0000", "0.5000", "6.5000", "false"}, row)
}

func TestMarshalAccount_Locked(t *testing.T) {
	a := NewAccount(2)
	a.Locked = true

	row := MarshalAccount(a)
	assert.Equal(t, "true", row[colLocked])
	assert.Equal(t, "0.0000", row[colAvailable])
}

func TestWriteAccounts(t *testing.T) {
	one := NewAccount(1)
	one.Available = dec("6")
	one.Total = dec("6")
	two := NewAccount(2)
	two.Locked = true

	var buf bytes.Buffer
	err := WriteAccounts(&buf, []*Account{one, two})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, "1,6.0000,0.0000,6.0000,false", lines[1])
	assert.Equal(t, "2,0.0000,0.0000,0.0000,true", lines[2])
}

func TestReadAccounts(t *testing.T) {
	a := NewAccount(3)
	a.Available = dec("1.25")
	a.Held = dec("0.75")
	a.Total = dec("2")
	a.Locked = true

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, []*Account{a}))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint16(3), got[0].Client)
	assert.True(t, got[0].Available.Equal(dec("1.25")))
	assert.True(t, got[0].Held.Equal(dec("0.75")))
	assert.True(t, got[0].Total.Equal(dec("2")))
	assert.True(t, got[0].Locked)
}

func TestReadAccounts_Empty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnmarshalAccount_BadFieldCount(t *testing.T) {
	_, err := UnmarshalAccount([]string{"1", "2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 fields")
}

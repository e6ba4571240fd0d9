package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTxType(t *testing.T) {
	tests := []struct {
		token string
		want  TxType
	}{
		{"deposit", TypeDeposit},
		{"Deposit", TypeDeposit},
		{"WITHDRAWAL", TypeWithdrawal},
		{" dispute ", TypeDispute},
		{"Resolve", TypeResolve},
		{"chargeBack", TypeChargeback},
		{"transfer", TypeUnknown},
		{"", TypeUnknown},
		{"deposits", TypeUnknown},
	}
	for _, tt := range tests {
		got := ParseTxType(tt.token)
		assert.Equal(t, tt.want, got, "token %q", tt.token)
	}
}

func TestMonetary(t *testing.T) {
	assert.True(t, TypeDeposit.Monetary())
	assert.True(t, TypeWithdrawal.Monetary())
	assert.False(t, TypeDispute.Monetary())
	assert.False(t, TypeResolve.Monetary())
	assert.False(t, TypeChargeback.Monetary())
	assert.False(t, TypeUnknown.Monetary())
}

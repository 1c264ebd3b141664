package amount

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "zero", input: "0", want: "0"},
		{name: "plain", input: "180", want: "180"},
		{name: "beyond uint64", input: "123456789012345678901234567890", want: "123456789012345678901234567890"},
		{name: "fraction", input: "1.5", wantErr: ErrNotInteger},
		{name: "negative", input: "-3", wantErr: ErrNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := Parse("abc")
	require.Error(t, err)
}

func TestSubNeverNegative(t *testing.T) {
	_, err := New(5).Sub(New(6))
	require.ErrorIs(t, err, ErrNegative)

	got, err := New(6).Sub(New(5))
	require.NoError(t, err)
	assert.True(t, got.Equal(New(1)))
}

func TestMulBPFloors(t *testing.T) {
	assert.Equal(t, "0", New(99).MulBP(100).String())
	assert.Equal(t, "1", New(199).MulBP(100).String())
	assert.Equal(t, "18", New(180).MulBP(1000).String())
	assert.Equal(t, "0", Zero.MulBP(9999).String())
}

func TestJSON(t *testing.T) {
	var v struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"42","b":7}`), &v))
	assert.True(t, v.A.Equal(New(42)))
	assert.True(t, v.B.Equal(New(7)))

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"42","b":"7"}`, string(out))
}

func TestUint64(t *testing.T) {
	v, ok := New(20).Uint64()
	require.True(t, ok)
	assert.Equal(t, uint64(20), v)

	_, ok = MustParse("123456789012345678901234567890").Uint64()
	assert.False(t, ok)
}

func TestMul(t *testing.T) {
	assert.Equal(t, "20", New(4).Mul(New(5)).String())
	assert.Equal(t, "0", New(4).Mul(Zero).String())
	assert.Equal(t, Zero, New(4).Mul(Zero))
	assert.Equal(t, "340282366920938463463374607431768211456",
		MustParse("18446744073709551616").Mul(MustParse("18446744073709551616")).String())
}

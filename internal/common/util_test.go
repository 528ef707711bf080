package common

import (
	"encoding/hex"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString_SessionSize(t *testing.T) {
	s, err := MakeRandHexString(SessionIDBytes)
	require.NoError(t, err)
	assert.Len(t, s, 64)

	_, err = hex.DecodeString(s)
	require.NoError(t, err, "must be valid hex")
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestMakeRandHexString_EntropyHint(t *testing.T) {
	a, err := MakeRandHexString(32)
	require.NoError(t, err)
	b, err := MakeRandHexString(32)
	require.NoError(t, err)
	if a == b {
		t.Logf("warning: two MakeRandHexString(32) results are identical; extremely unlikely")
	}
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 6), buf)

	WipeByteArray(nil)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{" a , b ,, c ", []string{"a", "b", "c"}},
		{",,,", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "***", Mask("abc"))
	assert.Equal(t, "*****6789", Mask("123456789"))
	assert.Equal(t, "**", Mask("ключ"[:4]))
	assert.Equal(t, "***ключ", Mask("ABCключ"))
	assert.True(t, utf8.ValidString(Mask("пароль-ключ")))
}

package cryptox

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTPCodeStaysInRange(t *testing.T) {
	t.Parallel()

	for range 200 {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.True(t, IsOTPFormat(code))

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestIsOTPFormat(t *testing.T) {
	t.Parallel()

	require.True(t, IsOTPFormat("123456"))
	require.True(t, IsOTPFormat("000000")) // format only; range is the generator's concern

	for _, s := range []string{"", "12345", "1234567", "12345a", " 123456", "123456 ", "12 456"} {
		require.False(t, IsOTPFormat(s), "input %q", s)
	}
}

func TestFingerprintTokenIsDeterministic(t *testing.T) {
	t.Parallel()

	a := FingerprintToken("some-token")
	b := FingerprintToken("some-token")
	c := FingerprintToken("other-token")

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 43)
}

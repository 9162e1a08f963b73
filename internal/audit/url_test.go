package audit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTarget_Valid(t *testing.T) {
	t.Parallel()

	u, err := ParseTarget("https://Example.COM/page#section")
	require.NoError(t, err)
	require.Equal(t, "example.com", u.Hostname())
	require.Equal(t, "https://example.com/page", u.String())
}

func TestParseTarget_DefaultsToHTTPS(t *testing.T) {
	t.Parallel()

	u, err := ParseTarget("example.com/path")
	require.NoError(t, err)
	require.Equal(t, "https", u.Scheme)
	require.Equal(t, "example.com", u.Hostname())
}

func TestParseTarget_StripsDefaultPorts(t *testing.T) {
	t.Parallel()

	u, err := ParseTarget("https://example.com:443/")
	require.NoError(t, err)
	require.Equal(t, "example.com", u.Host)

	u, err = ParseTarget("http://example.com:80/")
	require.NoError(t, err)
	require.Equal(t, "example.com", u.Host)
}

func TestParseTarget_Missing(t *testing.T) {
	t.Parallel()

	_, err := ParseTarget("  ")
	require.ErrorIs(t, err, ErrMissingURL)
}

func TestParseTarget_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseTarget("ftp://example.com")
	require.ErrorIs(t, err, ErrInvalidURL)

	_, err = ParseTarget("https://")
	require.ErrorIs(t, err, ErrInvalidURL)
}

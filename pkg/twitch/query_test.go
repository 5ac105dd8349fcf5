package twitch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtendURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "clips", ExtendURL("clips", "id", nil))
	require.Equal(t, "clips", ExtendURL("clips", "id", []string{}))
	require.Equal(t, "clips?id=AwkwardHelplessSalamander", ExtendURL("clips", "id", []string{"AwkwardHelplessSalamander"}))
	require.Equal(t, "clips?id=a&id=b&id=c", ExtendURL("clips", "id", []string{"a", "b", "c"}))
	require.Equal(t, "users?login=a+b%26c", ExtendURL("users", "login", []string{"a b&c"}))
}

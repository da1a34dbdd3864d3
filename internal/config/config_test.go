package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	require.Nil(t, CSV(""))
	require.Equal(t, []string{"a"}, CSV("a"))
	require.Equal(t, []string{"a", "b"}, CSV(" a , b ,"))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("ORDERS_TEST_STR", "value")
	require.Equal(t, "value", EnvDefault("ORDERS_TEST_STR", "def"))
	require.Equal(t, "def", EnvDefault("ORDERS_TEST_MISSING", "def"))

	t.Setenv("ORDERS_TEST_INT", "8080")
	require.Equal(t, 8080, EnvIntDefault("ORDERS_TEST_INT", 3000))
	require.Equal(t, 3000, EnvIntDefault("ORDERS_TEST_INT_MISSING", 3000))

	t.Setenv("ORDERS_TEST_BAD_INT", "nope")
	require.Equal(t, 3000, EnvIntDefault("ORDERS_TEST_BAD_INT", 3000))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_URL", "")

	cfg := Load()
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, "http://localhost:3000", cfg.APIURL)
}

package xviper

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	v, err := New()
	require.NoError(err)
	assert.NotNil(v)
}

func TestConfigure(t *testing.T) {
	t.Run("NilViper", func(t *testing.T) {
		v, err := Configure(nil, func(*viper.Viper) error {
			t.Fatal("options should not be applied to a nil Viper")
			return nil
		})

		assert.Nil(t, v)
		assert.NoError(t, err)
	})

	t.Run("Error", func(t *testing.T) {
		var (
			assert        = assert.New(t)
			expectedError = errors.New("expected")
			secondCalled  bool
		)

		v, err := Configure(
			viper.New(),
			func(*viper.Viper) error { return expectedError },
			func(*viper.Viper) error { secondCalled = true; return nil },
		)

		assert.Nil(v)
		assert.Equal(expectedError, err)
		assert.False(secondCalled)
	})
}

func TestStdOptions(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	t.Setenv("STDTEST_LOG_LEVEL", "DEBUG")
	t.Setenv("STDTEST_TIMEOUT", "30s")

	v, err := New(
		StdOptions("stdtest"),
		ApplyDefaults(Defaults{"log.level": "ALL", "timeout": "1s", "other": 12}),
	)

	require.NoError(err)
	require.NotNil(v)

	assert.Equal("DEBUG", v.GetString("log.level"))
	assert.Equal("30s", v.GetString("timeout"))
	assert.Equal(12, v.GetInt("other"))
}

func TestBindEnv(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	t.Setenv("BINDENVTEST_EXACT", "1234")

	v, err := New(
		StdOptions("prefixed"),
		BindEnv("exact", "BINDENVTEST_EXACT"),
	)

	require.NoError(err)
	assert.Equal("1234", v.GetString("exact"))
}

func TestBindPFlag(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		flagSet = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)

	flagSet.String("log-level", "", "the log level")
	require.NoError(flagSet.Parse([]string{"--log-level", "WARN"}))

	v, err := New(
		ApplyDefaults(Defaults{"log.level": "ALL"}),
		BindPFlag("log.level", flagSet.Lookup("log-level")),
	)

	require.NoError(err)
	assert.Equal("WARN", v.GetString("log.level"))
}

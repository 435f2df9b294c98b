package server

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlagSet(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		output  bytes.Buffer
		flagSet = NewFlagSet("test", &output)
	)

	for _, name := range []string{FileFlag, NameFlag, LogLevelFlag, MetricsAddressFlag} {
		assert.NotNil(flagSet.Lookup(name), name)
	}

	assert.Equal("f", flagSet.Lookup(FileFlag).Shorthand)
	assert.Equal("n", flagSet.Lookup(NameFlag).Shorthand)
	assert.Equal("test", flagSet.Lookup(NameFlag).DefValue)

	err := flagSet.Parse([]string{"--help"})
	require.Error(err)
	assert.True(errors.Is(err, pflag.ErrHelp))
	assert.Contains(output.String(), LogLevelFlag)
}

func TestNewViper(t *testing.T) {
	var (
		assert = assert.New(t)
		v      = NewViper("test")
	)

	t.Setenv(PortEnvironmentVariable, "1234")
	t.Setenv("TEST_PORT", "5678")
	assert.Equal("1234", v.GetString(PortKey))
	assert.Equal(DefaultShutdownTimeout, v.GetDuration(ShutdownTimeoutKey))
}

func TestParseAndBind(t *testing.T) {
	t.Run("Flags", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)

			v       = NewViper("test")
			flagSet = NewFlagSet("test", nil)
		)

		require.NoError(ParseAndBind(v, flagSet, []string{"--log-level", "ERROR", "--metrics-address", ":9999", "LOCAL"}))
		assert.Equal("ERROR", v.GetString(LogLevelKey))
		assert.Equal(":9999", v.GetString(MetricsAddressKey))
		assert.Equal([]string{"LOCAL"}, flagSet.Args())
	})

	t.Run("Unset", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)

			v       = NewViper("test")
			flagSet = NewFlagSet("test", nil)
		)

		require.NoError(ParseAndBind(v, flagSet, nil))
		assert.Equal("ALL", v.GetString(LogLevelKey))
		assert.Empty(v.GetString(MetricsAddressKey))
		assert.Empty(flagSet.Args())
	})

	t.Run("Error", func(t *testing.T) {
		var (
			output  bytes.Buffer
			v       = NewViper("test")
			flagSet = NewFlagSet("test", &output)
		)

		assert.Error(t, ParseAndBind(v, flagSet, []string{"--log-level"}))
		assert.Contains(t, output.String(), "needs an argument")
	})

	for _, arguments := range [][]string{{"-DLOCAL=true"}, {"--mode=LOCAL"}, {"-x"}, {"--nosuch", "--log-level", "WARN"}} {
		t.Run("Unknown"+arguments[0], func(t *testing.T) {
			var (
				assert  = assert.New(t)
				require = require.New(t)

				output  bytes.Buffer
				v       = NewViper("test")
				flagSet = NewFlagSet("test", &output)
			)

			require.NoError(ParseAndBind(v, flagSet, arguments))
			assert.Empty(output.String())
			if len(arguments) > 1 {
				assert.Equal("WARN", v.GetString(LogLevelKey))
			}
		})
	}
}

func TestReadConfig(t *testing.T) {
	t.Run("NameNotFound", func(t *testing.T) {
		var (
			v       = NewViper("nosuchconfiguration")
			flagSet = NewFlagSet("nosuchconfiguration", nil)
		)

		require.NoError(t, ParseAndBind(v, flagSet, nil))
		assert.NoError(t, ReadConfig(v, flagSet))
	})

	t.Run("Name", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)

			directory = t.TempDir()
			v         = NewViper("test")
			flagSet   = NewFlagSet("test", nil)
		)

		require.NoError(os.WriteFile(filepath.Join(directory, "named.json"), []byte(`{"maxConnections": 12}`), 0600))
		v.AddConfigPath(directory)

		require.NoError(ParseAndBind(v, flagSet, []string{"--name", "named"}))
		require.NoError(ReadConfig(v, flagSet))
		assert.Equal(12, v.GetInt(MaxConnectionsKey))
	})

	t.Run("FileNotFound", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)

			file    = filepath.Join(t.TempDir(), "nosuch.yaml")
			v       = NewViper("test")
			flagSet = NewFlagSet("test", nil)
		)

		require.NoError(ParseAndBind(v, flagSet, []string{"-f", file}))
		err := ReadConfig(v, flagSet)

		var ce *ConfigurationError
		require.True(errors.As(err, &ce))
		assert.Equal(FileFlag, ce.Key)
		assert.Equal(file, ce.Value)
	})

	t.Run("Malformed", func(t *testing.T) {
		var (
			require = require.New(t)

			file    = filepath.Join(t.TempDir(), "malformed.json")
			v       = NewViper("test")
			flagSet = NewFlagSet("test", nil)
		)

		require.NoError(os.WriteFile(file, []byte(`{"maxConnections": `), 0600))
		require.NoError(ParseAndBind(v, flagSet, []string{"--file", file}))

		var ce *ConfigurationError
		assert.True(t, errors.As(ReadConfig(v, flagSet), &ce))
	})
}

package server

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer that can be written by a running server while a test reads it
type syncBuffer struct {
	lock   sync.Mutex
	buffer bytes.Buffer
}

func (sb *syncBuffer) Write(p []byte) (int, error) {
	sb.lock.Lock()
	defer sb.lock.Unlock()
	return sb.buffer.Write(p)
}

func (sb *syncBuffer) String() string {
	sb.lock.Lock()
	defer sb.lock.Unlock()
	return sb.buffer.String()
}

func TestMainHelp(t *testing.T) {
	var (
		assert         = assert.New(t)
		stdout, stderr bytes.Buffer
	)

	assert.Equal(ExitSuccess, run("maintest", []string{"--help"}, &stdout, &stderr, nil, nil))
	assert.Contains(stderr.String(), "--file")
	assert.Empty(stdout.String())
}

func TestMainUsage(t *testing.T) {
	var (
		assert         = assert.New(t)
		stdout, stderr bytes.Buffer
	)

	assert.Equal(ExitUsage, run("maintest", []string{"--metrics-address"}, &stdout, &stderr, nil, nil))
	assert.Contains(stderr.String(), "metrics-address")
	assert.Empty(stdout.String())
}

// terminated returns a signal channel that already holds SIGTERM, so that run exits as soon as it has started
func terminated() <-chan os.Signal {
	signals := make(chan os.Signal, 1)
	signals <- syscall.SIGTERM
	return signals
}

func TestMainFlagLikeArgument(t *testing.T) {
	t.Run("Local", func(t *testing.T) {
		for _, first := range []string{"-DLOCAL=true", "--mode=LOCAL"} {
			t.Run(first, func(t *testing.T) {
				var (
					assert         = assert.New(t)
					stdout, stderr bytes.Buffer
				)

				unsetPort(t)
				exitCode := run("maintest", []string{first, "--log-level", "ERROR"}, &stdout, &stderr, nil, terminated())
				if exitCode == ExitFailure && strings.Contains(stderr.String(), "address already in use") {
					t.Skip("the local address is in use")
				}

				assert.Equal(ExitSuccess, exitCode, stderr.String())
				assert.Equal("maintest started at http://localhost:8080/\n", stdout.String())
			})
		}
	})

	t.Run("Production", func(t *testing.T) {
		var (
			assert         = assert.New(t)
			stdout, stderr bytes.Buffer
		)

		t.Setenv(PortEnvironmentVariable, "0")
		assert.Equal(ExitSuccess, run("maintest", []string{"-x", "--log-level", "ERROR"}, &stdout, &stderr, nil, terminated()))
		assert.Regexp(`^maintest started at http://0\.0\.0\.0:\d+/\n$`, stdout.String())
		assert.Empty(stderr.String())
	})
}

func TestMainMissingPort(t *testing.T) {
	var (
		assert         = assert.New(t)
		stdout, stderr bytes.Buffer
	)

	unsetPort(t)
	assert.Equal(ExitFailure, run("maintest", []string{"--log-level", "ERROR"}, &stdout, &stderr, nil, nil))
	assert.Contains(stderr.String(), PortEnvironmentVariable)
	assert.Empty(stdout.String())
}

func TestMainInvalidPort(t *testing.T) {
	var (
		assert         = assert.New(t)
		stdout, stderr bytes.Buffer
	)

	t.Setenv(PortEnvironmentVariable, "http")
	assert.Equal(ExitFailure, run("maintest", []string{"--log-level", "ERROR", "production"}, &stdout, &stderr, nil, nil))
	assert.Contains(stderr.String(), `PORT="http"`)
	assert.Empty(stdout.String())
}

func TestMainMissingFile(t *testing.T) {
	var (
		assert         = assert.New(t)
		stdout, stderr bytes.Buffer
	)

	t.Setenv(PortEnvironmentVariable, "0")
	assert.Equal(
		ExitFailure,
		run("maintest", []string{"--file", filepath.Join(t.TempDir(), "nosuch.yaml")}, &stdout, &stderr, nil, nil),
	)

	assert.NotEmpty(stderr.String())
	assert.Empty(stdout.String())
}

func TestMainInvalidConfiguration(t *testing.T) {
	var (
		assert         = assert.New(t)
		stdout, stderr bytes.Buffer
	)

	t.Setenv(PortEnvironmentVariable, "0")
	t.Setenv("MAINTEST_SHUTDOWNTIMEOUT", "forever")
	assert.Equal(ExitFailure, run("maintest", nil, &stdout, &stderr, nil, nil))
	assert.NotEmpty(stderr.String())
	assert.Empty(stdout.String())
}

func TestMainSignal(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		stdout, stderr syncBuffer
		signals        = make(chan os.Signal, 1)
		exitCode       = make(chan int, 1)
	)

	t.Setenv(PortEnvironmentVariable, "0")
	go func() {
		exitCode <- run("maintest", []string{"--log-level", "ERROR"}, &stdout, &stderr, nil, signals)
	}()

	startup := regexp.MustCompile(`^maintest started at http://0\.0\.0\.0:\d+/\n$`)
	require.Eventually(
		func() bool { return startup.MatchString(stdout.String()) },
		10*time.Second,
		10*time.Millisecond,
		"the startup line was not written",
	)

	signals <- syscall.SIGTERM
	select {
	case actual := <-exitCode:
		assert.Equal(ExitSuccess, actual)
	case <-time.After(20 * time.Second):
		assert.Fail("run did not exit after SIGTERM")
	}

	assert.Empty(stderr.String())
}

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/quickstart/logging"
	"github.com/example/quickstart/resource"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess is returned after a signal-driven shutdown or when help was requested
	ExitSuccess = 0

	// ExitFailure is returned for configuration, registration, bind, and serve failures
	ExitFailure = 1

	// ExitUsage is returned when the command line cannot be parsed
	ExitUsage = 2
)

// Main is the complete lifecycle of the application.  The mode is resolved from the raw first argument, even
// when that argument looks like a flag.  Flags and configuration are then loaded, process-wide logging is enabled,
// and the server is built with the given resource.  Main then blocks until SIGINT, SIGTERM, or a serve failure and shuts down gracefully.  The returned
// value is the process exit code.
//
// If r is nil, resource.Default() is served.
func Main(applicationName string, arguments []string, stdout, stderr io.Writer, r resource.Resource) int {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signals)
		close(signals)
	}()

	return run(applicationName, arguments, stdout, stderr, r, signals)
}

func run(applicationName string, arguments []string, stdout, stderr io.Writer, r resource.Resource, signals <-chan os.Signal) int {
	var (
		mode    = ResolveMode(arguments)
		v       = NewViper(applicationName)
		flagSet = NewFlagSet(applicationName, stderr)
	)

	if err := ParseAndBind(v, flagSet, arguments); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitSuccess
		}

		fmt.Fprintf(stderr, "%s\n", err)
		return ExitUsage
	}

	if err := ReadConfig(v, flagSet); err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return ExitFailure
	}

	c, err := NewConfiguration(v)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		return ExitFailure
	}

	logger := logging.New(&c.Log)
	defer logging.EnableAll(logger, &c.Log)()

	var (
		errorLog = logging.Error(logger)
		infoLog  = logging.Info(logger)
	)

	infoLog.Log(logging.MessageKey(), "resolved execution mode", "mode", mode, "configFile", v.ConfigFileUsed())

	launcher := &Launcher{
		Name:          applicationName,
		Viper:         v,
		Configuration: c,
		Logger:        logger,
		Resource:      r,
		Stdout:        stdout,
	}

	s, err := launcher.Build(mode)
	if err != nil {
		errorLog.Log(logging.MessageKey(), "unable to start server", logging.ErrorKey(), err)
		fmt.Fprintf(stderr, "%s\n", err)
		return ExitFailure
	}

	exitCode := ExitSuccess
	sig, err := SignalWait(logger, signals, s.Err(), os.Interrupt, syscall.SIGTERM)
	if err != nil {
		errorLog.Log(logging.MessageKey(), "server failed", logging.ErrorKey(), err)
		fmt.Fprintf(stderr, "%s\n", err)
		exitCode = ExitFailure
	} else {
		infoLog.Log(logging.MessageKey(), "exiting due to signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.shutdownTimeout())
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && exitCode == ExitSuccess {
		exitCode = ExitFailure
	}

	return exitCode
}

package logging

import (
	stdlog "log"
	"strings"

	"github.com/go-kit/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLevel maps the textual level of the given options onto a zap level.  ALL and DEBUG both
// map to zapcore.DebugLevel, and unrecognized values map to zapcore.ErrorLevel in the same
// way as NewFilter.
func ZapLevel(o *Options) zapcore.Level {
	switch strings.ToUpper(o.level()) {
	case LevelAll, "DEBUG":
		return zapcore.DebugLevel

	case "INFO":
		return zapcore.InfoLevel

	case "WARN":
		return zapcore.WarnLevel

	default:
		return zapcore.ErrorLevel
	}
}

// EnableAll is the process-wide logging initialization.  It must be called once, before any
// other subsystem logs.
//
// Output from the standard library's log package is redirected into the supplied go-kit logger,
// and zap's global logger is replaced with one that emits at the verbosity described by o.  The zap
// logger writes through the same go-kit logger, so every facility shares one sink.
//
// The returned function restores the previous global state.
func EnableAll(logger log.Logger, o *Options) func() {
	var (
		sink = log.NewStdlibAdapter(logger)

		previousOutput = stdlog.Writer()
		previousFlags  = stdlog.Flags()
		previousPrefix = stdlog.Prefix()
	)

	stdlog.SetOutput(sink)
	stdlog.SetFlags(0)
	stdlog.SetPrefix("")

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "" // go-kit supplies the timestamp
	undoZap := zap.ReplaceGlobals(
		zap.New(
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(encoderConfig),
				zapcore.AddSync(sink),
				ZapLevel(o),
			),
		),
	)

	return func() {
		undoZap()
		stdlog.SetOutput(previousOutput)
		stdlog.SetFlags(previousFlags)
		stdlog.SetPrefix(previousPrefix)
	}
}

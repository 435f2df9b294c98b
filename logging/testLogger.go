package logging

import (
	"bytes"
	"io"

	"github.com/go-kit/log"
)

// TestSink is the subset of testing.TB that test loggers write to.
type TestSink interface {
	Log(...interface{})
}

// sinkWriter hands each formatted log line to a TestSink, minus its trailing newline,
// since the testing package appends its own.
type sinkWriter struct {
	sink TestSink
}

func (w sinkWriter) Write(p []byte) (int, error) {
	w.sink.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// NewTestWriter adapts a TestSink to an io.Writer.  Each call to Write produces one entry.
func NewTestWriter(sink TestSink) io.Writer {
	return sinkWriter{sink: sink}
}

// NewTestLogger builds a logger for tests that writes through the given sink.  A nil
// Options logs everything, so that a failing test shows the full output of the server.
func NewTestLogger(o *Options, sink TestSink) log.Logger {
	if o == nil {
		o = &Options{Level: LevelAll}
	}

	base := o.loggerFactory()(NewTestWriter(sink))
	return NewFilter(log.With(base, TimestampKey(), log.DefaultTimestampUTC), o)
}

package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger *Logger

// Logger is the process wide logger. Report lines go to stdout, so logs
// default to stderr.
type Logger struct {
	*logrus.Logger
	file *os.File
}

func (l *Logger) Init() *Logger {
	l.Logger = logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	l.Level = logrus.InfoLevel
	return l
}

// SetLevelName sets the level from its name: trace, debug, info, warn,
// error or fatal.
func (l *Logger) SetLevelName(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)
	return nil
}

// AddLogFile tees every log line into logfile, appending to it. A log file
// added before is closed and replaced.
func (l *Logger) AddLogFile(logfile string) error {
	f, err := os.OpenFile(logfile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return errors.Wrapf(err, "opening log file %s", logfile)
	}
	previous := l.file
	l.file = f
	l.SetOutput(io.MultiWriter(os.Stderr, f))
	if previous != nil {
		if err := previous.Close(); err != nil {
			l.WithError(err).Warn("closing previous log file")
		}
	}
	return nil
}

// CloseLogFile stops the tee to the log file, if any.
func (l *Logger) CloseLogFile() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	l.SetOutput(os.Stderr)
	return f.Close()
}

// For returns an entry tagged with the component name.
func (l *Logger) For(component string) *logrus.Entry {
	return l.WithField("component", component)
}

func GetLogger() *Logger {
	if logger == nil {
		logger = (&Logger{}).Init()
	}
	return logger
}

// RetryableLogger adapts a logrus entry to the leveled logger interface of
// go-retryablehttp.
type RetryableLogger struct {
	Log *logrus.Entry
}

// fields turns alternating key/value pairs into logrus fields. Pairs without
// a string key are dropped.
func (r *RetryableLogger) fields(keysAndValues ...interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}

func (r *RetryableLogger) Error(msg string, keysAndValues ...interface{}) {
	r.Log.WithFields(r.fields(keysAndValues...)).Error(msg)
}

func (r *RetryableLogger) Info(msg string, keysAndValues ...interface{}) {
	r.Log.WithFields(r.fields(keysAndValues...)).Info(msg)
}

// Debug messages from the retrying client are one per request, keep them at trace.
func (r *RetryableLogger) Debug(msg string, keysAndValues ...interface{}) {
	r.Log.WithFields(r.fields(keysAndValues...)).Trace(msg)
}

func (r *RetryableLogger) Warn(msg string, keysAndValues ...interface{}) {
	r.Log.WithFields(r.fields(keysAndValues...)).Warn(msg)
}

package log

import (
	"io"
	"os"

	"storebrowse/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sends log output to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.out = w
	}
}

// WithJSON switches the formatter to JSON.
func WithJSON() Option {
	return func(l *Logger) {
		l.json = true
	}
}

// WithFile tees log output into the named file as well as the current output.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return
		}
		l.file = f
	}
}

// Logger wraps a logrus logger with a fixed set of fields.
type Logger struct {
	out    io.Writer
	file   *os.File
	json   bool
	base   *logrus.Logger
	fields logrus.Fields
}

// NewLogger creates a logger writing text to stdout unless options say otherwise.
func NewLogger(opts ...Option) *Logger {
	l := &Logger{
		out:    os.Stdout,
		fields: logrus.Fields{},
	}
	for _, opt := range opts {
		opt(l)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	if l.file != nil {
		base.SetOutput(io.MultiWriter(l.out, l.file))
	} else {
		base.SetOutput(l.out)
	}
	if l.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02 15:04:05",
			DisableColors:    true,
			DisableQuote:     true,
			QuoteEmptyFields: true,
		})
	}
	l.base = base
	return l
}

// Configure replaces the package-level logger, closing the file of the one
// it replaces.
func Configure(opts ...Option) {
	previous := logger
	logger = NewLogger(opts...)
	if previous != nil {
		_ = previous.Close()
	}
}

// Close closes the file opened by WithFile, if any.
func Close() error {
	return logger.Close()
}

// Close closes the file opened by WithFile. Loggers derived with With share
// the file and stop writing to it as well.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// SetDebug toggles DEBUG output for every logger.
func SetDebug(debug bool) {
	isDebug = debug
}

// With returns a copy of l carrying the extra fields.
func (l *Logger) With(fields ...Field) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Logger{
		out:    l.out,
		file:   l.file,
		json:   l.json,
		base:   l.base,
		fields: merged,
	}
}

// WithError attaches err and, for application errors, its kind and subject.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l.With(F("error", "<nil>"))
	}
	fields := []Field{F("error", err.Error()), F("error_kind", errors.KindOf(err).String())}
	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	return l.With(fields...)
}

func (l *Logger) entry() *logrus.Entry {
	return l.base.WithFields(l.fields)
}

func (l *Logger) Info(msg string)                          { l.entry().Info(msg) }
func (l *Logger) Infof(format string, args ...interface{}) { l.entry().Infof(format, args...) }
func (l *Logger) Warn(msg string)                          { l.entry().Warn(msg) }
func (l *Logger) Warnf(format string, args ...interface{}) { l.entry().Warnf(format, args...) }
func (l *Logger) Error(msg string)                         { l.entry().Error(msg) }
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry().Errorf(format, args...)
}

// Debug logs only when debug output is enabled.
func (l *Logger) Debug(msg string) {
	if isDebug {
		l.entry().Debug(msg)
	}
}

// Debugf logs a formatted message only when debug output is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug {
		l.entry().Debugf(format, args...)
	}
}

// LogWithFields returns the package logger carrying fields.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger carrying err's details.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// Infof logs a formatted message
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

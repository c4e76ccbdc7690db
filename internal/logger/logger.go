package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global structured logger
var Logger *zap.SugaredLogger

func init() {
	// Safe no-op logger until Initialize is called
	Logger = zap.NewNop().Sugar()
}

// Options configures the global logger
type Options struct {
	Verbose    bool      // debug level when set, warn level otherwise
	JSONOutput bool      // JSON encoding instead of console encoding
	Output     io.Writer // defaults to stderr
}

// Level returns the minimum level enabled by the options
func (o Options) Level() zapcore.Level {
	if o.Verbose {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}

// Initialize replaces the global logger according to opts
func Initialize(opts Options) error {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""

	var encoder zapcore.Encoder
	if opts.JSONOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), zap.NewAtomicLevelAt(opts.Level()))
	Logger = zap.New(core).Sugar()
	return nil
}

// Reset restores the no-op logger
func Reset() {
	Logger = zap.NewNop().Sugar()
}

// Sync flushes any buffered log entries
func Sync() error {
	return Logger.Sync()
}

// Debugw logs a debug message with key/value pairs
func Debugw(msg string, keysAndValues ...interface{}) {
	Logger.Debugw(msg, keysAndValues...)
}

// Infow logs an info message with key/value pairs
func Infow(msg string, keysAndValues ...interface{}) {
	Logger.Infow(msg, keysAndValues...)
}

// Warnw logs a warning with key/value pairs
func Warnw(msg string, keysAndValues ...interface{}) {
	Logger.Warnw(msg, keysAndValues...)
}

// Errorw logs an error with key/value pairs
func Errorw(msg string, keysAndValues ...interface{}) {
	Logger.Errorw(msg, keysAndValues...)
}

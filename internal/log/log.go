// Package log provides the process-wide logging façade: a colorized
// console core teed with a rotating file sink.
package log

import (
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	colorReset  = "\033[0m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBoldRed = "\033[1;31m"
)

// Until Init runs, the package-level functions log nowhere instead of
// dereferencing a nil logger.
var (
	baseLogger = zap.NewNop()
	log        = baseLogger.Sugar()
)

// coloredLevelEncoder mirrors the teacher's level encoding but assigns the
// exact ANSI codes the collector's Python predecessor used, including a
// distinct "critical" color for DPanic/Panic/Fatal.
func coloredLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var color, text string
	switch l {
	case zapcore.DebugLevel:
		color, text = colorCyan, "DEBUG"
	case zapcore.InfoLevel:
		color, text = colorGreen, "INFO"
	case zapcore.WarnLevel:
		color, text = colorYellow, "WARNING"
	case zapcore.ErrorLevel:
		color, text = colorRed, "ERROR"
	default:
		color, text = colorBoldRed, "CRITICAL"
	}
	enc.AppendString(color + text + colorReset)
}

func plainLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.DebugLevel:
		enc.AppendString("DEBUG")
	case zapcore.InfoLevel:
		enc.AppendString("INFO")
	case zapcore.WarnLevel:
		enc.AppendString("WARNING")
	case zapcore.ErrorLevel:
		enc.AppendString("ERROR")
	default:
		enc.AppendString("CRITICAL")
	}
}

// Init configures the package-level logger. debug raises the root level to
// DEBUG, as happens automatically under --test-run/--dry-run.
func Init(debug bool, logFile string) error {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if isatty.IsTerminal(os.Stdout.Fd()) {
		consoleCfg.EncodeLevel = coloredLevelEncoder
	} else {
		consoleCfg.EncodeLevel = plainLevelEncoder
	}
	consoleEncoder := zapcore.NewConsoleEncoder(consoleCfg)
	consoleCore := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level)

	cores := []zapcore.Core{consoleCore}

	if logFile != "" {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		fileCfg.EncodeLevel = plainLevelEncoder
		fileEncoder := zapcore.NewJSONEncoder(fileCfg)
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    5, // MiB
			MaxBackups: 5,
			Compress:   false,
		}
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(rotator), level))
	}

	baseLogger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	log = baseLogger.Sugar()

	return nil
}

// GetZapLogger returns the base zap logger for callers that need a
// *zap.Logger rather than the package-level functions.
func GetZapLogger() *zap.Logger {
	if baseLogger == nil {
		baseLogger, _ = zap.NewProduction()
		log = baseLogger.Sugar()
	}
	return baseLogger
}

// Sync flushes any buffered log entries.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

func Debug(args ...interface{})  { baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Debug(args...) }
func Debugf(t string, a ...interface{}) {
	baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Debugf(t, a...)
}
func Info(args ...interface{}) { baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Info(args...) }
func Infof(t string, a ...interface{}) {
	baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Infof(t, a...)
}
func Warn(args ...interface{}) { baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Warn(args...) }
func Warnf(t string, a ...interface{}) {
	baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Warnf(t, a...)
}
func Error(args ...interface{}) {
	baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Error(args...)
}
func Errorf(t string, a ...interface{}) {
	baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Errorf(t, a...)
}

// Critical logs at the highest severity (bold red), matching the
// collector's CRITICAL level. zap has no native Critical level, so this
// rides DPanic, which never panics outside development builds.
func Critical(args ...interface{}) {
	baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().DPanic(args...)
}

func Fatal(args ...interface{}) {
	baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Fatal(args...)
	os.Exit(1)
}
func Fatalf(t string, a ...interface{}) {
	baseLogger.WithOptions(zap.AddCallerSkip(1)).Sugar().Fatalf(t, a...)
	os.Exit(1)
}

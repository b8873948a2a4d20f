package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

func (rcc *rootCmdConfig) initLogger() error {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	switch rcc.logFormat {
	case "console", "":
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case "json":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return fmt.Errorf("unknown log format %q: use console or json", rcc.logFormat)
	}
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if rcc.verbose {
		level.SetLevel(zapcore.DebugLevel)
	}
	sink := zapcore.Lock(os.Stderr)
	if rcc.logFile != "" {
		sink = zapcore.NewMultiWriteSyncer(sink, zapcore.AddSync(&lumberjack.Logger{
			Filename:   rcc.logFile,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
		}))
	}
	rcc.logger = zap.New(zapcore.NewCore(encoder, sink, level)).Sugar()
	return nil
}

func (rcc *rootCmdConfig) syncLogger() {
	if rcc.logger != nil {
		rcc.logger.Sync()
	}
}

// Logf logs a progress message, shown only with the verbose flag.
func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	if rcc.logger == nil {
		return
	}
	rcc.logger.Debugf(format, a...)
}

/*
Elapsed logs the time spent on the named command. It is meant to be deferred
with the result of time.Now() at the start of the command.
*/
func (rcc *rootCmdConfig) Elapsed(command string, start time.Time) {
	if rcc.logger == nil {
		return
	}
	rcc.logger.Infow("elapsed time", "command", command, "milliseconds", time.Since(start).Milliseconds())
}

// Fail prints err to stderr and exits with the given code.
func (rcc *rootCmdConfig) Fail(code int, err error) {
	if rcc.logger != nil {
		rcc.logger.Debugw("command failed", "code", code, "error", err)
		rcc.syncLogger()
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}

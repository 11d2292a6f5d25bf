package common

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *zap.Logger
	once   sync.Once
)

func getLogger() *zap.Logger {
	if logger == nil {
		initLogger()
	}
	return logger
}

func GetLogger() *zap.Logger {
	logger = getLogger()
	return logger.Named("default")
}

func GetLoggerWith(name string, fields ...zap.Field) *zap.Logger {
	logger = getLogger()
	return logger.Named(name).With(fields...)
}

func newJSONEncoder() zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encoderCfg)
}

// newLambdaLogger writes JSON lines to out only. Lambda only allows writes
// under /tmp, and CloudWatch picks up stdout.
func newLambdaLogger(out zapcore.WriteSyncer) *zap.Logger {
	core := zapcore.NewCore(newJSONEncoder(), out, zap.InfoLevel)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func initLogger() {
	once.Do(func() {
		if IsLambda() {
			logger = newLambdaLogger(zapcore.Lock(os.Stdout))
			return
		}

		logsDir, found := os.LookupEnv(EnvKeyBPLogDir)
		if !found {
			dir, err := os.Getwd()
			if err != nil {
				log.Fatalf("Error getting current directory: %v", err)
			}
			logsDir = filepath.Join(dir, "logs")
		}

		if err := os.MkdirAll(logsDir, os.ModePerm); err != nil {
			log.Fatalf("Error find/create logs directory: %v", err)
		}

		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(logsDir, "app.log"),
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28,   // days
			Compress:   true, // gzip
		}

		fileCore := zapcore.NewCore(newJSONEncoder(), zapcore.AddSync(logFile), zap.InfoLevel)

		if IsProduction() {
			logger = zap.New(fileCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		} else {
			consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
			consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zap.DebugLevel)

			combinedCore := zapcore.NewTee(fileCore, consoleCore)
			logger = zap.New(combinedCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		}
	})
}

func SetTestCaptureLogger(buf *bytes.Buffer, level zapcore.Level) {
	_ = GetLogger()

	core := zapcore.NewCore(newJSONEncoder(), zapcore.AddSync(buf), level)
	logger = zap.New(core)
}

func SetTestLoggerNop() {
	_ = GetLogger()

	logger = zap.NewNop()
}

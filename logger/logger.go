package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Plain stderr loggers until InitLoggers installs the rotated ones, so
// packages can log safely from any entry point.
var (
	InfoLogger  = logrus.New()
	WarnLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// InitLoggers sets up the shared loggers. Each level writes to stdout and
// to a size-rotated file under logs/.
func InitLoggers() {
	InfoLogger = newLogger(logrus.InfoLevel, "logs/info.log")
	WarnLogger = newLogger(logrus.WarnLevel, "logs/warn.log")
	ErrorLogger = newLogger(logrus.ErrorLevel, "logs/error.log")
}

func newLogger(level logrus.Level, file string) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	rotator := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	l.SetOutput(io.MultiWriter(os.Stdout, rotator))

	return l
}

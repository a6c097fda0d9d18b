package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/autobrr/rxrule/pkg/stringutils"
)

const (
	timestampFormat = "2006-01-02 15:04:05"
	prefixWidth     = 10
)

var (
	// Internal
	logFilePath = ""
)

/* Public */

// Init configures the standard logger. Verbosity 0 is info, 1 is debug and anything above is trace.
// An empty logFile disables file output.
func Init(verbosity int, logFile string) error {
	// set level
	switch {
	case verbosity <= 0:
		logrus.SetLevel(logrus.InfoLevel)
	case verbosity == 1:
		logrus.SetLevel(logrus.DebugLevel)
	default:
		logrus.SetLevel(logrus.TraceLevel)
	}

	// set console formatter
	logrus.SetFormatter(&prefixed.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
		ForceFormatting: true,
	})
	logrus.SetOutput(os.Stderr)

	if logFile == "" {
		return nil
	}

	// set file output
	logFilePath = logFile
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    5,
		MaxBackups: 10,
		MaxAge:     14,
	}

	if _, err := rotator.Write(nil); err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	logrus.AddHook(newFileHook(rotator))
	return nil
}

// GetLogger returns an entry tagged with prefix.
func GetLogger(prefix string) *logrus.Entry {
	return logrus.WithField("prefix", stringutils.LeftJust(prefix, " ", prefixWidth))
}

func ShowUsing() {
	GetLogger("log").Infof("Using %s = %q", stringutils.LeftJust("LOG", " ", 10), logFilePath)
}

/* Private */

type fileHook struct {
	writer    io.Writer
	formatter logrus.Formatter
}

func newFileHook(w io.Writer) *fileHook {
	return &fileHook{
		writer: w,
		formatter: &prefixed.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
			DisableColors:   true,
			ForceFormatting: true,
		},
	}
}

func (h *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fileHook) Fire(entry *logrus.Entry) error {
	b, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	_, err = h.writer.Write(b)
	return err
}

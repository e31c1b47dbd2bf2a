// Package log writes diagnostics to a daily file when logs.write is set.
// Without it every call is a no-op, so the quality menu keeps the terminal to itself.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vidswitch/vidswitch/constant"
	"github.com/vidswitch/vidswitch/filesystem"
	"github.com/vidswitch/vidswitch/key"
	"github.com/vidswitch/vidswitch/where"
)

var (
	enabled bool
	logger  = logrus.New()
	discard = &logrus.Logger{Out: io.Discard, Formatter: new(logrus.TextFormatter), Hooks: make(logrus.LevelHooks), Level: logrus.PanicLevel}
)

// Setup opens today's log file and applies logs.level and logs.json.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	f, err := openFile(time.Now())
	if err != nil {
		return err
	}

	logger.SetOutput(f)
	logger.SetFormatter(formatter())
	logger.SetLevel(level())
	return nil
}

func openFile(now time.Time) (io.Writer, error) {
	name := fmt.Sprintf("%s-%s.log", constant.Vidswitch, now.Format("2006-01-02"))
	path := filepath.Join(where.Logs(), name)

	f, err := filesystem.API().OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func formatter() logrus.Formatter {
	if viper.GetBool(key.LogsJson) {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

// level falls back to info for an unknown logs.level.
func level() logrus.Level {
	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

func Error(args ...interface{}) {
	if enabled {
		logger.Error(args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if enabled {
		logger.Errorf(format, args...)
	}
}

func Warn(args ...interface{}) {
	if enabled {
		logger.Warn(args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if enabled {
		logger.Warnf(format, args...)
	}
}

func Info(args ...interface{}) {
	if enabled {
		logger.Info(args...)
	}
}

func Infof(format string, args ...interface{}) {
	if enabled {
		logger.Infof(format, args...)
	}
}

func Debug(args ...interface{}) {
	if enabled {
		logger.Debug(args...)
	}
}

func Debugf(format string, args ...interface{}) {
	if enabled {
		logger.Debugf(format, args...)
	}
}

// WithFields returns an entry carrying structured fields. It writes nowhere unless logging is enabled.
func WithFields(fields map[string]interface{}) *logrus.Entry {
	if !enabled {
		return discard.WithFields(fields)
	}
	return logger.WithFields(fields)
}

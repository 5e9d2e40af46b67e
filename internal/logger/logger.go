// Package logger builds the logrus logger of the cvpg command.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"

	"github.com/askiada/go-cvpg/internal/config"
)

// FileName is the name of the log file created in the log directory.
const FileName = "cvpg.log"

// New creates a logger writing to out with the level and format of cfg. When
// cfg sets a log directory, every entry is also written as JSON to a daily
// rotated file in that directory.
func New(cfg config.Application, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(config.ErrInvalidLogLevel, "%q", cfg.LogLevel)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(out)

	switch cfg.LogFormat {
	case config.FormatText, "":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
	case config.FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.Wrapf(config.ErrInvalidFormat, "%q", cfg.LogFormat)
	}

	if cfg.LogDir == "" {
		return logger, nil
	}

	hook, err := fileHook(cfg.LogDir, cfg.LogMaxAge)
	if err != nil {
		return nil, err
	}
	logger.AddHook(hook)

	return logger, nil
}

func fileHook(dir string, maxAge time.Duration) (logrus.Hook, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create log directory %s", dir)
	}
	path := filepath.Join(dir, FileName)

	opts := []rotatelogs.Option{
		rotatelogs.WithLinkName(path),
		rotatelogs.WithRotationTime(24 * time.Hour),
	}
	if maxAge > 0 {
		opts = append(opts, rotatelogs.WithMaxAge(maxAge))
	}
	writer, err := rotatelogs.New(path+".%Y%m%d", opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to rotate %s", path)
	}

	writers := lfshook.WriterMap{}
	for _, level := range logrus.AllLevels {
		writers[level] = writer
	}
	return lfshook.NewHook(writers, &logrus.JSONFormatter{}), nil
}

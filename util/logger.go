package util

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a text logger writing to out at the named level
// (panic, fatal, error, warn, info, debug, trace).
func NewLogger(level string, out io.Writer) (*logrus.Logger, error) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return logger, nil
}

package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process wide logger.
var Logger = logrus.New()

var once sync.Once

// Init configures Logger to write JSON lines to stdout and to a rotating file.
// An empty file name keeps stdout only. Calls after the first are no-ops.
func Init(file string, debug bool) {
	once.Do(func() {
		var out io.Writer = os.Stdout

		if file != "" {
			if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
				Logger.WithError(err).Warn("log directory unavailable, logging to stdout only")
			} else {
				out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
					Filename:   file,
					MaxSize:    10, // megabytes
					MaxBackups: 3,
					MaxAge:     28, // days
					Compress:   true,
				})
			}
		}

		Logger.SetOutput(out)
		Logger.SetFormatter(&logrus.JSONFormatter{})
		Logger.SetLevel(logrus.InfoLevel)
		if debug {
			Logger.SetLevel(logrus.DebugLevel)
		}

		Logger.WithField("file", file).Info("logger initialized")
	})
}

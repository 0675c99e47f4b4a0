package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"kanban-board-api/internal/config"
)

// Logger is the shared logrus instance used across the service.
var Logger = logrus.New()

var once sync.Once

// Init configures the shared logger from config: JSON output to stdout, and
// additionally to a size-rotated file when one is configured.
func Init(cfg *config.Config) {
	once.Do(func() {
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})

		level, err := logrus.ParseLevel(cfg.Log.Level)
		if err != nil {
			level = logrus.InfoLevel
		}
		Logger.SetLevel(level)

		var out io.Writer = os.Stdout
		if cfg.Log.File != "" {
			out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
				Filename:   cfg.Log.File,
				MaxSize:    10, // megabytes
				MaxBackups: 5,
				MaxAge:     30, // days
				Compress:   true,
			})
		}
		Logger.SetOutput(out)
	})
}

package logger

import (
	"github.com/maxaizer/job-radar/internal/config"
	log "github.com/sirupsen/logrus"
	"io"
	"os"
	"path/filepath"
)

const ErrorTypeField = "error_type"

const (
	ErrorTypeDb     = "db"
	ErrorTypeSource = "source"
	ErrorTypeNotify = "notify"
	ErrorTypeTgApi  = "tg_api"
	ErrorTypeNats   = "nats"
	ErrorTypeCycle  = "cycle"
)

const PortalField = "portal"

var logFile *os.File

func Setup(cfg config.LoggerConfig) error {

	writers := []io.Writer{os.Stdout}

	if cfg.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0755); err != nil {
			return err
		}

		file, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, file)
	}

	log.SetOutput(io.MultiWriter(writers...))
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000 -0700",
	})

	level := Level(cfg.LogLevel)
	log.SetLevel(level)
	addPrometheusHook()

	if cfg.LokiURL != "" {
		if err := addLokiHook(cfg, level); err != nil {
			log.Errorf("can't enable loki logging: %v", err)
		}
	}

	return nil
}

func Level(level config.LogLevel) log.Level {
	switch level {
	case config.LevelDebug:
		return log.DebugLevel
	case config.LevelWarning:
		return log.WarnLevel
	case config.LevelError:
		return log.ErrorLevel
	case config.LevelFatal:
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

func Cleanup() {
	stopLoki()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

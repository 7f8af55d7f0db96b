package logger

import (
	"fmt"
	"github.com/maxaizer/job-radar/internal/config"
	"github.com/maxaizer/job-radar/pkg/loki"
	log "github.com/sirupsen/logrus"
	"path/filepath"
	"strconv"
)

const lokiSourceField = "source"

var lokiPusher *loki.Pusher

type logrusAdapter struct{}

func (l *logrusAdapter) Error(msg string, args ...any) {
	log.WithFields(log.Fields{"args": args, lokiSourceField: "loki"}).Error(msg)
}

type lokiHook struct {
	pusher   *loki.Pusher
	minLevel log.Level
}

func (h *lokiHook) Fire(entry *log.Entry) error {
	if entry.Data[lokiSourceField] == "loki" {
		return nil
	}

	caller := ""
	if entry.Caller != nil {
		caller = filepath.Base(entry.Caller.Function) + ":" + strconv.Itoa(entry.Caller.Line)
	}

	fields := make(map[string]string, len(entry.Data))
	for key, value := range entry.Data {
		fields[key] = fmt.Sprint(value)
	}

	return h.pusher.Push(loki.LogEntry{
		Time:    entry.Time,
		Level:   entry.Level.String(),
		Message: entry.Message,
		Caller:  caller,
		Fields:  fields,
	})
}

func (h *lokiHook) Levels() []log.Level {
	var levels []log.Level
	for _, level := range log.AllLevels {
		if level <= h.minLevel {
			levels = append(levels, level)
		}
	}
	return levels
}

func addLokiHook(cfg config.LoggerConfig, minLevel log.Level) error {
	pusher, err := loki.New(loki.Config{
		Url:      cfg.LokiURL,
		Username: cfg.LokiUser,
		Password: cfg.LokiPassword,
		Labels:   map[string]string{"app": cfg.AppName},
	}, &logrusAdapter{})
	if err != nil {
		return err
	}

	lokiPusher = pusher
	log.AddHook(&lokiHook{pusher: pusher, minLevel: minLevel})
	log.Info("Loki logging enabled")
	return nil
}

func stopLoki() {
	if lokiPusher != nil {
		lokiPusher.Stop()
		lokiPusher = nil
	}
}

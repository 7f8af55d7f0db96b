package logger

import (
	"github.com/maxaizer/job-radar/internal/metrics"
	log "github.com/sirupsen/logrus"
	"sync"
)

type prometheusHook struct{}

func (h *prometheusHook) Fire(entry *log.Entry) error {
	errorType, ok := entry.Data[ErrorTypeField].(string)
	if !ok {
		errorType = "unknown"
	}

	metrics.ErrorsCounter.WithLabelValues(errorType).Inc()
	return nil
}

func (h *prometheusHook) Levels() []log.Level {
	return []log.Level{
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

var prometheusHookOnce sync.Once

func addPrometheusHook() {
	prometheusHookOnce.Do(func() {
		log.AddHook(&prometheusHook{})
		log.Debug("Prometheus logging enabled")
	})
}

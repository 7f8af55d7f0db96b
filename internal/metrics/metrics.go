package metrics

import (
	"errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	CyclesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_cycles_total",
			Help: "Total number of aggregation cycles by result.",
		},
		[]string{"result"},
	)
	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobradar_cycle_duration_seconds",
			Help:    "Duration of each aggregation cycle in seconds.",
			Buckets: []float64{5, 15, 30, 60, 120, 300},
		},
	)
	SourceFetchDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "jobradar_source_fetch_duration_seconds",
			Help:       "Duration of a single source fetch.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"portal"},
	)
	JobsExaminedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobradar_jobs_examined_total",
			Help: "Total number of job records examined for novelty.",
		},
	)
	JobsNewCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobradar_jobs_new_total",
			Help: "Total number of job records seen for the first time.",
		},
	)
	SourceJobsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_source_jobs_total",
			Help: "Total number of job records returned per source.",
		},
		[]string{"portal"},
	)
	SourceFailuresCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_source_failures_total",
			Help: "Total number of failed source fetches.",
		},
		[]string{"portal"},
	)
	NotificationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobradar_notifications_total",
			Help: "Total number of notification attempts by result.",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(CyclesCounter)
		prometheus.MustRegister(CycleDuration)
		prometheus.MustRegister(SourceFetchDuration)
		prometheus.MustRegister(JobsExaminedCounter)
		prometheus.MustRegister(JobsNewCounter)
		prometheus.MustRegister(SourceJobsCounter)
		prometheus.MustRegister(SourceFailuresCounter)
		prometheus.MustRegister(NotificationsCounter)
	})
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

// StartServer exposes /metrics on addr in the background.
func StartServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server stopped: %v", err)
		}
	}()
	log.Infof("metrics server listening on %s", addr)
	return server
}

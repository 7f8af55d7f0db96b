package dashboard

import (
	"context"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/events"
	"github.com/maxaizer/job-radar/internal/logger"
	"github.com/maxaizer/job-radar/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

const lastCycleKey = "last_cycle"

//go:embed templates/index.html
var templates embed.FS

type jobRepository interface {
	ListAll(ctx context.Context, limit int) ([]entities.SeenJob, error)
	Count(ctx context.Context) (int64, error)
}

type dataRepository interface {
	Save(ctx context.Context, id string, data []byte) error
	Load(ctx context.Context, id string) ([]byte, error)
}

type cycleRunner interface {
	RunCycle(ctx context.Context) (*entities.CycleReport, error)
}

type Options struct {
	User     string
	Password string
	PageSize int
	// RunOnRequest makes every page view run one cycle before rendering.
	RunOnRequest bool
}

type cycleStatus struct {
	Report entities.CycleReport `json:"report"`
	Error  string               `json:"error,omitempty"`
}

type pageData struct {
	Jobs            []entities.SeenJob
	Total           int64
	FoundSinceStart int64
	LastCycle       *cycleStatus
	Cycle           *entities.CycleReport
}

// Server renders stored jobs and the state of the last cycle behind basic auth.
type Server struct {
	jobs            jobRepository
	data            dataRepository
	runner          cycleRunner
	options         Options
	page            *template.Template
	mu              sync.RWMutex
	lastCycle       *cycleStatus
	foundSinceStart atomic.Int64
}

func NewServer(bus EventBus.Bus, jobs jobRepository, data dataRepository, runner cycleRunner,
	options Options) (*Server, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	if jobs == nil {
		return nil, errors.New("job repository is nil")
	}
	if data == nil {
		return nil, errors.New("data repository is nil")
	}
	if options.RunOnRequest && runner == nil {
		return nil, errors.New("run on request needs a cycle runner")
	}
	if options.PageSize <= 0 {
		options.PageSize = 500
	}

	page, err := template.New("index.html").Funcs(template.FuncMap{
		"age":  formatAge,
		"join": strings.Join,
	}).ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, errors.Wrap(err, "error parsing dashboard template")
	}

	s := &Server{jobs: jobs, data: data, runner: runner, options: options, page: page}

	if err = s.loadLastCycle(); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to load last cycle: %v", err)
	}

	if err = bus.Subscribe(events.CycleCompletedTopic, s.onCycleCompleted); err != nil {
		return nil, err
	}
	if err = bus.Subscribe(events.JobFoundTopic, s.onJobFound); err != nil {
		return nil, err
	}

	return s, nil
}

// RegisterRoutes mounts the dashboard on mux. Only /healthz is reachable without credentials.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", s.basicAuth(metrics.Handler()))
	mux.Handle("/cycle", s.basicAuth(http.HandlerFunc(s.handleCycle)))
	mux.Handle("/", s.basicAuth(http.HandlerFunc(s.handleIndex)))
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := pageData{}

	if s.options.RunOnRequest {
		report, err := s.runner.RunCycle(r.Context())
		if err != nil {
			http.Error(w, "cycle failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		data.Cycle = report
	}

	jobs, err := s.jobs.ListAll(r.Context(), s.options.PageSize)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to list jobs: %v", err)
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	total, err := s.jobs.Count(r.Context())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to count jobs: %v", err)
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}

	data.Jobs = jobs
	data.Total = total
	data.FoundSinceStart = s.foundSinceStart.Load()
	data.LastCycle = s.currentCycle()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = s.page.Execute(w, data); err != nil {
		log.Errorf("failed to render dashboard: %v", err)
	}
}

func (s *Server) handleCycle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := s.currentCycle()
	if status == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no cycle has completed yet"})
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		if !ok || !s.validCredentials(user, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Login"`)
			http.Error(w, "Login required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) validCredentials(user, password string) bool {
	userOk := subtle.ConstantTimeCompare([]byte(user), []byte(s.options.User)) == 1
	passwordOk := subtle.ConstantTimeCompare([]byte(password), []byte(s.options.Password)) == 1
	return userOk && passwordOk
}

func (s *Server) onCycleCompleted(event events.CycleCompleted) {
	status := &cycleStatus{Report: event.Report}
	if event.Err != nil {
		status.Error = event.Err.Error()
	}

	s.mu.Lock()
	s.lastCycle = status
	s.mu.Unlock()

	data, err := json.Marshal(status)
	if err != nil {
		log.Errorf("failed to marshal cycle report: %v", err)
		return
	}
	if err = s.data.Save(context.Background(), lastCycleKey, data); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to save last cycle: %v", err)
	}
}

func (s *Server) onJobFound(_ events.JobFound) {
	s.foundSinceStart.Add(1)
}

func (s *Server) loadLastCycle() error {
	data, err := s.data.Load(context.Background(), lastCycleKey)
	if err != nil || data == nil {
		return err
	}

	var status cycleStatus
	if err = json.Unmarshal(data, &status); err != nil {
		return errors.Wrap(err, "error decoding last cycle")
	}

	s.mu.Lock()
	s.lastCycle = &status
	s.mu.Unlock()
	return nil
}

func (s *Server) currentCycle() *cycleStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCycle
}

func formatAge(daysAgo int) string {
	if daysAgo == entities.UnknownAge {
		return "unknown"
	}
	return strconv.Itoa(daysAgo)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to write response: %v", err)
	}
}

package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Logger receives the pusher's own failures. It must not feed entries back into the pusher.
type Logger interface {
	Error(msg string, args ...any)
}

type Config struct {
	// Url of the push endpoint, e.g. https://logs.example.net/loki/api/v1/push
	Url string `validate:"required,url"`

	// BatchMaxSize is the maximum number of lines sent in one request
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the maximum time a line waits before being sent
	BatchMaxWait time.Duration `validate:"gte=1"`

	// Labels are attached to the single stream every line is pushed to
	Labels map[string]string

	// Optional basic auth credentials
	Username string
	Password string

	// Optional multi-tenant header, e.g. X-Scope-OrgID
	TenantKey   string
	TenantValue string
}

var errStopped = errors.New("loki pusher is stopped")

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 1000
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type LogEntry struct {
	Time    time.Time         `json:"-"`
	Level   string            `json:"level"`
	Message string            `json:"msg"`
	Caller  string            `json:"caller,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

// Pusher batches log lines and ships them to Loki from a single goroutine.
type Pusher struct {
	config  Config
	client  *http.Client
	logger  Logger
	entries chan LogEntry
	quit    chan struct{}
	done    sync.WaitGroup
	once    sync.Once
	batch   [][2]string
}

func New(cfg Config, logger Logger) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	p := &Pusher{
		config:  cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		entries: make(chan LogEntry, cfg.BatchMaxSize),
		quit:    make(chan struct{}),
		batch:   make([][2]string, 0, cfg.BatchMaxSize),
	}

	p.done.Add(1)
	go p.run()
	return p, nil
}

// Push queues an entry. Entries pushed after Stop are dropped.
func (p *Pusher) Push(e LogEntry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	select {
	case <-p.quit:
		return errStopped
	default:
	}
	select {
	case <-p.quit:
		return errStopped
	case p.entries <- e:
		return nil
	}
}

// Stop flushes what is queued and waits for the last request to finish.
func (p *Pusher) Stop() {
	p.once.Do(func() {
		close(p.quit)
		p.done.Wait()
	})
}

func (p *Pusher) run() {
	defer p.done.Done()

	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	flush := func() {
		if len(p.batch) == 0 {
			return
		}
		if err := p.send(context.Background()); err != nil {
			p.logger.Error("failed to send logs", "error", err)
		}
		p.batch = p.batch[:0]
	}

	for {
		select {
		case <-p.quit:
			for {
				select {
				case e := <-p.entries:
					p.append(e)
				default:
					flush()
					return
				}
			}
		case e := <-p.entries:
			p.append(e)
			if len(p.batch) >= p.config.BatchMaxSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (p *Pusher) append(e LogEntry) {
	line, err := json.Marshal(e)
	if err != nil {
		return
	}
	p.batch = append(p.batch, [2]string{strconv.FormatInt(e.Time.UnixNano(), 10), string(line)})
}

func (p *Pusher) send(ctx context.Context) error {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)

	request := pushRequest{Streams: []stream{{Stream: p.config.Labels, Values: p.batch}}}
	if err := json.NewEncoder(gz).Encode(request); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Url, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	if p.config.TenantKey != "" {
		req.Header.Set(p.config.TenantKey, p.config.TenantValue)
	}
	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected response code from loki: %s, body: %s", resp.Status, string(body))
	}

	return nil
}

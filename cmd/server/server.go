package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teatak/postag/config"
	"github.com/teatak/postag/hmm"
	"github.com/teatak/postag/pipeline"
	"github.com/teatak/postag/tagger"
)

// server holds the current tagger and swaps it on reload.
type server struct {
	cfg *config.Config

	mu     sync.RWMutex
	tagger *tagger.Tagger

	gatherer prometheus.Gatherer
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
	oov      prometheus.Counter
	tags     prometheus.Gauge
}

func newServer(cfg *config.Config, reg prometheus.Registerer) *server {
	s := &server{
		cfg: cfg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "postag_requests_total",
			Help: "Tagging requests by outcome.",
		}, []string{"status"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "postag_decode_seconds",
			Help:    "Time spent decoding one sentence.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		oov: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postag_oov_tokens_total",
			Help: "Tagged words never seen in training.",
		}),
		tags: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "postag_model_tags",
			Help: "Number of decodable tags in the loaded model.",
		}),
	}
	reg.MustRegister(s.requests, s.latency, s.oov, s.tags)
	s.gatherer = prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		s.gatherer = g
	}
	return s
}

// reload retrains from the configured corpus and swaps the tagger in.
// The previous tagger keeps serving if training fails.
func (s *server) reload() error {
	log.Println("Reloading model...")
	store, err := pipeline.Train(s.cfg)
	if err != nil {
		return err
	}
	tg := tagger.NewTagger(store, s.cfg.Reader())

	s.mu.Lock()
	s.tagger = tg
	s.mu.Unlock()
	s.tags.Set(float64(len(store.States())))
	log.Println("Model reloaded successfully.")
	return nil
}

func (s *server) current() *tagger.Tagger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tagger
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tag", s.handleTag)
	mux.HandleFunc("/reload", s.handleReload)
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Request/Response types
type TagRequest struct {
	Text  string   `json:"text"`
	Words []string `json:"words"` // pre-tokenized alternative to text
}

type TaggedWord struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}

type TagResponse struct {
	Tokens []TaggedWord `json:"tokens"`
	OOV    []string     `json:"oov,omitempty"`
}

func (s *server) handleTag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.requests.WithLabelValues("bad_method").Inc()
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.requests.WithLabelValues("bad_request").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tg := s.current()
	if tg == nil {
		s.requests.WithLabelValues("unavailable").Inc()
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		return
	}

	words := req.Words
	if len(words) == 0 {
		words = tg.Reader.Tokens(req.Text)
	}

	start := time.Now()
	tokens, err := tg.Tag(words)
	s.latency.Observe(time.Since(start).Seconds())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, hmm.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		s.requests.WithLabelValues("error").Inc()
		http.Error(w, err.Error(), status)
		return
	}

	resp := TagResponse{Tokens: make([]TaggedWord, len(tokens))}
	for i, tok := range tokens {
		resp.Tokens[i] = TaggedWord{Word: tok.Word, Tag: tok.Tag}
	}
	resp.OOV = tg.OOV(words)
	s.oov.Add(float64(len(resp.OOV)))
	s.requests.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to write tag response: %v", err)
	}
}

func (s *server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.reload(); err != nil {
		log.Printf("Reload failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err := w.Write([]byte("Model reloaded.\n")); err != nil {
		log.Printf("Failed to write reload response: %v", err)
	}
}

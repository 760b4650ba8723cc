package oracle

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rickgao/software-oracle/internal/api"
	"github.com/rickgao/software-oracle/internal/market"
)

// MarketFetcher looks up the market for a slug.
type MarketFetcher interface {
	GetMarketBySlug(ctx context.Context, slug string) (*api.Market, error)
}

// Publisher delivers an encoded payload to subscribers and reports how many
// received it.
type Publisher interface {
	Publish(data []byte) int
}

// Config holds sampler configuration.
type Config struct {
	Interval time.Duration // Cycle cadence (default: 3s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 3000 * time.Millisecond,
	}
}

// Stats holds sampler counters.
type Stats struct {
	Cycles   int64            `json:"cycles"`
	Market   int64            `json:"market"`
	Neutral  int64            `json:"neutral"`
	Failures map[string]int64 `json:"failures"`
	LastSlug string           `json:"last_slug"`
}

// Sampler runs the fetch-estimate-publish cycle on a fixed cadence.
type Sampler struct {
	cfg     Config
	fetcher MarketFetcher
	synth   *Synthesizer
	pub     Publisher
	logger  *slog.Logger
	now     func() time.Time

	wg sync.WaitGroup

	cycles  atomic.Int64
	market  atomic.Int64
	neutral atomic.Int64

	mu       sync.Mutex
	failures map[api.Failure]int64
	lastSlug string
}

// NewSampler creates a new Sampler.
func NewSampler(cfg Config, fetcher MarketFetcher, synth *Synthesizer, pub Publisher, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sampler{
		cfg:      cfg,
		fetcher:  fetcher,
		synth:    synth,
		pub:      pub,
		logger:   logger.With("component", "sampler"),
		now:      time.Now,
		failures: make(map[api.Failure]int64),
	}
}

// Run fires a cycle every interval until ctx is cancelled, then waits for
// in-flight cycles. Each cycle runs in its own goroutine so a slow fetch
// never delays the next tick; cycles may overlap.
func (s *Sampler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logger.Info("sampler started", "interval", s.cfg.Interval)

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			s.logger.Info("sampler stopped", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.Cycle(ctx)
			}()
		}
	}
}

// Cycle runs one fetch-estimate-publish pass. It never fails: any fetch
// problem falls back to a neutral estimate.
func (s *Sampler) Cycle(ctx context.Context) Payload {
	slug := market.Slug(s.now())
	s.setLastSlug(slug)

	var quote *Quote
	m, err := s.fetcher.GetMarketBySlug(ctx, slug)
	if err != nil {
		kind := api.FailureKind(err)
		s.recordFailure(kind)
		s.logger.Debug("market unavailable, using neutral estimate",
			"slug", slug,
			"reason", kind,
			"error", err,
		)
	} else {
		q := QuoteFromMarket(m)
		quote = &q
	}

	payload, basis := s.synth.Estimate(quote, s.now())
	s.cycles.Add(1)
	if basis == BasisMarket {
		s.market.Add(1)
	} else {
		s.neutral.Add(1)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to encode payload", "error", err)
		return payload
	}

	delivered := s.pub.Publish(data)
	s.logger.Debug("payload published",
		"slug", slug,
		"basis", basis,
		"prob_up", payload.ProbUp,
		"prob_down", payload.ProbDown,
		"subscribers", delivered,
	)

	return payload
}

// Stats returns a snapshot of the sampler counters.
func (s *Sampler) Stats() Stats {
	s.mu.Lock()
	failures := make(map[string]int64, len(s.failures))
	for k, v := range s.failures {
		failures[string(k)] = v
	}
	lastSlug := s.lastSlug
	s.mu.Unlock()

	return Stats{
		Cycles:   s.cycles.Load(),
		Market:   s.market.Load(),
		Neutral:  s.neutral.Load(),
		Failures: failures,
		LastSlug: lastSlug,
	}
}

func (s *Sampler) recordFailure(kind api.Failure) {
	s.mu.Lock()
	s.failures[kind]++
	s.mu.Unlock()
}

func (s *Sampler) setLastSlug(slug string) {
	s.mu.Lock()
	s.lastSlug = slug
	s.mu.Unlock()
}

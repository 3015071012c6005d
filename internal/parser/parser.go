// Package parser turns free-text task input into task fields with the help
// of a text generation service, and falls back to the raw input whenever
// that does not work out.
package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Makepad-fr/todolist/internal/gemini"
	"github.com/Makepad-fr/todolist/internal/model"
)

var (
	ErrNoCredential = errors.New("parser: no API credential configured")
	ErrBusy         = errors.New("parser: a parse is already in flight")
	ErrRateLimited  = errors.New("parser: rate limit reached")
)

// Generator is the text generation call the parser depends on.
type Generator interface {
	GenerateContent(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error)
}

type Config struct {
	Timeout       time.Duration
	RatePerMinute int // 0 disables limiting
	CacheSize     int // 0 disables caching
	CacheTTL      time.Duration
}

type Parser struct {
	gen     Generator
	timeout time.Duration
	limiter *rate.Limiter
	cache   *expirable.LRU[string, Parsed]
	busy    atomic.Bool
	log     *zap.Logger
}

// New returns a parser. A nil gen yields a parser whose every Parse fails
// with ErrNoCredential.
func New(gen Generator, cfg Config, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Parser{gen: gen, timeout: cfg.Timeout, log: log}
	if p.timeout <= 0 {
		p.timeout = 15 * time.Second
	}
	if cfg.RatePerMinute > 0 {
		p.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute)
	}
	if cfg.CacheSize > 0 {
		p.cache = expirable.NewLRU[string, Parsed](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return p
}

// Available reports whether a generator is configured.
func (p *Parser) Available() bool {
	return p != nil && p.gen != nil
}

// Busy reports whether a parse is in flight.
func (p *Parser) Busy() bool {
	return p != nil && p.busy.Load()
}

// Parse asks the service to structure text. Only one parse runs at a time;
// a concurrent call fails with ErrBusy.
func (p *Parser) Parse(ctx context.Context, text string, now time.Time) (Parsed, error) {
	if !p.Available() {
		return Parsed{}, ErrNoCredential
	}
	if !p.busy.CompareAndSwap(false, true) {
		return Parsed{}, ErrBusy
	}
	defer p.busy.Store(false)

	text = strings.TrimSpace(text)
	// Relative dates resolve differently tomorrow, so the day is part of the key.
	key := now.Format(model.DateLayout) + "\x00" + text
	if p.cache != nil {
		if parsed, ok := p.cache.Get(key); ok {
			p.log.Debug("parse cache hit")
			return parsed, nil
		}
	}
	if p.limiter != nil && !p.limiter.Allow() {
		return Parsed{}, ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req := gemini.UserText(BuildPrompt(text, now))
	req.GenerationConfig = &gemini.GenerationConfig{
		Temperature:      0.1,
		ResponseMIMEType: "application/json",
	}
	resp, err := p.gen.GenerateContent(ctx, req)
	if err != nil {
		return Parsed{}, fmt.Errorf("parser: generate: %w", err)
	}
	parsed, err := Decode(resp.Text())
	if err != nil {
		return Parsed{}, err
	}
	if p.cache != nil {
		p.cache.Add(key, parsed)
	}
	return parsed, nil
}

// Path tells which way a task was built.
type Path int

const (
	PathManual Path = iota
	PathAI
)

func (p Path) String() string {
	if p == PathAI {
		return "AI"
	}
	return "manual"
}

// Outcome is the task built by Build. Err is set when the AI path was tried
// and failed, and explains the manual fallback.
type Outcome struct {
	Task model.Task
	Path Path
	Err  error
}

// Build creates a task from raw form input. It tries the service on the
// title text first and falls back to the raw fields on any failure, so the
// user's input is never lost. Only validation of the raw input can fail.
func (p *Parser) Build(ctx context.Context, raw model.Fields, now time.Time) (Outcome, error) {
	raw = raw.Trimmed()
	if raw.Title == "" {
		return Outcome{}, model.ErrEmptyTitle
	}

	parsed, perr := p.Parse(ctx, raw.Title, now)
	if perr == nil {
		t, err := model.New(Merge(parsed, raw), now)
		if err == nil {
			return Outcome{Task: t, Path: PathAI}, nil
		}
		perr = err
	}
	if p != nil {
		p.log.Warn("structured parse failed, using manual entry", zap.Error(perr))
	}

	t, err := model.New(raw, now)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Task: t, Path: PathManual, Err: perr}, nil
}

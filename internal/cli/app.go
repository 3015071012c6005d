package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Makepad-fr/todolist/internal/auth"
	"github.com/Makepad-fr/todolist/internal/config"
	"github.com/Makepad-fr/todolist/internal/gemini"
	"github.com/Makepad-fr/todolist/internal/logger"
	"github.com/Makepad-fr/todolist/internal/notify"
	"github.com/Makepad-fr/todolist/internal/parser"
	"github.com/Makepad-fr/todolist/internal/session"
	"github.com/Makepad-fr/todolist/internal/store"
	"github.com/Makepad-fr/todolist/internal/store/jsonstore"
	"github.com/Makepad-fr/todolist/internal/store/redisstore"
	"github.com/Makepad-fr/todolist/internal/store/sqlitestore"
	"github.com/Makepad-fr/todolist/internal/ui"
)

// app is everything a command needs, built from config.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	store  *store.Adapter
	sess   *session.Session
	parser *parser.Parser
}

type appOptions struct {
	// sink receives session notices. The CLI prints them.
	sink notify.Sink
	// logToFile sends logs to <data dir>/todo.log when no file is
	// configured, so they do not draw over the TUI.
	logToFile bool
}

func openApp(ctx context.Context, opts *rootOptions, ao appOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	theme := cfg.UI.Theme
	if opts.theme != "" {
		theme = opts.theme
	}
	if err := ui.SetTheme(theme); err != nil {
		return nil, usageError{err}
	}

	lc := logger.ZapConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		OutputPath: cfg.Logger.File,
		Color:      cfg.Logger.ColorEnabled,
	}
	if ao.logToFile && lc.OutputPath == "" {
		lc.OutputPath = filepath.Join(cfg.Storage.Dir, "todo.log")
		lc.Color = false
	}
	log, err := logger.Init(lc)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	kv, err := openKV(cfg.Storage)
	if err != nil {
		log.Warn("storage backend unavailable, keeping tasks in memory",
			zap.String("backend", cfg.Storage.Backend), zap.Error(err))
		ui.Warn(fmt.Sprintf("%s storage unavailable; changes will not be saved", cfg.Storage.Backend))
		kv = store.NewMemory()
	}
	adapter := store.NewAdapter(kv, cfg.Storage.Key, log)

	sinks := []notify.Sink{ao.sink}
	if ao.logToFile {
		sinks = append(sinks, notify.Log(log))
	}
	if cfg.UI.Sound {
		sinks = append(sinks, notify.Bell(ui.Err))
	}

	return &app{
		cfg:    cfg,
		log:    log,
		store:  adapter,
		sess:   session.Open(ctx, adapter, notify.Multi(sinks...), nil),
		parser: newParser(cfg.AI, log),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("close storage", zap.Error(err))
	}
	_ = a.log.Sync()
}

func openKV(cfg config.StorageConfig) (store.KV, error) {
	switch cfg.Backend {
	case "sqlite":
		return sqlitestore.Open(cfg.SQLitePath)
	case "redis":
		return redisstore.Open(redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return jsonstore.New(cfg.Dir)
	}
}

// newParser returns a parser backed by Gemini when AI is enabled and a key
// is available; otherwise every build takes the manual path.
func newParser(cfg config.AIConfig, log *zap.Logger) *parser.Parser {
	pc := parser.Config{
		Timeout:       cfg.Timeout,
		RatePerMinute: cfg.RatePerMinute,
		CacheSize:     cfg.CacheSize,
		CacheTTL:      cfg.CacheTTL,
	}
	if !cfg.Enabled {
		return parser.New(nil, pc, log)
	}
	cred, err := credentials().Get()
	if err != nil {
		log.Warn("read credentials", zap.Error(err))
	}
	if cred == nil {
		return parser.New(nil, pc, log)
	}
	client, err := gemini.NewClient(cred.APIKey,
		gemini.WithModel(cfg.Model),
		gemini.WithAPIURL(cfg.APIURL),
	)
	if err != nil {
		log.Warn("gemini client", zap.Error(err))
		return parser.New(nil, pc, log)
	}
	return parser.New(client, pc, log)
}

func credentials() auth.Store {
	dir, err := config.ConfigDir()
	if err != nil {
		dir = "."
	}
	return auth.Store{Dir: dir}
}

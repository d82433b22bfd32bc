package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/catalog"
	"github.com/jackzampolin/verbena/internal/config"
	"github.com/jackzampolin/verbena/internal/home"
	"github.com/jackzampolin/verbena/internal/overrides"
	"github.com/jackzampolin/verbena/internal/providers"
	"github.com/jackzampolin/verbena/internal/server/endpoints"
	"github.com/jackzampolin/verbena/internal/svcctx"
	"github.com/jackzampolin/verbena/internal/taxonomy"
	"github.com/jackzampolin/verbena/internal/usage"
	"github.com/jackzampolin/verbena/internal/userdata"
)

// Server is the main verbena HTTP server. It owns the data stores and
// keeps their snapshots current, swapping in fresh ones when the
// backing files or the configuration change.
type Server struct {
	httpServer *http.Server
	configMgr  *config.Manager
	logger     *slog.Logger
	home       *home.Dir

	catalog   *catalog.Store
	taxonomy  *taxonomy.Store
	overrides *overrides.Store
	userData  *userdata.Store
	merger    *usage.Merger

	// chatOverride pins the chat provider across config reloads; tests
	// use it to inject a mock.
	chatOverride providers.ChatClient
	chat         providers.ChatClient

	watchData    bool
	watcher      *dataWatcher
	invalidators map[string]func()

	// services holds all core services for context enrichment. It is
	// published once the stores are warm and replaced wholesale on
	// config change; requests read it under mu.
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// Home locates the config and data files (default: ~/.verbena)
	Home *home.Dir
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
	// Chat overrides the configured chat provider; used by tests
	Chat providers.ChatClient
	// WatchData invalidates stores when their data files change on disk
	WatchData bool
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Home == nil {
		h, err := home.New("")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.Home = h
	}

	appCfg := config.DefaultConfig()
	if cfg.ConfigManager != nil {
		appCfg = cfg.ConfigManager.Get()
	}

	s := &Server{
		configMgr:    cfg.ConfigManager,
		logger:       cfg.Logger,
		home:         cfg.Home,
		chatOverride: cfg.Chat,
		watchData:    cfg.WatchData,
	}

	// Build the data stores. Loading is lazy and fail-soft: a missing
	// or unreadable file yields an empty snapshot plus a warning, never
	// a startup failure.
	dataDir := appCfg.Data.Dir
	verbsPath := cfg.Home.DataFile(dataDir, appCfg.Data.VerbsFile)
	lookupPath := cfg.Home.DataFile(dataDir, appCfg.Data.LookupFile)
	ranksPath := cfg.Home.DataFile(dataDir, appCfg.Data.FrequencyFile)

	s.catalog = catalog.NewStore(verbsPath, lookupPath, ranksPath, cfg.Logger)
	s.taxonomy = taxonomy.NewStore(cfg.Home.DataFile(dataDir, appCfg.Data.TaxonomyFile), cfg.Logger)
	s.overrides = overrides.NewStore(cfg.Home.DataFile(dataDir, appCfg.Data.OverridesFile), cfg.Logger)
	s.userData = userdata.NewStore(cfg.Home.DataFile(dataDir, appCfg.Data.UserDataFile), cfg.Logger)
	s.merger = usage.NewMerger(s.taxonomy, s.overrides)

	// The read-only inputs plus the override file, which users edit by
	// hand. User data is only ever written through its store, so it is
	// not watched; an override save just causes one redundant reload.
	s.invalidators = map[string]func(){
		filepath.Base(verbsPath):          s.catalog.Invalidate,
		filepath.Base(lookupPath):         s.catalog.Invalidate,
		filepath.Base(ranksPath):          s.catalog.Invalidate,
		filepath.Base(s.taxonomy.Path()):  s.taxonomy.Invalidate,
		filepath.Base(s.overrides.Path()): s.overrides.Invalidate,
	}

	s.chat = cfg.Chat
	if s.chat == nil {
		s.chat = buildChatClient(appCfg, cfg.Logger)
	}

	// Display settings are read through the config manager on each
	// request, so a config edit only needs the chat provider rebuilt.
	if cfg.ConfigManager != nil {
		cfg.ConfigManager.OnChange(s.applyConfig)
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// buildChatClient constructs the configured chat provider, or nil when
// the LLM section is disabled or no API key resolves. Any provider
// other than "mock" goes through the OpenAI client, which also serves
// OpenAI-compatible endpoints via base_url.
func buildChatClient(cfg *config.Config, logger *slog.Logger) providers.ChatClient {
	if cfg == nil || !cfg.LLM.Enabled {
		return nil
	}

	if cfg.LLM.Provider == providers.MockClientName {
		return providers.NewMockClient()
	}

	key := cfg.ResolveAPIKey()
	if key == "" {
		logger.Info("chat provider disabled, no API key resolved", "provider", cfg.LLM.Provider)
		return nil
	}

	return providers.NewOpenAIClient(providers.OpenAIConfig{
		APIKey:     key,
		Model:      cfg.LLM.Model,
		BaseURL:    cfg.LLM.BaseURL,
		MaxRetries: cfg.LLM.MaxRetries,
		Timeout:    time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})
}

// Start starts the server. It blocks until the context is cancelled or
// an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if err := s.initialize(); err != nil {
		s.setNotRunning()
		return err
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			_ = s.shutdown()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// initialize warms the data stores and publishes the services used to
// enrich request contexts. Endpoints gated by requireInit return 503
// until this completes.
func (s *Server) initialize() error {
	if err := s.home.EnsureExists(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	cat := s.catalog.Snapshot()
	tax := s.taxonomy.Snapshot()
	s.logger.Info("data stores loaded",
		"verbs", cat.Len(),
		"taxonomy_forms", tax.FormCount(),
		"templates", len(tax.TemplateIDs()),
		"overrides", s.overrides.UserCount(),
		"favourites", s.userData.FavouriteCount(),
	)

	if s.watchData {
		w, err := newDataWatcher(s.home.DataPath(), s.invalidators, s.logger)
		if err != nil {
			s.logger.Warn("data file watching disabled", "error", err)
		} else {
			s.watcher = w
		}
	}

	s.mu.Lock()
	s.services = &svcctx.Services{
		Logger:    s.logger,
		Config:    s.configMgr,
		Home:      s.home,
		Catalog:   s.catalog,
		Taxonomy:  s.taxonomy,
		Overrides: s.overrides,
		UserData:  s.userData,
		Merger:    s.merger,
		Chat:      s.chat,
	}
	s.mu.Unlock()

	return nil
}

// applyConfig reacts to a configuration change by rebuilding the chat
// provider and republishing services. An injected test provider is
// never replaced.
func (s *Server) applyConfig(c *config.Config) {
	chat := s.chatOverride
	if chat == nil {
		chat = buildChatClient(c, s.logger)
	}

	s.mu.Lock()
	s.chat = chat
	if s.services != nil {
		svcs := *s.services
		svcs.Chat = chat
		s.services = &svcs
	}
	s.mu.Unlock()

	name := "none"
	if chat != nil {
		name = chat.Name()
	}
	s.logger.Info("configuration change applied",
		"llm_provider", name,
		"voseo", c.Display.Voseo,
		"vosotros", c.Display.Vosotros,
	)
}

// shutdown performs graceful shutdown of the HTTP server and stops the
// data watcher.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	if s.watcher != nil {
		s.watcher.Close()
		s.watcher = nil
	}

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the fully wrapped HTTP handler. Tests drive it
// through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		svcs := s.services
		s.mu.RUnlock()

		ctx := r.Context()
		if svcs != nil {
			ctx = svcctx.WithServices(ctx, svcs)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable until the data stores are loaded.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		ready := s.services != nil
		s.mu.RUnlock()

		if !ready {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}

package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackzampolin/verbena/internal/config"
	"github.com/jackzampolin/verbena/internal/home"
	"github.com/jackzampolin/verbena/internal/providers"
	"github.com/jackzampolin/verbena/internal/server/endpoints"
)

const testVerbs = `[
  {"infinitive": "hablar", "infinitive_english": "to speak"},
  {"infinitive": "comer", "infinitive_english": "to eat"},
  {"infinitive": "lavar", "infinitive_english": "to wash"}
]`

const testRanks = `{"hablar": 1}`

const testTaxonomy = `{
  "verb_taxonomy": {
    "reflexive": {"categories": {"daily_routine": {"verbs": {"lavar": "lavarse"}}}}
  },
  "templates": {
    "BASIC": {"name": "Basic Drill", "prompt": "Write three sentences using {infinitive}."}
  }
}`

// newTestHome builds a home directory seeded with fixture data files
// under the default file names New resolves.
func newTestHome(t *testing.T) *home.Dir {
	t.Helper()

	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}
	if err := h.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}

	fixtures := map[string]string{
		home.VerbsFileName:     testVerbs,
		home.FrequencyFileName: testRanks,
		home.TaxonomyFileName:  testTaxonomy,
	}
	for name, content := range fixtures {
		path := filepath.Join(h.DataPath(), name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	return h
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	// The default LLM section points the API key at this variable, so an
	// ambient key would otherwise leak a real provider into the test.
	t.Setenv("OPENAI_API_KEY", "")

	if cfg.Home == nil {
		cfg.Home = newTestHome(t)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if s.watcher != nil {
			s.watcher.Close()
		}
	})
	return s
}

// do serves one request through the server's full handler chain.
func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
}

func getStatus(t *testing.T, s *Server) endpoints.StatusResponse {
	t.Helper()
	rec := do(t, s, "GET", "/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/status = %d\nbody: %s", rec.Code, rec.Body.String())
	}
	var resp endpoints.StatusResponse
	decodeBody(t, rec, &resp)
	return resp
}

func TestNew_Defaults(t *testing.T) {
	s := newTestServer(t, Config{})

	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:8080")
	}
	if s.IsRunning() {
		t.Error("IsRunning() = true before Start")
	}

	s = newTestServer(t, Config{Host: "0.0.0.0", Port: "9999"})
	if got := s.Addr(); got != "0.0.0.0:9999" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:9999")
	}
}

func TestRequireInit_GatesAPIRoutes(t *testing.T) {
	s := newTestServer(t, Config{})

	// Liveness stays up before initialization.
	rec := do(t, s, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("/health = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = do(t, s, "GET", "/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/ready = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	var health endpoints.HealthResponse
	decodeBody(t, rec, &health)
	if health.Status != "degraded" {
		t.Errorf("ready status = %q, want %q", health.Status, "degraded")
	}

	for _, target := range []string{"/api/verbs", "/api/taxonomy", "/api/study"} {
		rec := do(t, s, "GET", target, "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s = %d before initialize, want %d", target, rec.Code, http.StatusServiceUnavailable)
		}
		var errResp endpoints.ErrorResponse
		decodeBody(t, rec, &errResp)
		if errResp.Error != "server not fully initialized" {
			t.Errorf("%s error = %q", target, errResp.Error)
		}
	}
}

func TestInitialize_ServesData(t *testing.T) {
	s := newTestServer(t, Config{})

	if err := s.initialize(); err != nil {
		t.Fatalf("initialize() error = %v", err)
	}

	rec := do(t, s, "GET", "/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/ready after initialize = %d\nbody: %s", rec.Code, rec.Body.String())
	}
	var health endpoints.HealthResponse
	decodeBody(t, rec, &health)
	if health.Status != "ok" || health.Data != "loaded" {
		t.Errorf("ready = %+v", health)
	}

	status := getStatus(t, s)
	if status.Data.Verbs != 3 {
		t.Errorf("status verbs = %d, want 3", status.Data.Verbs)
	}
	if status.Data.TaxonomyForms != 2 {
		t.Errorf("status taxonomy forms = %d, want 2", status.Data.TaxonomyForms)
	}
	if status.Data.Templates != 1 {
		t.Errorf("status templates = %d, want 1", status.Data.Templates)
	}
	if status.LLM.Provider != "none" {
		t.Errorf("status provider = %q, want %q", status.LLM.Provider, "none")
	}

	rec = do(t, s, "GET", "/api/verbs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/api/verbs = %d\nbody: %s", rec.Code, rec.Body.String())
	}
	var list endpoints.ListVerbsResponse
	decodeBody(t, rec, &list)
	if list.Total != 3 {
		t.Errorf("list total = %d, want 3", list.Total)
	}

	rec = do(t, s, "GET", "/api/verbs/hablar", "")
	if rec.Code != http.StatusOK {
		t.Errorf("/api/verbs/hablar = %d\nbody: %s", rec.Code, rec.Body.String())
	}
}

func TestInitialize_WritesThroughToHome(t *testing.T) {
	h := newTestHome(t)
	s := newTestServer(t, Config{Home: h})

	if err := s.initialize(); err != nil {
		t.Fatalf("initialize() error = %v", err)
	}

	rec := do(t, s, "POST", "/api/study/favourites/hablar", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle favourite = %d\nbody: %s", rec.Code, rec.Body.String())
	}
	var fav endpoints.FavouriteResponse
	decodeBody(t, rec, &fav)
	if !fav.Favourite {
		t.Error("favourite = false after toggle")
	}

	// The store persists on write, so the document lands in the home dir.
	data, err := os.ReadFile(h.UserDataPath())
	if err != nil {
		t.Fatalf("read user data file: %v", err)
	}
	if !strings.Contains(string(data), "hablar") {
		t.Errorf("user data file missing favourite:\n%s", data)
	}
}

func TestApplyConfig_RebuildsChatProvider(t *testing.T) {
	s := newTestServer(t, Config{})
	if err := s.initialize(); err != nil {
		t.Fatalf("initialize() error = %v", err)
	}

	if got := getStatus(t, s).LLM.Provider; got != "none" {
		t.Fatalf("initial provider = %q, want %q", got, "none")
	}

	cfg := config.DefaultConfig()
	cfg.LLM.Provider = providers.MockClientName
	s.applyConfig(cfg)

	if got := getStatus(t, s).LLM.Provider; got != providers.MockClientName {
		t.Errorf("provider after enable = %q, want %q", got, providers.MockClientName)
	}

	cfg = config.DefaultConfig()
	cfg.LLM.Enabled = false
	s.applyConfig(cfg)

	if got := getStatus(t, s).LLM.Provider; got != "none" {
		t.Errorf("provider after disable = %q, want %q", got, "none")
	}
}

func TestApplyConfig_KeepsInjectedProvider(t *testing.T) {
	s := newTestServer(t, Config{Chat: providers.NewMockClient()})
	if err := s.initialize(); err != nil {
		t.Fatalf("initialize() error = %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.LLM.Enabled = false
	s.applyConfig(cfg)

	// An injected provider survives any config change.
	if got := getStatus(t, s).LLM.Provider; got != providers.MockClientName {
		t.Errorf("provider = %q, want %q", got, providers.MockClientName)
	}
}

func TestDataWatcher_ReloadsOnFileChange(t *testing.T) {
	h := newTestHome(t)
	s := newTestServer(t, Config{Home: h, WatchData: true})

	if err := s.initialize(); err != nil {
		t.Fatalf("initialize() error = %v", err)
	}
	if s.watcher == nil {
		t.Fatal("data watcher not started")
	}

	if got := getStatus(t, s).Data.Verbs; got != 3 {
		t.Fatalf("initial verbs = %d, want 3", got)
	}

	grown := strings.TrimSuffix(strings.TrimSpace(testVerbs), "]") +
		`, {"infinitive": "vivir", "infinitive_english": "to live"}]`
	if err := os.WriteFile(h.VerbsPath(), []byte(grown), 0o644); err != nil {
		t.Fatalf("rewrite verbs file: %v", err)
	}

	// Invalidation is asynchronous, poll until the new snapshot shows up.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if getStatus(t, s).Data.Verbs == 4 {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("verbs = %d after file change, want 4", getStatus(t, s).Data.Verbs)
}

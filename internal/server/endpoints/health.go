package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/svcctx"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status string `json:"status"`
	Data   string `json:"data,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(ctx, "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if svcctx.CatalogFrom(r.Context()) == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "degraded",
			Data:   "not_loaded",
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Data: "loaded"})
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness (data stores loaded)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(ctx, "/ready", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			if resp.Data != "" {
				fmt.Printf("Data:   %s\n", resp.Data)
			}
			return nil
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server string     `json:"server"`
	Data   DataStatus `json:"data"`
	LLM    LLMStatus  `json:"llm"`
}

// DataStatus carries per-store record counts.
type DataStatus struct {
	Verbs         int `json:"verbs"`
	TaxonomyForms int `json:"taxonomy_forms"`
	Templates     int `json:"templates"`
	Overrides     int `json:"overrides"`
	Favourites    int `json:"favourites"`
}

// LLMStatus shows the configured chat provider.
type LLMStatus struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	Enabled  bool   `json:"enabled"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Get detailed server status
//	@Description	Store record counts and the configured chat provider
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Server: "running",
		LLM:    LLMStatus{Provider: "none"},
	}

	if cat := svcctx.CatalogFrom(r.Context()); cat != nil {
		resp.Data.Verbs = cat.Snapshot().Len()
	}
	if tax := svcctx.TaxonomyFrom(r.Context()); tax != nil {
		snap := tax.Snapshot()
		resp.Data.TaxonomyForms = snap.FormCount()
		resp.Data.Templates = len(snap.TemplateIDs())
	}
	if ov := svcctx.OverridesFrom(r.Context()); ov != nil {
		resp.Data.Overrides = ov.UserCount()
	}
	if ud := svcctx.UserDataFrom(r.Context()); ud != nil {
		resp.Data.Favourites = ud.FavouriteCount()
	}

	if chat := svcctx.ChatFrom(r.Context()); chat != nil {
		resp.LLM.Provider = chat.Name()
		resp.LLM.Enabled = true
	}
	if mgr := svcctx.ConfigFrom(r.Context()); mgr != nil {
		resp.LLM.Model = mgr.Get().LLM.Model
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(ctx, "/status", &resp); err != nil {
				return err
			}
			fmt.Printf("Server: %s\n", resp.Server)
			fmt.Printf("Data:\n")
			fmt.Printf("  Verbs:          %d\n", resp.Data.Verbs)
			fmt.Printf("  Taxonomy forms: %d\n", resp.Data.TaxonomyForms)
			fmt.Printf("  Templates:      %d\n", resp.Data.Templates)
			fmt.Printf("  Overrides:      %d\n", resp.Data.Overrides)
			fmt.Printf("  Favourites:     %d\n", resp.Data.Favourites)
			fmt.Printf("LLM:\n")
			fmt.Printf("  Provider: %s\n", resp.LLM.Provider)
			if resp.LLM.Model != "" {
				fmt.Printf("  Model:    %s\n", resp.LLM.Model)
			}
			return nil
		},
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

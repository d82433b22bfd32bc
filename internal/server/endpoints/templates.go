package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/prompts"
	"github.com/jackzampolin/verbena/internal/svcctx"
)

// TemplateInfo describes one practice template.
type TemplateInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Prompt       string   `json:"prompt"`
	Placeholders []string `json:"placeholders,omitempty"`
}

// ListTemplatesResponse is the response for listing templates.
type ListTemplatesResponse struct {
	Templates []TemplateInfo `json:"templates"`
}

// ListTemplatesEndpoint handles GET /api/templates.
type ListTemplatesEndpoint struct{}

func (e *ListTemplatesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/templates", e.handler
}

func (e *ListTemplatesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List practice templates
//	@Description	Templates from the taxonomy document with their placeholder inventories
//	@Tags			templates
//	@Produce		json
//	@Success		200	{object}	ListTemplatesResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/templates [get]
func (e *ListTemplatesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	tax := svcctx.TaxonomyFrom(r.Context())
	if tax == nil {
		writeError(w, http.StatusServiceUnavailable, "taxonomy not initialized")
		return
	}
	snap := tax.Snapshot()

	resp := ListTemplatesResponse{Templates: []TemplateInfo{}}
	for _, id := range snap.TemplateIDs() {
		tmpl, ok := snap.Template(id)
		if !ok {
			continue
		}
		resp.Templates = append(resp.Templates, TemplateInfo{
			ID:           id,
			Name:         tmpl.Name,
			Prompt:       tmpl.Prompt,
			Placeholders: prompts.ExtractPlaceholders(tmpl.Prompt),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *ListTemplatesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List practice templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp ListTemplatesResponse
			if err := client.Get(ctx, "/api/templates", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

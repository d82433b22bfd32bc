package endpoints

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/prompts"
	"github.com/jackzampolin/verbena/internal/svcctx"
)

// PromptRenderResponse is a rendered practice prompt.
type PromptRenderResponse struct {
	Infinitive   string `json:"infinitive"`
	TemplateID   string `json:"template_id"`
	TemplateName string `json:"template_name,omitempty"`
	Prompt       string `json:"prompt"`
}

// VerbPromptEndpoint handles GET /api/verbs/{infinitive}/prompt/{template}.
type VerbPromptEndpoint struct{}

func (e *VerbPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/verbs/{infinitive}/prompt/{template}", e.handler
}

func (e *VerbPromptEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Render a practice prompt
//	@Description	Fill a practice template with a verb's base form, pronominal form, and meaning shift
//	@Tags			verbs
//	@Produce		json
//	@Param			infinitive	path		string	true	"Infinitive"
//	@Param			template	path		string	true	"Template id"
//	@Success		200			{object}	PromptRenderResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/verbs/{infinitive}/prompt/{template} [get]
func (e *VerbPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	infinitive := r.PathValue("infinitive")
	templateID := r.PathValue("template")
	if infinitive == "" || templateID == "" {
		writeError(w, http.StatusBadRequest, "infinitive and template are required")
		return
	}

	cat := svcctx.CatalogFrom(r.Context())
	tax := svcctx.TaxonomyFrom(r.Context())
	if cat == nil || tax == nil {
		writeError(w, http.StatusServiceUnavailable, "data stores not initialized")
		return
	}

	verb, ok := lookupVerb(cat.Snapshot(), infinitive)
	if !ok {
		writeError(w, http.StatusNotFound, "verb not found: "+infinitive)
		return
	}

	tmpl, ok := tax.Snapshot().Template(templateID)
	if !ok {
		writeError(w, http.StatusNotFound, "template not found: "+templateID)
		return
	}

	if merger := svcctx.MergerFrom(r.Context()); merger != nil {
		verb = merger.Enrich(verb)
	}

	rendered, err := prompts.Render(tmpl, verb)
	if err != nil {
		// Placeholder mismatches are authoring defects in the template.
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, PromptRenderResponse{
		Infinitive:   verb.Infinitive,
		TemplateID:   templateID,
		TemplateName: tmpl.Name,
		Prompt:       rendered,
	})
}

func (e *VerbPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt <infinitive> <template>",
		Short: "Render a practice prompt for a verb",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			path := "/api/verbs/" + url.PathEscape(args[0]) + "/prompt/" + url.PathEscape(args[1])
			var resp PromptRenderResponse
			if err := client.Get(ctx, path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

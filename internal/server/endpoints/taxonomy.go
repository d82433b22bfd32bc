package endpoints

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/svcctx"
	"github.com/jackzampolin/verbena/internal/taxonomy"
)

// TaxonomyResponse is the browse view of the loaded taxonomy.
type TaxonomyResponse struct {
	Roots     []taxonomy.RootView `json:"roots"`
	FormCount int                 `json:"form_count"`
	Templates []string            `json:"templates"`
}

// GetTaxonomyEndpoint handles GET /api/taxonomy.
type GetTaxonomyEndpoint struct{}

func (e *GetTaxonomyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/taxonomy", e.handler
}

func (e *GetTaxonomyEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get the taxonomy
//	@Description	Roots, sub-categories, and verb mappings of the loaded classification document
//	@Tags			taxonomy
//	@Produce		json
//	@Success		200	{object}	TaxonomyResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/taxonomy [get]
func (e *GetTaxonomyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	tax := svcctx.TaxonomyFrom(r.Context())
	if tax == nil {
		writeError(w, http.StatusServiceUnavailable, "taxonomy not initialized")
		return
	}
	snap := tax.Snapshot()

	writeJSON(w, http.StatusOK, TaxonomyResponse{
		Roots:     snap.Roots(),
		FormCount: snap.FormCount(),
		Templates: snap.TemplateIDs(),
	})
}

func (e *GetTaxonomyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the loaded taxonomy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp TaxonomyResponse
			if err := client.Get(ctx, "/api/taxonomy", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// TaxonomyLookupEndpoint handles GET /api/taxonomy/lookup/{form}.
type TaxonomyLookupEndpoint struct{}

func (e *TaxonomyLookupEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/taxonomy/lookup/{form}", e.handler
}

func (e *TaxonomyLookupEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Look up a form's taxonomy membership
//	@Description	Resolve a base or derived spelling to its root and sub-category
//	@Tags			taxonomy
//	@Produce		json
//	@Param			form	path		string	true	"Base or derived verb form"
//	@Success		200		{object}	taxonomy.Membership
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/taxonomy/lookup/{form} [get]
func (e *TaxonomyLookupEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	form := r.PathValue("form")
	if form == "" {
		writeError(w, http.StatusBadRequest, "form is required")
		return
	}

	tax := svcctx.TaxonomyFrom(r.Context())
	if tax == nil {
		writeError(w, http.StatusServiceUnavailable, "taxonomy not initialized")
		return
	}

	membership, ok := tax.Snapshot().Lookup(form)
	if !ok {
		writeError(w, http.StatusNotFound, "form not in taxonomy: "+form)
		return
	}

	writeJSON(w, http.StatusOK, membership)
}

func (e *TaxonomyLookupEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <form>",
		Short: "Look up a form's taxonomy membership",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp taxonomy.Membership
			if err := client.Get(ctx, "/api/taxonomy/lookup/"+url.PathEscape(args[0]), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/catalog"
	"github.com/jackzampolin/verbena/internal/svcctx"
)

// EndingGroupsResponse is the ending-based browse view.
type EndingGroupsResponse struct {
	By     string                `json:"by"`
	Groups []catalog.EndingGroup `json:"groups"`
}

// CategoryGroupsResponse is the taxonomy-based browse view.
type CategoryGroupsResponse struct {
	By     string                  `json:"by"`
	Groups []catalog.CategoryGroup `json:"groups"`
}

// VerbGroupsEndpoint handles GET /api/verbs/groups.
type VerbGroupsEndpoint struct{}

func (e *VerbGroupsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/verbs/groups", e.handler
}

func (e *VerbGroupsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Group verbs for browsing
//	@Description	Bucket catalog verbs by infinitive ending or taxonomy category
//	@Tags			verbs
//	@Produce		json
//	@Param			by	query		string	false	"Grouping: ending (default) or category"
//	@Success		200	{object}	CategoryGroupsResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/verbs/groups [get]
func (e *VerbGroupsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cat := svcctx.CatalogFrom(r.Context())
	if cat == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not initialized")
		return
	}
	snap := cat.Snapshot()

	switch by := r.URL.Query().Get("by"); by {
	case "", "ending":
		writeJSON(w, http.StatusOK, EndingGroupsResponse{By: "ending", Groups: snap.EndingBuckets()})
	case "category":
		tax := svcctx.TaxonomyFrom(r.Context())
		if tax == nil {
			writeError(w, http.StatusServiceUnavailable, "taxonomy not initialized")
			return
		}
		writeJSON(w, http.StatusOK, CategoryGroupsResponse{By: "category", Groups: snap.GroupByCategory(tax.Snapshot())})
	default:
		writeError(w, http.StatusBadRequest, "by must be ending or category")
	}
}

func (e *VerbGroupsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Browse verbs grouped by ending or category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			path := "/api/verbs/groups"
			if by != "" {
				path += "?by=" + by
			}

			// Both grouping shapes decode into a generic document for display.
			var resp map[string]any
			if err := client.Get(ctx, path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "Grouping: ending or category")
	return cmd
}

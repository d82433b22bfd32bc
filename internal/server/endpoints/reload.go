package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/svcctx"
)

// ReloadResponse reports the store counts after a reload.
type ReloadResponse struct {
	Status string     `json:"status"`
	Data   DataStatus `json:"data"`
}

// ReloadEndpoint handles POST /api/reload.
type ReloadEndpoint struct{}

func (e *ReloadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/reload", e.handler
}

func (e *ReloadEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Reload data files
//	@Description	Re-read the verb, taxonomy, override, and study documents from disk now instead of waiting for the file watcher
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	ReloadResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/reload [post]
func (e *ReloadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cat := svcctx.CatalogFrom(ctx)
	tax := svcctx.TaxonomyFrom(ctx)
	ov := svcctx.OverridesFrom(ctx)
	ud := svcctx.UserDataFrom(ctx)
	if cat == nil || tax == nil || ov == nil || ud == nil {
		writeError(w, http.StatusServiceUnavailable, "stores not initialized")
		return
	}

	catSnap := cat.Reload()
	taxSnap := tax.Reload()
	ov.Reload()
	ud.Reload()

	writeJSON(w, http.StatusOK, ReloadResponse{
		Status: "reloaded",
		Data: DataStatus{
			Verbs:         catSnap.Len(),
			TaxonomyForms: taxSnap.FormCount(),
			Templates:     len(taxSnap.TemplateIDs()),
			Overrides:     ov.UserCount(),
			Favourites:    ud.FavouriteCount(),
		},
	})
}

func (e *ReloadEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload data files from disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp ReloadResponse
			if err := client.Post(ctx, "/api/reload", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

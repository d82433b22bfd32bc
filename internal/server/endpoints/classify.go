package endpoints

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/svcctx"
	"github.com/jackzampolin/verbena/internal/types"
)

// ClassifyResponse is the classifier verdict for a verb pair.
type ClassifyResponse struct {
	Base    string       `json:"base"`
	Derived string       `json:"derived,omitempty"`
	SeType  types.SeType `json:"se_type"`
}

// ClassifyEndpoint handles GET /api/classify.
type ClassifyEndpoint struct{}

func (e *ClassifyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/classify", e.handler
}

func (e *ClassifyEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Classify a verb's se usage
//	@Description	Run the taxonomy classifier on a base infinitive and optional derived pronominal form. An empty se_type means unclassified.
//	@Tags			taxonomy
//	@Produce		json
//	@Param			base	query		string	true	"Base infinitive"
//	@Param			derived	query		string	false	"Derived pronominal form"
//	@Success		200		{object}	ClassifyResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/classify [get]
func (e *ClassifyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	if base == "" {
		writeError(w, http.StatusBadRequest, "base is required")
		return
	}
	derived := r.URL.Query().Get("derived")

	merger := svcctx.MergerFrom(r.Context())
	if merger == nil {
		writeError(w, http.StatusServiceUnavailable, "classifier not initialized")
		return
	}

	writeJSON(w, http.StatusOK, ClassifyResponse{
		Base:    base,
		Derived: derived,
		SeType:  merger.Classify(base, derived),
	})
}

func (e *ClassifyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <base> [derived]",
		Short: "Classify a verb's se usage",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			params := url.Values{}
			params.Set("base", args[0])
			if len(args) > 1 {
				params.Set("derived", args[1])
			}

			var resp ClassifyResponse
			if err := client.Get(ctx, "/api/classify?"+params.Encode(), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

package endpoints

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/conjugation"
	"github.com/jackzampolin/verbena/internal/svcctx"
)

// VerbTableEndpoint handles GET /api/verbs/{infinitive}/table.
type VerbTableEndpoint struct{}

func (e *VerbTableEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/verbs/{infinitive}/table", e.handler
}

func (e *VerbTableEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get a conjugation table
//	@Description	Shape a verb's conjugations into a display table. Column defaults come from the display configuration.
//	@Tags			verbs
//	@Produce		json
//	@Param			infinitive	path		string	true	"Infinitive"
//	@Param			voseo		query		bool	false	"Include the vos column"
//	@Param			vosotros	query		bool	false	"Include the vosotros column"
//	@Success		200			{object}	conjugation.Table
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/verbs/{infinitive}/table [get]
func (e *VerbTableEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	infinitive := r.PathValue("infinitive")
	if infinitive == "" {
		writeError(w, http.StatusBadRequest, "infinitive is required")
		return
	}

	cat := svcctx.CatalogFrom(r.Context())
	if cat == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not initialized")
		return
	}

	verb, ok := lookupVerb(cat.Snapshot(), infinitive)
	if !ok {
		writeError(w, http.StatusNotFound, "verb not found: "+infinitive)
		return
	}

	opts := conjugation.Options{Voseo: true, Vosotros: true}
	if mgr := svcctx.ConfigFrom(r.Context()); mgr != nil {
		display := mgr.Get().Display
		opts.Voseo = display.Voseo
		opts.Vosotros = display.Vosotros
	}

	var err error
	if opts.Voseo, err = parseBoolParam(r, "voseo", opts.Voseo); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if opts.Vosotros, err = parseBoolParam(r, "vosotros", opts.Vosotros); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, conjugation.BuildTable(verb, opts))
}

func (e *VerbTableEndpoint) Command(getServerURL func() string) *cobra.Command {
	var voseo, vosotros string
	cmd := &cobra.Command{
		Use:   "table <infinitive>",
		Short: "Get a verb's conjugation table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			path := "/api/verbs/" + url.PathEscape(args[0]) + "/table"
			params := url.Values{}
			if voseo != "" {
				params.Set("voseo", voseo)
			}
			if vosotros != "" {
				params.Set("vosotros", vosotros)
			}
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			var table conjugation.Table
			if err := client.Get(ctx, path, &table); err != nil {
				return err
			}
			return api.Output(table)
		},
	}
	cmd.Flags().StringVar(&voseo, "voseo", "", "Include the vos column (true/false, default from server config)")
	cmd.Flags().StringVar(&vosotros, "vosotros", "", "Include the vosotros column (true/false, default from server config)")
	return cmd
}

// parseBoolParam parses a boolean query parameter, with a default when
// absent.
func parseBoolParam(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

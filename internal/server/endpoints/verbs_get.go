package endpoints

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/catalog"
	"github.com/jackzampolin/verbena/internal/svcctx"
	"github.com/jackzampolin/verbena/internal/types"
	"github.com/jackzampolin/verbena/internal/usage"
)

// VerbDetail is the full detail view of one verb: the enriched record
// plus frequency rank and the user's study data.
type VerbDetail struct {
	types.Verb
	Rank      int    `json:"rank,omitempty"`
	Favourite bool   `json:"favourite"`
	Rating    int    `json:"rating,omitempty"`
	Note      string `json:"note,omitempty"`
}

// GetVerbEndpoint handles GET /api/verbs/{infinitive}.
type GetVerbEndpoint struct{}

func (e *GetVerbEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/verbs/{infinitive}", e.handler
}

func (e *GetVerbEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get verb by infinitive
//	@Description	Get the enriched dictionary record for a verb. A pronominal spelling (hablarse) falls back to its base form when the catalog has no entry for it.
//	@Tags			verbs
//	@Produce		json
//	@Param			infinitive	path		string	true	"Infinitive"
//	@Success		200			{object}	VerbDetail
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/verbs/{infinitive} [get]
func (e *GetVerbEndpoint) handler(w http.ResponseWriter, r *http.Request) {
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
	snap := cat.Snapshot()

	verb, ok := lookupVerb(snap, infinitive)
	if !ok {
		writeError(w, http.StatusNotFound, "verb not found: "+infinitive)
		return
	}

	if merger := svcctx.MergerFrom(r.Context()); merger != nil {
		verb = merger.Enrich(verb)
	}

	detail := VerbDetail{Verb: verb}
	if rank, ok := snap.Rank(verb.Infinitive); ok {
		detail.Rank = rank
	}

	if userData := svcctx.UserDataFrom(r.Context()); userData != nil {
		detail.Favourite = userData.IsFavourite(verb.Infinitive)
		if rating, ok := userData.Rating(verb.Infinitive); ok {
			detail.Rating = rating
		}
		if note, ok := userData.Note(verb.Infinitive); ok {
			detail.Note = note
		}

		// A failed history write never fails the read.
		if err := userData.RecordView(verb.Infinitive); err != nil {
			if logger := svcctx.LoggerFrom(r.Context()); logger != nil {
				logger.Warn("failed to record view", "infinitive", verb.Infinitive, "error", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, detail)
}

func (e *GetVerbEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <infinitive>",
		Short: "Get a verb by infinitive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var detail VerbDetail
			if err := client.Get(ctx, "/api/verbs/"+url.PathEscape(args[0]), &detail); err != nil {
				return err
			}
			return api.Output(detail)
		},
	}
}

// lookupVerb resolves an infinitive against the catalog, falling back
// to the base spelling when a pronominal form has no record of its own.
func lookupVerb(snap *catalog.Snapshot, infinitive string) (types.Verb, bool) {
	verb, ok := snap.Get(infinitive)
	if !ok && usage.HasSeSuffix(infinitive) {
		verb, ok = snap.Get(usage.StripSe(infinitive))
	}
	return verb, ok
}

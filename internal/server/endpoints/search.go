package endpoints

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/svcctx"
)

// SearchResponse is the response for verb search.
type SearchResponse struct {
	Query   string        `json:"query"`
	Results []VerbSummary `json:"results"`
}

// SearchEndpoint handles GET /api/search.
type SearchEndpoint struct{}

func (e *SearchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/search", e.handler
}

func (e *SearchEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Search verbs
//	@Description	Match verbs by infinitive prefix or English gloss
//	@Tags			verbs
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Maximum results (0 = all)"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/search [get]
func (e *SearchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit, err := parseIntParam(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cat := svcctx.CatalogFrom(r.Context())
	if cat == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not initialized")
		return
	}
	snap := cat.Snapshot()

	merger := svcctx.MergerFrom(r.Context())
	userData := svcctx.UserDataFrom(r.Context())

	resp := SearchResponse{Query: query, Results: []VerbSummary{}}
	for _, verb := range snap.Search(query, limit) {
		summary := VerbSummary{
			Infinitive: verb.Infinitive,
			Gloss:      glossOf(verb),
		}
		if rank, ok := snap.Rank(verb.Infinitive); ok {
			summary.Rank = rank
		}
		if userData != nil {
			summary.Favourite = userData.IsFavourite(verb.Infinitive)
		}
		if merger != nil {
			if enriched := merger.Enrich(verb); enriched.Usage != nil {
				summary.SeType = enriched.Usage.SeType
			}
		}
		resp.Results = append(resp.Results, summary)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *SearchEndpoint) Command(getServerURL func() string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search verbs by prefix or English gloss",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			params := url.Values{}
			params.Set("q", args[0])
			if limit > 0 {
				params.Set("limit", strconv.Itoa(limit))
			}

			var resp SearchResponse
			if err := client.Get(ctx, "/api/search?"+params.Encode(), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum results (0 = all)")
	return cmd
}

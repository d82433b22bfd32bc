package endpoints

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/svcctx"
	"github.com/jackzampolin/verbena/internal/types"
)

// VerbSummary is one row of a verb listing.
type VerbSummary struct {
	Infinitive string       `json:"infinitive"`
	Gloss      string       `json:"gloss,omitempty"`
	Rank       int          `json:"rank,omitempty"`
	Favourite  bool         `json:"favourite"`
	SeType     types.SeType `json:"se_type,omitempty"`
}

// ListVerbsResponse is the response for listing verbs.
type ListVerbsResponse struct {
	Verbs  []VerbSummary `json:"verbs"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit,omitempty"`
	Offset int           `json:"offset,omitempty"`
}

// ListVerbsEndpoint handles GET /api/verbs.
type ListVerbsEndpoint struct{}

func (e *ListVerbsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/verbs", e.handler
}

func (e *ListVerbsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List verbs
//	@Description	List catalog verbs with optional search, sorting, and paging
//	@Tags			verbs
//	@Produce		json
//	@Param			sort	query		string	false	"Sort order: alphabetical (default) or frequency"
//	@Param			q		query		string	false	"Filter by infinitive prefix or English gloss"
//	@Param			limit	query		int		false	"Page size (0 = all)"
//	@Param			offset	query		int		false	"Page offset"
//	@Success		200		{object}	ListVerbsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/verbs [get]
func (e *ListVerbsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cat := svcctx.CatalogFrom(r.Context())
	if cat == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not initialized")
		return
	}
	snap := cat.Snapshot()

	var order []string
	switch r.URL.Query().Get("sort") {
	case "", "alphabetical":
		order = snap.Alphabetical()
	case "frequency":
		order = snap.ByFrequency()
	default:
		writeError(w, http.StatusBadRequest, "sort must be alphabetical or frequency")
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		matched := map[string]bool{}
		for _, v := range snap.Search(q, 0) {
			matched[v.Infinitive] = true
		}
		kept := order[:0]
		for _, inf := range order {
			if matched[inf] {
				kept = append(kept, inf)
			}
		}
		order = kept
	}

	limit, err := parseIntParam(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseIntParam(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	total := len(order)
	if offset > total {
		offset = total
	}
	page := order[offset:]
	if limit > 0 && limit < len(page) {
		page = page[:limit]
	}

	merger := svcctx.MergerFrom(r.Context())
	userData := svcctx.UserDataFrom(r.Context())

	resp := ListVerbsResponse{
		Verbs:  make([]VerbSummary, 0, len(page)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, inf := range page {
		verb, ok := snap.Get(inf)
		if !ok {
			continue
		}
		summary := VerbSummary{
			Infinitive: verb.Infinitive,
			Gloss:      glossOf(verb),
		}
		if rank, ok := snap.Rank(inf); ok {
			summary.Rank = rank
		}
		if userData != nil {
			summary.Favourite = userData.IsFavourite(inf)
		}
		if merger != nil {
			if enriched := merger.Enrich(verb); enriched.Usage != nil {
				summary.SeType = enriched.Usage.SeType
			}
		}
		resp.Verbs = append(resp.Verbs, summary)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *ListVerbsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var sortBy, query string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List verbs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			path := "/api/verbs"
			params := url.Values{}
			if sortBy != "" {
				params.Set("sort", sortBy)
			}
			if query != "" {
				params.Set("q", query)
			}
			if limit > 0 {
				params.Set("limit", strconv.Itoa(limit))
			}
			if offset > 0 {
				params.Set("offset", strconv.Itoa(offset))
			}
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			var resp ListVerbsResponse
			if err := client.Get(ctx, path, &resp); err != nil {
				return err
			}

			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort order: alphabetical or frequency")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by prefix or English gloss")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (0 = all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	return cmd
}

// glossOf picks the display gloss for a verb.
func glossOf(v types.Verb) string {
	if v.InfinitiveEnglish != "" {
		return v.InfinitiveEnglish
	}
	return v.GlossEn
}

// parseIntParam parses a non-negative integer query parameter, with a
// default when absent.
func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

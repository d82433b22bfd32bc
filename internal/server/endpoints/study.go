package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/svcctx"
	"github.com/jackzampolin/verbena/internal/userdata"
)

// FavouriteResponse is the result of toggling a favourite.
type FavouriteResponse struct {
	Verb      string `json:"verb"`
	Favourite bool   `json:"favourite"`
}

// FavouritesResponse lists favourite verbs.
type FavouritesResponse struct {
	Favourites []string `json:"favourites"`
	Total      int      `json:"total"`
}

// RatingRequest carries a rating for a verb.
type RatingRequest struct {
	Rating int `json:"rating"`
}

// RatingResponse is the result of setting a rating.
type RatingResponse struct {
	Verb   string `json:"verb"`
	Rating int    `json:"rating"`
}

// NoteRequest carries a note for a verb.
type NoteRequest struct {
	Note string `json:"note"`
}

// NoteResponse is the result of setting a note.
type NoteResponse struct {
	Verb string `json:"verb"`
	Note string `json:"note"`
}

// HistoryResponse lists recent verb views, newest first.
type HistoryResponse struct {
	History []userdata.HistoryEntry `json:"history"`
	Total   int                     `json:"total"`
}

// GetStudyEndpoint handles GET /api/study.
type GetStudyEndpoint struct{}

func (e *GetStudyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/study", e.handler
}

func (e *GetStudyEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get study data
//	@Description	The full study document: favourites, ratings, notes, and view history
//	@Tags			study
//	@Produce		json
//	@Success		200	{object}	userdata.Document
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/study [get]
func (e *GetStudyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ud := svcctx.UserDataFrom(r.Context())
	if ud == nil {
		writeError(w, http.StatusServiceUnavailable, "user data store not initialized")
		return
	}
	writeJSON(w, http.StatusOK, ud.Data())
}

func (e *GetStudyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the full study document",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp userdata.Document
			if err := client.Get(ctx, "/api/study", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ToggleFavouriteEndpoint handles POST /api/study/favourites/{verb}.
type ToggleFavouriteEndpoint struct{}

func (e *ToggleFavouriteEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/study/favourites/{verb}", e.handler
}

func (e *ToggleFavouriteEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Toggle a favourite
//	@Description	Add the verb to the favourites if absent, remove it if present
//	@Tags			study
//	@Produce		json
//	@Param			verb	path		string	true	"Verb infinitive"
//	@Success		200		{object}	FavouriteResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/study/favourites/{verb} [post]
func (e *ToggleFavouriteEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	verb := r.PathValue("verb")

	ud := svcctx.UserDataFrom(r.Context())
	if ud == nil {
		writeError(w, http.StatusServiceUnavailable, "user data store not initialized")
		return
	}

	favourite, err := ud.ToggleFavourite(verb)
	if err != nil {
		writeUserDataError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FavouriteResponse{Verb: verb, Favourite: favourite})
}

func (e *ToggleFavouriteEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "favourite <verb>",
		Short: "Toggle a verb in the favourites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp FavouriteResponse
			if err := client.Post(ctx, "/api/study/favourites/"+url.PathEscape(args[0]), nil, &resp); err != nil {
				return err
			}
			if resp.Favourite {
				fmt.Printf("%s added to favourites\n", resp.Verb)
			} else {
				fmt.Printf("%s removed from favourites\n", resp.Verb)
			}
			return nil
		},
	}
}

// ListFavouritesEndpoint handles GET /api/study/favourites.
type ListFavouritesEndpoint struct{}

func (e *ListFavouritesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/study/favourites", e.handler
}

func (e *ListFavouritesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List favourites
//	@Tags			study
//	@Produce		json
//	@Success		200	{object}	FavouritesResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/study/favourites [get]
func (e *ListFavouritesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ud := svcctx.UserDataFrom(r.Context())
	if ud == nil {
		writeError(w, http.StatusServiceUnavailable, "user data store not initialized")
		return
	}

	favourites := ud.Favourites()
	writeJSON(w, http.StatusOK, FavouritesResponse{Favourites: favourites, Total: len(favourites)})
}

func (e *ListFavouritesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "favourites",
		Short: "List favourite verbs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp FavouritesResponse
			if err := client.Get(ctx, "/api/study/favourites", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// SetRatingEndpoint handles PUT /api/study/ratings/{verb}.
type SetRatingEndpoint struct{}

func (e *SetRatingEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/study/ratings/{verb}", e.handler
}

func (e *SetRatingEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Rate a verb
//	@Description	Store a 1-5 difficulty rating for a verb. Rating 0 clears the stored rating.
//	@Tags			study
//	@Accept			json
//	@Produce		json
//	@Param			verb	path		string			true	"Verb infinitive"
//	@Param			body	body		RatingRequest	true	"Rating"
//	@Success		200		{object}	RatingResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/study/ratings/{verb} [put]
func (e *SetRatingEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	verb := r.PathValue("verb")

	var req RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ud := svcctx.UserDataFrom(r.Context())
	if ud == nil {
		writeError(w, http.StatusServiceUnavailable, "user data store not initialized")
		return
	}

	if err := ud.SetRating(verb, req.Rating); err != nil {
		writeUserDataError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RatingResponse{Verb: verb, Rating: req.Rating})
}

func (e *SetRatingEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <verb> <rating>",
		Short: "Rate a verb from 1 to 5 (0 clears)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid rating %q: %w", args[1], err)
			}

			client := api.NewClient(getServerURL())
			var resp RatingResponse
			if err := client.Put(ctx, "/api/study/ratings/"+url.PathEscape(args[0]), RatingRequest{Rating: rating}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// SetNoteEndpoint handles PUT /api/study/notes/{verb}.
type SetNoteEndpoint struct{}

func (e *SetNoteEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/study/notes/{verb}", e.handler
}

func (e *SetNoteEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Set a note
//	@Description	Store a free-text note for a verb. An empty note clears the stored one.
//	@Tags			study
//	@Accept			json
//	@Produce		json
//	@Param			verb	path		string		true	"Verb infinitive"
//	@Param			body	body		NoteRequest	true	"Note text"
//	@Success		200		{object}	NoteResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/study/notes/{verb} [put]
func (e *SetNoteEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	verb := r.PathValue("verb")

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ud := svcctx.UserDataFrom(r.Context())
	if ud == nil {
		writeError(w, http.StatusServiceUnavailable, "user data store not initialized")
		return
	}

	if err := ud.SetNote(verb, req.Note); err != nil {
		writeUserDataError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NoteResponse{Verb: verb, Note: strings.TrimSpace(req.Note)})
}

func (e *SetNoteEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "note <verb> [text...]",
		Short: "Set the note for a verb (no text clears it)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			note := strings.Join(args[1:], " ")
			client := api.NewClient(getServerURL())
			var resp NoteResponse
			if err := client.Put(ctx, "/api/study/notes/"+url.PathEscape(args[0]), NoteRequest{Note: note}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// StudyHistoryEndpoint handles GET /api/study/history.
type StudyHistoryEndpoint struct{}

func (e *StudyHistoryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/study/history", e.handler
}

func (e *StudyHistoryEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		View history
//	@Description	Recently viewed verbs, newest first
//	@Tags			study
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum entries to return (0 for all)"
//	@Success		200		{object}	HistoryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/study/history [get]
func (e *StudyHistoryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ud := svcctx.UserDataFrom(r.Context())
	if ud == nil {
		writeError(w, http.StatusServiceUnavailable, "user data store not initialized")
		return
	}

	history := ud.History(limit)
	writeJSON(w, http.StatusOK, HistoryResponse{History: history, Total: len(history)})
}

func (e *StudyHistoryEndpoint) Command(getServerURL func() string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently viewed verbs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			params := url.Values{}
			if limit > 0 {
				params.Set("limit", strconv.Itoa(limit))
			}
			path := "/api/study/history"
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			client := api.NewClient(getServerURL())
			var resp HistoryResponse
			if err := client.Get(ctx, path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show (0 for all)")
	return cmd
}

// writeUserDataError maps store errors onto HTTP statuses.
func writeUserDataError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userdata.ErrInvalidKey), errors.Is(err, userdata.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

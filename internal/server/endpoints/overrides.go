package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/overrides"
	"github.com/jackzampolin/verbena/internal/svcctx"
	"github.com/jackzampolin/verbena/internal/types"
)

// Override provenance values.
const (
	SourceSeed = "seed"
	SourceUser = "user"
)

// OverrideEntry is one effective override with its provenance.
type OverrideEntry struct {
	Source   string         `json:"source"`
	Override types.Override `json:"override"`
}

// OverridesResponse maps verbs to their effective overrides.
type OverridesResponse struct {
	Overrides map[string]OverrideEntry `json:"overrides"`
}

// OverrideResponse is the result of a single-verb override operation.
type OverrideResponse struct {
	Verb     string          `json:"verb"`
	Source   string          `json:"source,omitempty"`
	Override *types.Override `json:"override,omitempty"`
	Removed  bool            `json:"removed,omitempty"`
}

// ListOverridesEndpoint handles GET /api/overrides.
type ListOverridesEndpoint struct{}

func (e *ListOverridesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/overrides", e.handler
}

func (e *ListOverridesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List overrides
//	@Description	The merged override view: built-in seed entries overlaid by user entries
//	@Tags			overrides
//	@Produce		json
//	@Success		200	{object}	OverridesResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/overrides [get]
func (e *ListOverridesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.OverridesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "override store not initialized")
		return
	}

	resp := OverridesResponse{Overrides: map[string]OverrideEntry{}}
	for verb, o := range store.All() {
		entry := OverrideEntry{Source: SourceSeed, Override: o}
		if _, ok := store.UserEntry(verb); ok {
			entry.Source = SourceUser
		}
		resp.Overrides[verb] = entry
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *ListOverridesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List effective overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp OverridesResponse
			if err := client.Get(ctx, "/api/overrides", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetOverrideEndpoint handles GET /api/overrides/{verb}.
type GetOverrideEndpoint struct{}

func (e *GetOverrideEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/overrides/{verb}", e.handler
}

func (e *GetOverrideEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get an override
//	@Description	The effective override for a verb, with its provenance
//	@Tags			overrides
//	@Produce		json
//	@Param			verb	path		string	true	"Verb infinitive"
//	@Success		200		{object}	OverrideResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/overrides/{verb} [get]
func (e *GetOverrideEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	verb := r.PathValue("verb")

	store := svcctx.OverridesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "override store not initialized")
		return
	}

	o, ok := store.Get(verb)
	if !ok {
		writeError(w, http.StatusNotFound, "no override for verb: "+verb)
		return
	}

	source := SourceSeed
	if _, ok := store.UserEntry(verb); ok {
		source = SourceUser
	}

	writeJSON(w, http.StatusOK, OverrideResponse{Verb: verb, Source: source, Override: &o})
}

func (e *GetOverrideEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <verb>",
		Short: "Get the effective override for a verb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp OverrideResponse
			if err := client.Get(ctx, "/api/overrides/"+url.PathEscape(args[0]), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// SetOverrideEndpoint handles PUT /api/overrides/{verb}.
type SetOverrideEndpoint struct{}

func (e *SetOverrideEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/overrides/{verb}", e.handler
}

func (e *SetOverrideEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Set an override
//	@Description	Upsert the user override for a verb and save the override document. The entry replaces any seed entry for its key wholesale.
//	@Tags			overrides
//	@Accept			json
//	@Produce		json
//	@Param			verb	path		string			true	"Verb infinitive"
//	@Param			body	body		types.Override	true	"Override fields"
//	@Success		200		{object}	OverrideResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/overrides/{verb} [put]
func (e *SetOverrideEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	verb := r.PathValue("verb")
	if err := overrides.ValidateKey(verb); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var o types.Override
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if o.SeType != nil && *o.SeType != "" && !o.SeType.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid se_type: "+o.SeType.String())
		return
	}

	store := svcctx.OverridesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "override store not initialized")
		return
	}

	if err := store.Set(verb, o); err != nil {
		if errors.Is(err, overrides.ErrInvalidKey) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, OverrideResponse{Verb: verb, Source: SourceUser, Override: &o})
}

func (e *SetOverrideEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		pronominal   bool
		pronominalSp string
		seType       string
		meaningShift string
		notes        string
	)
	cmd := &cobra.Command{
		Use:   "set <verb>",
		Short: "Set the override for a verb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Only flags the caller passed become override fields, so an
			// unset flag never clobbers a field with its zero value.
			var o types.Override
			if cmd.Flags().Changed("pronominal") {
				o.IsPronominal = types.BoolPtr(pronominal)
			}
			if cmd.Flags().Changed("pronominal-infinitive") {
				o.PronominalInfinitive = types.StringPtr(pronominalSp)
			}
			if cmd.Flags().Changed("se-type") {
				o.SeType = types.SeTypePtr(types.SeType(seType))
			}
			if cmd.Flags().Changed("meaning-shift") {
				o.MeaningShift = types.StringPtr(meaningShift)
			}
			if cmd.Flags().Changed("notes") {
				o.Notes = types.StringPtr(notes)
			}
			if o.IsZero() {
				return fmt.Errorf("no override fields given; pass at least one flag")
			}

			client := api.NewClient(getServerURL())
			var resp OverrideResponse
			if err := client.Put(ctx, "/api/overrides/"+url.PathEscape(args[0]), o, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().BoolVar(&pronominal, "pronominal", false, "Mark the verb as pronominal")
	cmd.Flags().StringVar(&pronominalSp, "pronominal-infinitive", "", "Pronominal spelling (e.g. irse)")
	cmd.Flags().StringVar(&seType, "se-type", "", "Se classification (reflexive, pronominal, accidental_dative, experiencer)")
	cmd.Flags().StringVar(&meaningShift, "meaning-shift", "", "How the pronominal meaning differs")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form usage notes")
	return cmd
}

// DeleteOverrideEndpoint handles DELETE /api/overrides/{verb}.
type DeleteOverrideEndpoint struct{}

func (e *DeleteOverrideEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/overrides/{verb}", e.handler
}

func (e *DeleteOverrideEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Delete an override
//	@Description	Remove the user override for a verb. A verb with a built-in seed entry reverts to it; others lose their override entirely.
//	@Tags			overrides
//	@Produce		json
//	@Param			verb	path		string	true	"Verb infinitive"
//	@Success		200		{object}	OverrideResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/overrides/{verb} [delete]
func (e *DeleteOverrideEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	verb := r.PathValue("verb")

	store := svcctx.OverridesFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "override store not initialized")
		return
	}

	if err := store.Delete(verb); err != nil {
		if errors.Is(err, overrides.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	resp := OverrideResponse{Verb: verb, Removed: true}
	if seed, ok := store.Get(verb); ok {
		resp.Removed = false
		resp.Source = SourceSeed
		resp.Override = &seed
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *DeleteOverrideEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <verb>",
		Short: "Delete the user override for a verb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			if err := client.Delete(ctx, "/api/overrides/"+url.PathEscape(args[0])); err != nil {
				return err
			}
			cmd.Println("Override deleted")
			return nil
		},
	}
}

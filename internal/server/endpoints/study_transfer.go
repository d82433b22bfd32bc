package endpoints

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/svcctx"
	"github.com/jackzampolin/verbena/internal/userdata"
)

// ImportResponse summarizes the study document after an import.
type ImportResponse struct {
	Favourites int `json:"favourites"`
	Ratings    int `json:"ratings"`
	Notes      int `json:"notes"`
	History    int `json:"history"`
}

// ExportStudyEndpoint handles GET /api/study/export.
type ExportStudyEndpoint struct{}

func (e *ExportStudyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/study/export", e.handler
}

func (e *ExportStudyEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Export study data
//	@Description	The full study document, stamped with the export time. The response body round-trips through import.
//	@Tags			study
//	@Produce		json
//	@Success		200	{object}	userdata.Document
//	@Failure		500	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/study/export [get]
func (e *ExportStudyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ud := svcctx.UserDataFrom(r.Context())
	if ud == nil {
		writeError(w, http.StatusServiceUnavailable, "user data store not initialized")
		return
	}

	doc, err := ud.Export()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (e *ExportStudyEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the study document",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client := api.NewClient(getServerURL())
			var resp userdata.Document
			if err := client.Get(ctx, "/api/study/export", &resp); err != nil {
				return err
			}

			if outputFile != "" {
				if err := api.OutputToFile(outputFile, api.OutputFormatJSON, resp); err != nil {
					return err
				}
				cmd.Printf("Study data exported to %s\n", outputFile)
				return nil
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the export to a file instead of stdout")
	return cmd
}

// ImportStudyEndpoint handles POST /api/study/import.
type ImportStudyEndpoint struct{}

func (e *ImportStudyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/study/import", e.handler
}

func (e *ImportStudyEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Import study data
//	@Description	Replace the study document with the posted one after validation. With merge=true the current favourites are unioned into the imported list.
//	@Tags			study
//	@Accept			json
//	@Produce		json
//	@Param			merge	query		bool				false	"Merge current favourites into the import"
//	@Param			body	body		userdata.Document	true	"Study document"
//	@Success		200		{object}	ImportResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/study/import [post]
func (e *ImportStudyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	merge, err := parseBoolParam(r, "merge", false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body: "+err.Error())
		return
	}

	ud := svcctx.UserDataFrom(r.Context())
	if ud == nil {
		writeError(w, http.StatusServiceUnavailable, "user data store not initialized")
		return
	}

	if err := ud.Import(body, merge); err != nil {
		if errors.Is(err, userdata.ErrInvalidDocument) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	doc := ud.Data()
	writeJSON(w, http.StatusOK, ImportResponse{
		Favourites: len(doc.Favourites),
		Ratings:    len(doc.Ratings),
		Notes:      len(doc.Notes),
		History:    len(doc.History),
	})
}

func (e *ImportStudyEndpoint) Command(getServerURL func() string) *cobra.Command {
	var merge bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a study document from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			path := "/api/study/import"
			if merge {
				params := url.Values{}
				params.Set("merge", "true")
				path += "?" + params.Encode()
			}

			client := api.NewClient(getServerURL())
			var resp ImportResponse
			// RawMessage keeps the file bytes as the literal JSON body.
			if err := client.Post(ctx, path, json.RawMessage(data), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "Union current favourites into the imported list")
	return cmd
}

package endpoints

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/api"
	"github.com/jackzampolin/verbena/internal/prompts"
	"github.com/jackzampolin/verbena/internal/providers"
	"github.com/jackzampolin/verbena/internal/svcctx"
)

// PracticeRequest names the verb and template to practice with.
type PracticeRequest struct {
	Infinitive string `json:"infinitive"`
	TemplateID string `json:"template_id"`
}

// PracticeResponse carries the rendered prompt and the provider's answer.
type PracticeResponse struct {
	Infinitive string `json:"infinitive"`
	TemplateID string `json:"template_id"`
	Prompt     string `json:"prompt"`
	Response   string `json:"response"`

	Provider         string `json:"provider"`
	Model            string `json:"model"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	ExecutionMS      int64  `json:"execution_ms"`
	Attempts         int    `json:"attempts"`
}

// PracticeEndpoint handles POST /api/practice.
type PracticeEndpoint struct{}

func (e *PracticeEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/practice", e.handler
}

func (e *PracticeEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Generate practice sentences
//	@Description	Render the verb's prompt from the named template and execute it against the configured LLM provider
//	@Tags			practice
//	@Accept			json
//	@Produce		json
//	@Param			body	body		PracticeRequest	true	"Verb and template"
//	@Success		200		{object}	PracticeResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/practice [post]
func (e *PracticeEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req PracticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Infinitive == "" {
		writeError(w, http.StatusBadRequest, "infinitive is required")
		return
	}
	if req.TemplateID == "" {
		writeError(w, http.StatusBadRequest, "template_id is required")
		return
	}

	cat := svcctx.CatalogFrom(r.Context())
	tax := svcctx.TaxonomyFrom(r.Context())
	if cat == nil || tax == nil {
		writeError(w, http.StatusServiceUnavailable, "verb data not initialized")
		return
	}

	verb, ok := lookupVerb(cat.Snapshot(), req.Infinitive)
	if !ok {
		writeError(w, http.StatusNotFound, "verb not found: "+req.Infinitive)
		return
	}

	tmpl, ok := tax.Snapshot().Template(req.TemplateID)
	if !ok {
		writeError(w, http.StatusNotFound, "template not found: "+req.TemplateID)
		return
	}

	if merger := svcctx.MergerFrom(r.Context()); merger != nil {
		verb = merger.Enrich(verb)
	}

	prompt, err := prompts.Render(tmpl, verb)
	if err != nil {
		// Placeholder mismatches are authoring defects in the template.
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	chat := svcctx.ChatFrom(r.Context())
	if chat == nil {
		writeError(w, http.StatusServiceUnavailable, "no LLM provider configured")
		return
	}

	result, err := chat.Chat(r.Context(), &providers.ChatRequest{
		Messages: []providers.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		if rle, ok := providers.IsRateLimitError(err); ok {
			if rle.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(rle.RetryAfter.Seconds())))
			}
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, PracticeResponse{
		Infinitive:       req.Infinitive,
		TemplateID:       req.TemplateID,
		Prompt:           prompt,
		Response:         result.Content,
		Provider:         result.Provider,
		Model:            result.ModelUsed,
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
		TotalTokens:      result.TotalTokens,
		ExecutionMS:      result.ExecutionTime.Milliseconds(),
		Attempts:         result.Attempts,
	})
}

func (e *PracticeEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "practice <infinitive> <template>",
		Short: "Generate practice sentences for a verb",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client := api.NewClient(getServerURL())
			var resp PracticeResponse
			req := PracticeRequest{Infinitive: args[0], TemplateID: args[1]}
			if err := client.Post(ctx, "/api/practice", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

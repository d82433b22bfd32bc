package endpoints

import (
	"net/http"
	"os"
	"testing"

	"github.com/jackzampolin/verbena/internal/providers"
)

func TestPractice(t *testing.T) {
	env := newTestEnv(t)
	mock := &providers.MockClient{ResponseText: "1. Me lavo las manos."}
	env.services.Chat = mock

	body := `{"infinitive": "lavar", "template_id": "BASIC"}`
	rec := env.request(t, "POST", "/api/practice", body)
	wantStatus(t, rec, http.StatusOK)
	var resp PracticeResponse
	decodeBody(t, rec, &resp)

	if resp.Prompt != "Write three sentences using lavar." {
		t.Errorf("prompt = %q", resp.Prompt)
	}
	if resp.Response != "1. Me lavo las manos." {
		t.Errorf("response = %q", resp.Response)
	}
	if resp.Provider != providers.MockClientName || resp.Attempts != 1 {
		t.Errorf("provider = %q attempts = %d", resp.Provider, resp.Attempts)
	}

	last := mock.LastRequest()
	if last == nil || len(last.Messages) != 1 {
		t.Fatalf("last request = %+v", last)
	}
	if last.Messages[0].Role != "user" || last.Messages[0].Content != resp.Prompt {
		t.Errorf("provider received %+v, want the rendered prompt", last.Messages[0])
	}
}

func TestPracticeWithoutProvider(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, "POST", "/api/practice", `{"infinitive": "lavar", "template_id": "BASIC"}`)
	wantStatus(t, rec, http.StatusServiceUnavailable)
}

func TestPracticeValidation(t *testing.T) {
	env := newTestEnv(t)
	env.services.Chat = providers.NewMockClient()

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing infinitive", body: `{"template_id": "BASIC"}`, want: http.StatusBadRequest},
		{name: "missing template", body: `{"infinitive": "lavar"}`, want: http.StatusBadRequest},
		{name: "malformed body", body: `{`, want: http.StatusBadRequest},
		{name: "unknown verb", body: `{"infinitive": "bailar", "template_id": "BASIC"}`, want: http.StatusNotFound},
		{name: "unknown template", body: `{"infinitive": "lavar", "template_id": "NOPE"}`, want: http.StatusNotFound},
		{name: "broken template", body: `{"infinitive": "lavar", "template_id": "BROKEN"}`, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.request(t, "POST", "/api/practice", tt.body)
			wantStatus(t, rec, tt.want)
		})
	}
}

func TestPracticeProviderFailure(t *testing.T) {
	env := newTestEnv(t)
	env.services.Chat = &providers.MockClient{ShouldFail: true}

	rec := env.request(t, "POST", "/api/practice", `{"infinitive": "lavar", "template_id": "BASIC"}`)
	wantStatus(t, rec, http.StatusBadGateway)
}

func TestReload(t *testing.T) {
	env := newTestEnv(t)

	var before ReloadResponse
	rec := env.request(t, "POST", "/api/reload", "")
	wantStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &before)
	if before.Status != "reloaded" || before.Data.Verbs != 6 {
		t.Fatalf("reload = %+v", before)
	}

	// Grow the verb file on disk; reload must pick it up.
	grown := testVerbs[:len(testVerbs)-1] + `, {"infinitive": "bailar", "infinitive_english": "to dance"}]`
	if err := os.WriteFile(env.verbsPath, []byte(grown), 0o644); err != nil {
		t.Fatalf("rewrite verbs: %v", err)
	}

	var after ReloadResponse
	rec = env.request(t, "POST", "/api/reload", "")
	wantStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &after)
	if after.Data.Verbs != 7 {
		t.Errorf("verbs after reload = %d, want 7", after.Data.Verbs)
	}

	rec = env.request(t, "GET", "/api/verbs/bailar", "")
	wantStatus(t, rec, http.StatusOK)
}

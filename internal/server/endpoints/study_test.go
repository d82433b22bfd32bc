package endpoints

import (
	"net/http"
	"testing"

	"github.com/jackzampolin/verbena/internal/userdata"
)

func TestStudyDocumentStartsEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, "GET", "/api/study", "")
	wantStatus(t, rec, http.StatusOK)
	var doc userdata.Document
	decodeBody(t, rec, &doc)

	if doc.Version != userdata.Version {
		t.Errorf("version = %d", doc.Version)
	}
	if len(doc.Favourites) != 0 || len(doc.Ratings) != 0 || len(doc.Notes) != 0 || len(doc.History) != 0 {
		t.Errorf("fresh document should be empty, got %+v", doc)
	}
}

func TestToggleFavourite(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, "POST", "/api/study/favourites/hablar", "")
	wantStatus(t, rec, http.StatusOK)
	var resp FavouriteResponse
	decodeBody(t, rec, &resp)
	if resp.Verb != "hablar" || !resp.Favourite {
		t.Errorf("toggle = %+v, want favourite on", resp)
	}

	rec = env.request(t, "POST", "/api/study/favourites/hablar", "")
	wantStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &resp)
	if resp.Favourite {
		t.Error("second toggle should remove the favourite")
	}
}

func TestListFavourites(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, "POST", "/api/study/favourites/comer", "")
	env.request(t, "POST", "/api/study/favourites/ir", "")

	rec := env.request(t, "GET", "/api/study/favourites", "")
	wantStatus(t, rec, http.StatusOK)
	var resp FavouritesResponse
	decodeBody(t, rec, &resp)

	if resp.Total != 2 || len(resp.Favourites) != 2 {
		t.Fatalf("favourites = %+v", resp)
	}
	if resp.Favourites[0] != "comer" || resp.Favourites[1] != "ir" {
		t.Errorf("favourites = %v, want toggle order", resp.Favourites)
	}
}

func TestSetRating(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, "PUT", "/api/study/ratings/hablar", `{"rating": 4}`)
	wantStatus(t, rec, http.StatusOK)
	var resp RatingResponse
	decodeBody(t, rec, &resp)
	if resp.Verb != "hablar" || resp.Rating != 4 {
		t.Errorf("rating response = %+v", resp)
	}

	var detail VerbDetail
	rec = env.request(t, "GET", "/api/verbs/hablar", "")
	wantStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &detail)
	if detail.Rating != 4 {
		t.Errorf("detail rating = %d, want 4", detail.Rating)
	}

	// Rating 0 clears.
	rec = env.request(t, "PUT", "/api/study/ratings/hablar", `{"rating": 0}`)
	wantStatus(t, rec, http.StatusOK)
	rec = env.request(t, "GET", "/api/verbs/hablar", "")
	detail = VerbDetail{}
	decodeBody(t, rec, &detail)
	if detail.Rating != 0 {
		t.Errorf("cleared rating = %d", detail.Rating)
	}

	rec = env.request(t, "PUT", "/api/study/ratings/hablar", `{"rating": 9}`)
	wantStatus(t, rec, http.StatusBadRequest)

	rec = env.request(t, "PUT", "/api/study/ratings/hablar", `{"rating": `)
	wantStatus(t, rec, http.StatusBadRequest)
}

func TestSetNote(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, "PUT", "/api/study/notes/comer", `{"note": "  takes reflexive for emphasis  "}`)
	wantStatus(t, rec, http.StatusOK)
	var resp NoteResponse
	decodeBody(t, rec, &resp)
	if resp.Note != "takes reflexive for emphasis" {
		t.Errorf("note = %q, want trimmed text", resp.Note)
	}

	var detail VerbDetail
	rec = env.request(t, "GET", "/api/verbs/comer", "")
	wantStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &detail)
	if detail.Note != "takes reflexive for emphasis" {
		t.Errorf("detail note = %q", detail.Note)
	}

	// An empty note clears the stored one.
	rec = env.request(t, "PUT", "/api/study/notes/comer", `{"note": ""}`)
	wantStatus(t, rec, http.StatusOK)
	rec = env.request(t, "GET", "/api/verbs/comer", "")
	detail = VerbDetail{}
	decodeBody(t, rec, &detail)
	if detail.Note != "" {
		t.Errorf("cleared note = %q", detail.Note)
	}
}

func TestHistoryRecordsViews(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, "GET", "/api/verbs/hablar", "")
	env.request(t, "GET", "/api/verbs/hablar", "")
	env.request(t, "GET", "/api/verbs/comer", "")

	rec := env.request(t, "GET", "/api/study/history", "")
	wantStatus(t, rec, http.StatusOK)
	var resp HistoryResponse
	decodeBody(t, rec, &resp)

	if resp.Total != 3 {
		t.Fatalf("history total = %d, want 3", resp.Total)
	}
	want := []string{"comer", "hablar", "hablar"}
	for i, inf := range want {
		if resp.History[i].Infinitive != inf {
			t.Errorf("history[%d] = %q, want %q (newest first)", i, resp.History[i].Infinitive, inf)
		}
	}
	if resp.History[0].ID == "" || resp.History[0].ViewedAt.IsZero() {
		t.Error("history entries carry an id and timestamp")
	}

	rec = env.request(t, "GET", "/api/study/history?limit=1", "")
	wantStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &resp)
	if resp.Total != 1 || resp.History[0].Infinitive != "comer" {
		t.Errorf("limited history = %+v", resp)
	}
}

func TestExportStampsDocument(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, "POST", "/api/study/favourites/hablar", "")

	rec := env.request(t, "GET", "/api/study/export", "")
	wantStatus(t, rec, http.StatusOK)
	var doc userdata.Document
	decodeBody(t, rec, &doc)

	if len(doc.Favourites) != 1 || doc.Favourites[0] != "hablar" {
		t.Errorf("favourites = %v", doc.Favourites)
	}
	if doc.LastUpdated == nil || *doc.LastUpdated == "" {
		t.Error("export should stamp last_updated")
	}
}

func TestImportReplacesDocument(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, "POST", "/api/study/favourites/hablar", "")

	body := `{"version": 1, "favourites": ["comer"], "ratings": {"ir": 5}, "notes": {}, "history": []}`
	rec := env.request(t, "POST", "/api/study/import", body)
	wantStatus(t, rec, http.StatusOK)
	var resp ImportResponse
	decodeBody(t, rec, &resp)
	if resp.Favourites != 1 || resp.Ratings != 1 {
		t.Errorf("import summary = %+v", resp)
	}

	var doc userdata.Document
	rec = env.request(t, "GET", "/api/study", "")
	decodeBody(t, rec, &doc)
	if len(doc.Favourites) != 1 || doc.Favourites[0] != "comer" {
		t.Errorf("favourites = %v, want replaced", doc.Favourites)
	}
}

func TestImportMergesFavourites(t *testing.T) {
	env := newTestEnv(t)

	env.request(t, "POST", "/api/study/favourites/hablar", "")

	body := `{"version": 1, "favourites": ["comer"]}`
	rec := env.request(t, "POST", "/api/study/import?merge=true", body)
	wantStatus(t, rec, http.StatusOK)

	var doc userdata.Document
	rec = env.request(t, "GET", "/api/study", "")
	decodeBody(t, rec, &doc)
	if len(doc.Favourites) != 2 || doc.Favourites[0] != "comer" || doc.Favourites[1] != "hablar" {
		t.Errorf("favourites = %v, want the sorted union", doc.Favourites)
	}
}

func TestImportRejectsInvalidDocument(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{"version": 1, "ratings": {"hablar": 9}}`,
		`{"version": 0}`,
		`not json`,
	} {
		rec := env.request(t, "POST", "/api/study/import", body)
		wantStatus(t, rec, http.StatusBadRequest)
	}

	rec := env.request(t, "POST", "/api/study/import?merge=maybe", `{"version": 1}`)
	wantStatus(t, rec, http.StatusBadRequest)
}

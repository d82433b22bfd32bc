package overrides

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackzampolin/verbena/internal/types"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "verb_overrides.json"), nil)
}

func TestSeedEntries(t *testing.T) {
	seed := Seed()
	if len(seed) != 4 {
		t.Fatalf("expected 4 seed entries, got %d", len(seed))
	}

	lavar := seed["lavar"]
	if lavar.SeType == nil || *lavar.SeType != types.SeTypeReflexive {
		t.Errorf("lavar seed se_type = %v", lavar.SeType)
	}
	if lavar.PronominalInfinitive == nil || *lavar.PronominalInfinitive != "lavarse" {
		t.Errorf("lavar seed pronominal infinitive = %v", lavar.PronominalInfinitive)
	}

	gustar := seed["gustar"]
	if gustar.IsPronominal == nil || *gustar.IsPronominal {
		t.Error("gustar seed should be explicitly non-pronominal")
	}
	if gustar.PronominalInfinitive != nil {
		t.Error("gustar seed has no pronominal infinitive")
	}

	if !IsSeedKey("caer") || !IsSeedKey("IR") {
		t.Error("IsSeedKey should match seed keys case-insensitively")
	}
	if IsSeedKey("hablar") {
		t.Error("hablar is not a seed key")
	}

	// Callers layering over the returned map must not corrupt later calls.
	seed["lavar"] = types.Override{}
	if fresh := Seed(); fresh["lavar"].SeType == nil {
		t.Error("Seed must return a fresh map on every call")
	}
}

func TestMissingFileFallsBackToSeed(t *testing.T) {
	store := newStore(t)

	all := store.All()
	if len(all) != 4 {
		t.Fatalf("expected seed-only map, got %d entries", len(all))
	}
	if _, ok := store.Get("lavar"); !ok {
		t.Error("seed entry should resolve through Get")
	}
	if _, ok := store.UserEntry("lavar"); ok {
		t.Error("no user entry should exist for lavar")
	}
}

func TestUserEntryReplacesSeedWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verb_overrides.json")
	content := `{"lavar": {"notes": "my note"}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := NewStore(path, nil)

	o, ok := store.Get("lavar")
	if !ok {
		t.Fatal("lavar should resolve")
	}
	// Full replacement: the seed's se_type and pronominal infinitive are gone.
	if o.SeType != nil || o.PronominalInfinitive != nil || o.IsPronominal != nil {
		t.Errorf("user entry should replace the seed entirely, got %+v", o)
	}
	if o.Notes == nil || *o.Notes != "my note" {
		t.Errorf("notes = %v", o.Notes)
	}
}

func TestSetAndDelete(t *testing.T) {
	store := newStore(t)

	err := store.Set("hablar", types.Override{Notes: types.StringPtr("common verb")})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if o, ok := store.Get("hablar"); !ok || o.Notes == nil || *o.Notes != "common verb" {
		t.Errorf("Get after Set = %+v ok=%v", o, ok)
	}

	if err := store.Delete("hablar"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := store.Get("hablar"); ok {
		t.Error("deleted entry should be gone")
	}
	if err := store.Delete("hablar"); err == nil {
		t.Error("second delete should report ErrNotFound")
	}
}

func TestDeleteRevertsToSeed(t *testing.T) {
	store := newStore(t)

	if err := store.Set("lavar", types.Override{Notes: types.StringPtr("x")}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if o, _ := store.Get("lavar"); o.SeType != nil {
		t.Error("user entry should mask the seed")
	}

	if err := store.Delete("lavar"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	o, ok := store.Get("lavar")
	if !ok || o.SeType == nil || *o.SeType != types.SeTypeReflexive {
		t.Errorf("seed entry should resurface after delete, got %+v", o)
	}
}

func TestSaveExcludesSeedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verb_overrides.json")
	store := NewStore(path, nil)

	if err := store.Set("lavar", types.Override{Notes: types.StringPtr("edited seed")}); err != nil {
		t.Fatalf("Set seed key: %v", err)
	}
	if err := store.Set("hablar", types.Override{Notes: types.StringPtr("kept")}); err != nil {
		t.Fatalf("Set user key: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved document: %v", err)
	}
	var saved map[string]json.RawMessage
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("saved document not valid JSON: %v", err)
	}
	if _, ok := saved["lavar"]; ok {
		t.Error("seed keys must never be written to disk")
	}
	if _, ok := saved["hablar"]; !ok {
		t.Error("non-seed entries must be written to disk")
	}

	// The in-memory layer still reflects the seed-key edit.
	if o, _ := store.Get("lavar"); o.Notes == nil || *o.Notes != "edited seed" {
		t.Error("seed-key user entry should stay live in memory")
	}
}

func TestInvalidEntriesSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verb_overrides.json")
	content := `{
		"hablar": {"notes": "good"},
		"comer": {"se_type": "middle_voice"},
		"vivir": {"is_pronominal": "yes"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := NewStore(path, nil)

	if _, ok := store.UserEntry("hablar"); !ok {
		t.Error("valid entry should load")
	}
	if _, ok := store.UserEntry("comer"); ok {
		t.Error("entry with invalid se_type should be skipped")
	}
	if _, ok := store.UserEntry("vivir"); ok {
		t.Error("entry with non-boolean is_pronominal should be skipped")
	}
}

func TestMalformedDocumentFallsBackToSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verb_overrides.json")
	if err := os.WriteFile(path, []byte(`["not", "an", "object"]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := NewStore(path, nil)

	if got := len(store.All()); got != 4 {
		t.Errorf("expected seed-only overrides, got %d", got)
	}
	if store.UserCount() != 0 {
		t.Error("no user entries should survive a malformed document")
	}
}

func TestSetValidatesKey(t *testing.T) {
	store := newStore(t)

	if err := store.Set("", types.Override{}); err == nil {
		t.Error("empty key should be rejected")
	}
	if err := store.Set("lavar;rm", types.Override{}); err == nil {
		t.Error("non-letter characters should be rejected")
	}
	if err := store.Set("bañarse", types.Override{}); err != nil {
		t.Errorf("accented letters are valid: %v", err)
	}
}

func TestReloadPicksUpFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verb_overrides.json")
	store := NewStore(path, nil)

	if store.UserCount() != 0 {
		t.Fatal("expected empty user layer")
	}

	if err := os.WriteFile(path, []byte(`{"hablar": {"notes": "new"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if store.UserCount() != 0 {
		t.Error("cache should hold until invalidated")
	}

	store.Invalidate()
	if store.UserCount() != 1 {
		t.Error("invalidate should trigger a reload on next read")
	}

	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store.Reload()
	if store.UserCount() != 0 {
		t.Error("explicit reload should re-read the file")
	}
}

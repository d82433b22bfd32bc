// Package userdata persists per-user study state: favourites, ratings,
// notes, and a bounded view history. The document lives in a single
// JSON file and survives round-trips through export and import.
package userdata

import (
	"sort"
	"strings"
	"time"
)

// Version is the current user data document version.
const Version = 1

// maxHistory bounds the view history; older entries fall off.
const maxHistory = 500

// HistoryEntry records one verb detail view.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Infinitive string    `json:"infinitive"`
	ViewedAt   time.Time `json:"viewed_at"`
}

// Document is the full user data file. LastUpdated stays a string so
// documents written by other tools with non-RFC3339 timestamps still
// load; it is informational only.
type Document struct {
	Version     int               `json:"version"`
	Ratings     map[string]int    `json:"ratings"`
	History     []HistoryEntry    `json:"history"`
	Favourites  []string          `json:"favourites"`
	Notes       map[string]string `json:"notes"`
	LastUpdated *string           `json:"last_updated"`
}

// DefaultDocument returns an empty document at the current version.
func DefaultDocument() *Document {
	return &Document{
		Version:    Version,
		Ratings:    map[string]int{},
		History:    []HistoryEntry{},
		Favourites: []string{},
		Notes:      map[string]string{},
	}
}

// normalize backfills the required collections and the version so a
// partially written or imported document is safe to operate on, and
// canonicalizes verb keys to their lowercase form.
func (d *Document) normalize() {
	if d.Version == 0 {
		d.Version = Version
	}
	if d.History == nil {
		d.History = []HistoryEntry{}
	}

	ratings := make(map[string]int, len(d.Ratings))
	for k, v := range d.Ratings {
		ratings[strings.ToLower(strings.TrimSpace(k))] = v
	}
	d.Ratings = ratings

	notes := make(map[string]string, len(d.Notes))
	for k, v := range d.Notes {
		notes[strings.ToLower(strings.TrimSpace(k))] = v
	}
	d.Notes = notes

	favourites := make([]string, 0, len(d.Favourites))
	for _, fav := range d.Favourites {
		key := strings.ToLower(strings.TrimSpace(fav))
		if key != "" {
			favourites = append(favourites, key)
		}
	}
	d.Favourites = favourites
}

// clone returns a deep copy safe to hand to callers or mutate.
func (d *Document) clone() *Document {
	out := &Document{
		Version:    d.Version,
		Ratings:    make(map[string]int, len(d.Ratings)),
		History:    append([]HistoryEntry(nil), d.History...),
		Favourites: append([]string(nil), d.Favourites...),
		Notes:      make(map[string]string, len(d.Notes)),
	}
	for k, v := range d.Ratings {
		out.Ratings[k] = v
	}
	for k, v := range d.Notes {
		out.Notes[k] = v
	}
	if d.LastUpdated != nil {
		v := *d.LastUpdated
		out.LastUpdated = &v
	}
	out.normalize()
	return out
}

// unionFavourites merges two favourite lists into a sorted set,
// normalizing keys and dropping empties.
func unionFavourites(a, b []string) []string {
	seen := map[string]bool{}
	for _, list := range [][]string{a, b} {
		for _, fav := range list {
			key := strings.ToLower(strings.TrimSpace(fav))
			if key != "" {
				seen[key] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for key := range seen {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

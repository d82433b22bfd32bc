// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/verbena/internal/catalog"
	"github.com/jackzampolin/verbena/internal/config"
	"github.com/jackzampolin/verbena/internal/home"
	"github.com/jackzampolin/verbena/internal/overrides"
	"github.com/jackzampolin/verbena/internal/providers"
	"github.com/jackzampolin/verbena/internal/taxonomy"
	"github.com/jackzampolin/verbena/internal/usage"
	"github.com/jackzampolin/verbena/internal/userdata"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Logger    *slog.Logger
	Config    *config.Manager
	Home      *home.Dir
	Catalog   *catalog.Store
	Taxonomy  *taxonomy.Store
	Overrides *overrides.Store
	UserData  *userdata.Store
	Merger    *usage.Merger
	Chat      providers.ChatClient
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// ConfigFrom extracts the config manager from context.
func ConfigFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

// CatalogFrom extracts the verb catalog store from context.
func CatalogFrom(ctx context.Context) *catalog.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Catalog
	}
	return nil
}

// TaxonomyFrom extracts the taxonomy store from context.
func TaxonomyFrom(ctx context.Context) *taxonomy.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Taxonomy
	}
	return nil
}

// OverridesFrom extracts the override store from context.
func OverridesFrom(ctx context.Context) *overrides.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Overrides
	}
	return nil
}

// UserDataFrom extracts the study data store from context.
func UserDataFrom(ctx context.Context) *userdata.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.UserData
	}
	return nil
}

// MergerFrom extracts the usage merger from context.
func MergerFrom(ctx context.Context) *usage.Merger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Merger
	}
	return nil
}

// ChatFrom extracts the chat client from context.
// Returns nil when no provider is configured.
func ChatFrom(ctx context.Context) providers.ChatClient {
	if s := ServicesFrom(ctx); s != nil {
		return s.Chat
	}
	return nil
}

package endpoints

import (
	"github.com/jackzampolin/verbena/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// SwaggerSpecPath points at swagger.json; empty resolves it
	// relative to the executable.
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// Verb endpoints
		&ListVerbsEndpoint{},
		&VerbGroupsEndpoint{},
		&GetVerbEndpoint{},
		&VerbTableEndpoint{},
		&VerbPromptEndpoint{},

		// Search and classification
		&SearchEndpoint{},
		&ClassifyEndpoint{},

		// Taxonomy endpoints
		&GetTaxonomyEndpoint{},
		&TaxonomyLookupEndpoint{},

		// Template endpoints
		&ListTemplatesEndpoint{},

		// Override endpoints
		&ListOverridesEndpoint{},
		&GetOverrideEndpoint{},
		&SetOverrideEndpoint{},
		&DeleteOverrideEndpoint{},

		// Study endpoints
		&GetStudyEndpoint{},
		&ToggleFavouriteEndpoint{},
		&ListFavouritesEndpoint{},
		&SetRatingEndpoint{},
		&SetNoteEndpoint{},
		&StudyHistoryEndpoint{},
		&ExportStudyEndpoint{},
		&ImportStudyEndpoint{},

		// Practice and maintenance
		&PracticeEndpoint{},
		&ReloadEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},
	}
}

// VerbCommands returns endpoints for verb operations.
// This groups verb-related commands under the "verbs" subcommand.
func VerbCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListVerbsEndpoint{},
		&VerbGroupsEndpoint{},
		&GetVerbEndpoint{},
		&VerbTableEndpoint{},
		&VerbPromptEndpoint{},
		&SearchEndpoint{},
	}
}

// TaxonomyCommands returns endpoints for taxonomy operations.
func TaxonomyCommands() []api.Endpoint {
	return []api.Endpoint{
		&GetTaxonomyEndpoint{},
		&TaxonomyLookupEndpoint{},
	}
}

// TemplateCommands returns endpoints for practice template operations.
func TemplateCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListTemplatesEndpoint{},
	}
}

// OverrideCommands returns endpoints for override operations.
func OverrideCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListOverridesEndpoint{},
		&GetOverrideEndpoint{},
		&SetOverrideEndpoint{},
		&DeleteOverrideEndpoint{},
	}
}

// StudyCommands returns endpoints for study-data operations.
func StudyCommands() []api.Endpoint {
	return []api.Endpoint{
		&GetStudyEndpoint{},
		&ToggleFavouriteEndpoint{},
		&ListFavouritesEndpoint{},
		&SetRatingEndpoint{},
		&SetNoteEndpoint{},
		&StudyHistoryEndpoint{},
		&ExportStudyEndpoint{},
		&ImportStudyEndpoint{},
	}
}

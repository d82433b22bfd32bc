package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/verbena/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running verbena server via HTTP.

These commands require a running server (verbena serve).
Use --server to specify a custom server URL.

Examples:
  verbena api health                  # Check server health
  verbena api verbs list              # List verbs
  verbena api verbs get hablar        # Look up a verb record
  verbena api study favourite irse    # Toggle a favourite`,
}

var verbsCmd = &cobra.Command{
	Use:   "verbs",
	Short: "Verb lookup and listing commands",
}

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Se-verb taxonomy commands",
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Practice template commands",
}

var overridesCmd = &cobra.Command{
	Use:   "overrides",
	Short: "Classification override commands",
}

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Study data commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	// Health endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ReadyEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))

	// Subcommand groups
	for _, ep := range endpoints.VerbCommands() {
		verbsCmd.AddCommand(ep.Command(getServerURL))
	}
	for _, ep := range endpoints.TaxonomyCommands() {
		taxonomyCmd.AddCommand(ep.Command(getServerURL))
	}
	for _, ep := range endpoints.TemplateCommands() {
		templatesCmd.AddCommand(ep.Command(getServerURL))
	}
	for _, ep := range endpoints.OverrideCommands() {
		overridesCmd.AddCommand(ep.Command(getServerURL))
	}
	for _, ep := range endpoints.StudyCommands() {
		studyCmd.AddCommand(ep.Command(getServerURL))
	}

	// Classification, practice and maintenance at top level
	apiCmd.AddCommand((&endpoints.ClassifyEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.PracticeEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ReloadEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerUIEndpoint{}).Command(getServerURL))

	apiCmd.AddCommand(verbsCmd)
	apiCmd.AddCommand(taxonomyCmd)
	apiCmd.AddCommand(templatesCmd)
	apiCmd.AddCommand(overridesCmd)
	apiCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(apiCmd)
}

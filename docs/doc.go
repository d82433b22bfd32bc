// Package docs provides generated OpenAPI documentation.
//
// Verbena API
//
//	@title			Verbena API
//	@version		1.0
//	@description	Spanish verb usage reference API: conjugation tables, se-verb classification, practice prompts and study data.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/verbena
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/verbena/serve.go -o ./swagger --parseDependency --parseInternal

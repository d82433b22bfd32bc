package config

import "github.com/jackzampolin/verbena/internal/home"

// Config holds verbena configuration.
// Stored at: ~/.verbena/config.yaml
type Config struct {
	Server  ServerCfg  `mapstructure:"server" yaml:"server"`
	Log     LogCfg     `mapstructure:"log" yaml:"log"`
	Data    DataCfg    `mapstructure:"data" yaml:"data"`
	Display DisplayCfg `mapstructure:"display" yaml:"display"`
	LLM     LLMCfg     `mapstructure:"llm" yaml:"llm"`
}

// ServerCfg configures the HTTP API server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"` // Bind address
	Port string `mapstructure:"port" yaml:"port"` // Listen port
}

// LogCfg configures logging.
type LogCfg struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
}

// DataCfg locates the verb data files. Dir defaults to the data directory
// under the verbena home; the file names can be overridden individually.
type DataCfg struct {
	Dir           string `mapstructure:"dir" yaml:"dir"`
	VerbsFile     string `mapstructure:"verbs_file" yaml:"verbs_file"`
	LookupFile    string `mapstructure:"lookup_file" yaml:"lookup_file"`
	FrequencyFile string `mapstructure:"frequency_file" yaml:"frequency_file"`
	TaxonomyFile  string `mapstructure:"taxonomy_file" yaml:"taxonomy_file"`
	OverridesFile string `mapstructure:"overrides_file" yaml:"overrides_file"`
	UserDataFile  string `mapstructure:"user_data_file" yaml:"user_data_file"`
}

// DisplayCfg sets the default conjugation table shape. Per-request query
// parameters override these.
type DisplayCfg struct {
	Voseo    bool `mapstructure:"voseo" yaml:"voseo"`       // Show the derived vos column
	Vosotros bool `mapstructure:"vosotros" yaml:"vosotros"` // Show the vosotros/vosotras column
}

// LLMCfg configures the practice sentence provider.
type LLMCfg struct {
	Provider       string `mapstructure:"provider" yaml:"provider"` // "openai"
	Model          string `mapstructure:"model" yaml:"model"`
	APIKey         string `mapstructure:"api_key" yaml:"api_key"` // API key (supports ${ENV_VAR} syntax)
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries" yaml:"max_retries"`
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Log: LogCfg{
			Level: "info",
		},
		Data: DataCfg{
			VerbsFile:     home.VerbsFileName,
			LookupFile:    home.LookupFileName,
			FrequencyFile: home.FrequencyFileName,
			TaxonomyFile:  home.TaxonomyFileName,
			OverridesFile: home.OverridesFileName,
			UserDataFile:  home.UserDataFileName,
		},
		Display: DisplayCfg{
			Voseo:    true,
			Vosotros: true,
		},
		LLM: LLMCfg{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			APIKey:         "${OPENAI_API_KEY}",
			TimeoutSeconds: 60,
			MaxRetries:     3,
			Enabled:        true,
		},
	}
}

// ResolveAPIKey returns the LLM API key with ${ENV_VAR} references expanded.
func (c *Config) ResolveAPIKey() string {
	return ResolveEnvVars(c.LLM.APIKey)
}

// LLMReady reports whether the practice provider is enabled and an API key
// actually resolves.
func (c *Config) LLMReady() bool {
	return c.LLM.Enabled && c.ResolveAPIKey() != ""
}

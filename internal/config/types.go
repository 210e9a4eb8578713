package config

// Config is the frozen v1 schema for ~/.devkit/config.toml.
type Config struct {
	Version   int             `toml:"version"`
	Storage   StorageConfig   `toml:"storage"`
	Logging   LoggingConfig   `toml:"logging"`
	SDK       SDKConfig       `toml:"sdk"`
	Providers ProvidersConfig `toml:"providers"`
	Tools     []ToolConfig    `toml:"tools,omitempty"`
}

type StorageConfig struct {
	Root string `toml:"root"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type SDKConfig struct {
	MinimumVersion string `toml:"minimum_version"`
}

// ProvidersConfig overrides the auto-activation priority per kind.
// Names must come from the compile-time provider set; config cannot
// introduce new providers.
type ProvidersConfig struct {
	Language []string `toml:"language,omitempty"`
	Build    []string `toml:"build,omitempty"`
	Debug    []string `toml:"debug,omitempty"`
}

// ToolConfig toggles one optional catalog entry.
type ToolConfig struct {
	ID      string `toml:"id" json:"id"`
	Enabled bool   `toml:"enabled" json:"enabled"`
}

package config

const (
	SchemaVersion = 1
)

// Build metadata, overridden via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// DefaultConfig returns a fully-populated v1 config document.
func DefaultConfig() Config {
	return Config{
		Version: SchemaVersion,
		Storage: StorageConfig{
			Root: "~/.devkit",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		SDK: SDKConfig{
			MinimumVersion: "8.0.0",
		},
		Providers: ProvidersConfig{
			Language: []string{"omnisharp", "lsp-basic"},
			Build:    []string{"msbuild-sdk", "make"},
			Debug:    []string{"netcoredbg", "vsdbg"},
		},
	}
}

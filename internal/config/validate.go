package config

import (
	"fmt"

	"golang.org/x/mod/semver"
)

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var knownProviders = map[string][]string{
	"language": {"omnisharp", "lsp-basic"},
	"build":    {"msbuild-sdk", "make"},
	"debug":    {"netcoredbg", "vsdbg"},
}

var knownTools = map[string]struct{}{
	"ext-csdevkit":   {},
	"ext-omnisharp":  {},
	"tool-csharp-ls": {},
	"mono-runtime":   {},
}

func Validate(cfg Config) error {
	if cfg.Version != SchemaVersion {
		return fmt.Errorf("CFG_VERSION: unsupported version %d", cfg.Version)
	}
	if cfg.Storage.Root == "" {
		return fmt.Errorf("CFG_STORAGE: missing storage root")
	}
	if _, ok := allowedLogLevels[cfg.Logging.Level]; !ok {
		return fmt.Errorf("CFG_LOGGING: invalid log level %q", cfg.Logging.Level)
	}
	if !semver.IsValid("v" + cfg.SDK.MinimumVersion) {
		return fmt.Errorf("CFG_SDK: invalid minimum version %q", cfg.SDK.MinimumVersion)
	}
	for kind, names := range map[string][]string{
		"language": cfg.Providers.Language,
		"build":    cfg.Providers.Build,
		"debug":    cfg.Providers.Debug,
	} {
		for _, name := range names {
			if !contains(knownProviders[kind], name) {
				return fmt.Errorf("CFG_PROVIDERS: unknown %s provider %q", kind, name)
			}
		}
	}
	seen := map[string]struct{}{}
	for _, tool := range cfg.Tools {
		if _, ok := knownTools[tool.ID]; !ok {
			return fmt.Errorf("CFG_TOOLS: unknown tool id %q", tool.ID)
		}
		if _, dup := seen[tool.ID]; dup {
			return fmt.Errorf("CFG_TOOLS: duplicate tool id %q", tool.ID)
		}
		seen[tool.ID] = struct{}{}
	}
	return nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

package config

func Normalize(cfg Config) Config {
	if cfg.Version == 0 {
		cfg.Version = SchemaVersion
	}
	if cfg.Storage.Root == "" {
		cfg.Storage.Root = "~/.devkit"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.SDK.MinimumVersion == "" {
		cfg.SDK.MinimumVersion = "8.0.0"
	}
	defaults := DefaultConfig().Providers
	if len(cfg.Providers.Language) == 0 {
		cfg.Providers.Language = defaults.Language
	}
	if len(cfg.Providers.Build) == 0 {
		cfg.Providers.Build = defaults.Build
	}
	if len(cfg.Providers.Debug) == 0 {
		cfg.Providers.Debug = defaults.Debug
	}
	return cfg
}

// Package app wires one session's registry, classifier and
// orchestrator together. Everything is passed explicitly; there are
// no package-level singletons, so several independent sessions can
// coexist (which is also what makes the tests cheap).
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"devkit/internal/audit"
	"devkit/internal/classify"
	"devkit/internal/config"
	"devkit/internal/install"
	"devkit/internal/notify"
	"devkit/internal/platform"
	"devkit/internal/provider"
	"devkit/internal/registry"
	"devkit/pkg/capability"
)

type Options struct {
	ConfigPath string
	Logger     *zap.Logger
	// Platform and Notifier default to the local implementations.
	Platform platform.Service
	Mono     platform.MonoProber
	Notifier notify.Notifier
}

type Service struct {
	ConfigPath string
	Config     config.Config
	StateRoot  string

	Platform     platform.Service
	Registry     *registry.Registry
	Classifier   *classify.Classifier
	Orchestrator *install.Orchestrator
	Audit        *audit.Logger
	Logger       *zap.Logger
}

func New(opts Options) (*Service, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.Ensure(configPath)
	if err != nil {
		return nil, err
	}
	stateRoot, err := config.ResolveStorageRoot(cfg)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ps := opts.Platform
	mono := opts.Mono
	if ps == nil {
		local := platform.NewLocal()
		ps = local
		if mono == nil {
			mono = local
		}
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewTerminal()
	}

	auditLog := audit.New(config.AuditPath(stateRoot))
	reg := registry.New(registry.Options{
		Priorities: map[capability.Kind][]string{
			capability.Language: cfg.Providers.Language,
			capability.Build:    cfg.Providers.Build,
			capability.Debug:    cfg.Providers.Debug,
		},
		Logger: logger,
		Audit:  auditLog,
	})
	set := provider.Defaults(ps)
	for _, p := range set.Language {
		reg.Register(capability.Language, p)
	}
	for _, p := range set.Build {
		reg.Register(capability.Build, p)
	}
	for _, p := range set.Debug {
		reg.Register(capability.Debug, p)
	}

	classifier := &classify.Classifier{
		Platform:      ps,
		Registry:      reg,
		Mono:          mono,
		MinSDKVersion: cfg.SDK.MinimumVersion,
		Disabled:      config.DisabledTools(cfg),
		Logger:        logger,
	}
	orchestrator := &install.Orchestrator{
		Platform: ps,
		Notifier: notifier,
		Registry: reg,
		Audit:    auditLog,
		Logger:   logger,
	}

	return &Service{
		ConfigPath:   configPath,
		Config:       cfg,
		StateRoot:    stateRoot,
		Platform:     ps,
		Registry:     reg,
		Classifier:   classifier,
		Orchestrator: orchestrator,
		Audit:        auditLog,
		Logger:       logger,
	}, nil
}

// Status reports the active provider per kind without probing.
func (s *Service) Status() map[capability.Kind]string {
	return s.Registry.Status()
}

// Activate switches one kind to the named provider. An unknown name
// is an error so callers can tell a typo from a provider that is
// registered but failed to come up.
func (s *Service) Activate(ctx context.Context, kind, name string) (bool, error) {
	k, err := capability.ParseKind(kind)
	if err != nil {
		return false, err
	}
	if s.Registry.Lookup(k, name) == nil {
		return false, fmt.Errorf("%w: %s provider %q", capability.ErrProviderNotRegistered, kind, name)
	}
	return s.Registry.Activate(ctx, k, name), nil
}

// AutoActivate walks the configured priority lists for every kind.
func (s *Service) AutoActivate(ctx context.Context) {
	s.Registry.AutoActivate(ctx)
}

// Restart restarts the active language provider.
func (s *Service) Restart(ctx context.Context) {
	s.Registry.RestartActive(ctx)
}

// Scan classifies the environment into a missing-tool report.
func (s *Service) Scan(ctx context.Context) classify.Report {
	return s.Classifier.Run(ctx)
}

// Setup auto-activates providers, scans, and walks the user through
// remediation of whatever is still missing.
func (s *Service) Setup(ctx context.Context) (classify.Report, []capability.Outcome) {
	s.Registry.AutoActivate(ctx)
	report := s.Classifier.Run(ctx)
	if len(report.Tools) == 0 {
		return report, nil
	}
	outcomes := s.Orchestrator.PromptForRemediation(ctx, report.Tools)
	return report, outcomes
}

// InstallByID installs the scanned tools matching ids, in scan order.
func (s *Service) InstallByID(ctx context.Context, ids []string) ([]capability.Outcome, error) {
	tools := s.Classifier.Scan(ctx)
	byID := map[string]capability.MissingTool{}
	for _, tool := range tools {
		byID[tool.ID] = tool
	}
	selected := make([]capability.MissingTool, 0, len(ids))
	for _, id := range ids {
		tool, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("INS_TOOL_UNKNOWN: %q is not missing or not known", id)
		}
		selected = append(selected, tool)
	}
	return s.Orchestrator.InstallMany(ctx, selected), nil
}

// InstallAll installs every missing tool in scan order.
func (s *Service) InstallAll(ctx context.Context) []capability.Outcome {
	return s.Orchestrator.InstallMany(ctx, s.Classifier.Scan(ctx))
}

// InstallSelect opens a multi-select over the scanned tools.
func (s *Service) InstallSelect(ctx context.Context) []capability.Outcome {
	return s.Orchestrator.SelectiveInstall(ctx, s.Classifier.Scan(ctx))
}

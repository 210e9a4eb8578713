package provider

import (
	"context"
	"fmt"

	"devkit/internal/platform"
	"devkit/pkg/capability"
)

// langServer is a language-analysis provider backed by an external
// server binary. Activation runs a version handshake so a broken
// install fails here instead of at first request.
type langServer struct {
	name     string
	display  string
	binaries []string
	platform platform.Service
}

func NewOmniSharp(ps platform.Service) capability.Provider {
	return &langServer{
		name:     "omnisharp",
		display:  "OmniSharp language server",
		binaries: []string{"omnisharp", "OmniSharp"},
		platform: ps,
	}
}

func NewBasicLanguageServer(ps platform.Service) capability.Provider {
	return &langServer{
		name:     "lsp-basic",
		display:  "csharp-ls language server",
		binaries: []string{"csharp-ls"},
		platform: ps,
	}
}

func (p *langServer) Name() string        { return p.name }
func (p *langServer) DisplayName() string { return p.display }

func (p *langServer) Available(_ context.Context) (bool, error) {
	_, ok := p.binary()
	return ok, nil
}

func (p *langServer) Activate(ctx context.Context) error {
	path, ok := p.binary()
	if !ok {
		return capability.ErrProviderUnavailable
	}
	res, err := p.platform.ExecuteCommand(ctx, path, []string{"--version"}, "")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", capability.ErrActivationFailed, p.name, err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%w: %s handshake exit %d", capability.ErrActivationFailed, p.name, res.ExitCode)
	}
	return nil
}

func (p *langServer) Deactivate(_ context.Context) error {
	// The editor host owns the running server process; there is
	// nothing to tear down on this side.
	return nil
}

func (p *langServer) Restart(ctx context.Context) error {
	if err := p.Deactivate(ctx); err != nil {
		return err
	}
	return p.Activate(ctx)
}

func (p *langServer) binary() (string, bool) {
	for _, name := range p.binaries {
		if path, ok := p.platform.FindExecutable(name); ok {
			return path, true
		}
	}
	return "", false
}

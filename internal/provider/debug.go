package provider

import (
	"context"
	"fmt"
	"strings"

	"devkit/internal/platform"
	"devkit/pkg/capability"
)

// debugger wraps an external debugger binary.
type debugger struct {
	name     string
	display  string
	binary   string
	platform platform.Service
}

func NewNetCoreDbg(ps platform.Service) capability.Provider {
	return &debugger{name: "netcoredbg", display: "netcoredbg debugger", binary: "netcoredbg", platform: ps}
}

func NewVSDbg(ps platform.Service) capability.Provider {
	return &debugger{name: "vsdbg", display: "vsdbg debugger", binary: "vsdbg", platform: ps}
}

func (p *debugger) Name() string        { return p.name }
func (p *debugger) DisplayName() string { return p.display }

func (p *debugger) Available(_ context.Context) (bool, error) {
	_, ok := p.platform.FindExecutable(p.binary)
	return ok, nil
}

func (p *debugger) Activate(_ context.Context) error   { return nil }
func (p *debugger) Deactivate(_ context.Context) error { return nil }

// Inspect reports the debugger's own version banner.
func (p *debugger) Inspect(ctx context.Context) (string, error) {
	path, ok := p.platform.FindExecutable(p.binary)
	if !ok {
		return "", capability.ErrProviderUnavailable
	}
	res, err := p.platform.ExecuteCommand(ctx, path, []string{"--version"}, "")
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &capability.CommandError{ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Configure checks the target root looks debuggable.
func (p *debugger) Configure(ctx context.Context, root string) error {
	ok, err := p.platform.ProbeBuildEngine(ctx, root)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("DBG_NO_PROJECT: no buildable project under %s", root)
	}
	return nil
}
